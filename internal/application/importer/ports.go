// Package importer carga facturas masivamente desde hojas de cálculo (xlsx/csv).
package importer

import (
	"context"
	"io"
	"sync"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// SheetParser lee un archivo tabular y devuelve sus filas como texto.
// La primera fila es el encabezado.
type SheetParser interface {
	Parse(filename string, r io.Reader) ([][]string, error)
}

// Locker exclusión mutua entre importaciones. Lock devuelve
// domain.ErrImportInProgress si la clave ya está tomada.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker exclusión dentro del proceso, para despliegues sin Redis.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewLocalLocker construye el locker en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]bool)}
}

// Lock implementa Locker.
func (l *LocalLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrImportInProgress
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}
