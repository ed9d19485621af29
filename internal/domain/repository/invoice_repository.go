package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// DocumentFilter filtros comunes de facturas y pagos.
type DocumentFilter struct {
	Scope    Scope
	CardCode string
	Range    DateRange
	ListOptions
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// CreateBatch inserta facturas con sus líneas en una sola transacción.
	CreateBatch(ctx context.Context, invoices []entity.Invoice) error
	// ExistingDocEntries devuelve cuáles de los DocEntry dados ya existen.
	ExistingDocEntries(ctx context.Context, docEntries []int64) (map[int64]bool, error)
	// ListByCustomers devuelve las cabeceras (sin líneas) de los clientes dados,
	// ordenadas por fecha descendente.
	ListByCustomers(ctx context.Context, cardCodes []string, r DateRange) ([]entity.Invoice, error)
	// ListWithLines igual que ListByCustomers pero carga las líneas.
	ListWithLines(ctx context.Context, cardCode string, r DateRange) ([]entity.Invoice, error)
	List(ctx context.Context, f DocumentFilter) ([]entity.Invoice, int, error)
}
