// Package redis provee el lock distribuido de importaciones sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

var _ importer.Locker = (*Locker)(nil)

// obtainer lo cumple *redislock.Client.
type obtainer interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// Locker implementa importer.Locker con redislock. El TTL acota cuánto queda
// tomado el lock si el proceso muere a mitad de una importación.
type Locker struct {
	locks obtainer
	ttl   time.Duration
	log   *logger.Logger
}

// Connect abre el cliente Redis y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewLocker construye el locker sobre un cliente ya conectado.
func NewLocker(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) *Locker {
	return newLocker(redislock.New(rdb), ttl, log)
}

func newLocker(locks obtainer, ttl time.Duration, log *logger.Logger) *Locker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Locker{locks: locks, ttl: ttl, log: log.Component("redis_lock")}
}

// Lock toma key sin reintentos; si otro proceso la tiene devuelve
// domain.ErrImportInProgress.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := l.locks.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrImportInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}
	return func() {
		// El contexto de la petición puede estar cancelado al liberar.
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("key", key).Msg("liberar lock")
		}
	}, nil
}
