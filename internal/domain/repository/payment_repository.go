package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// PaymentRepository define el puerto de lectura de pagos y sus enlaces a facturas.
type PaymentRepository interface {
	ListByCustomers(ctx context.Context, cardCodes []string, r DateRange) ([]entity.Payment, error)
	// LinksByCustomer resuelve los enlaces pago-factura de un cliente,
	// con las fechas de ambos documentos.
	LinksByCustomer(ctx context.Context, cardCode string, r DateRange) ([]entity.PaymentLink, error)
	List(ctx context.Context, f DocumentFilter) ([]entity.Payment, int, error)
}
