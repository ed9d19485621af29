package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// OrderRepository lectura de pedidos de venta.
type OrderRepository interface {
	ListByCustomers(ctx context.Context, cardCodes []string, r DateRange) ([]entity.SalesOrder, error)
}

// CallRepository lectura de llamadas comerciales.
type CallRepository interface {
	ListByAgent(ctx context.Context, agentID string, r DateRange) ([]entity.Call, error)
}

// QuotationFilter filtros del listado de cotizaciones.
type QuotationFilter struct {
	Scope    Scope // sobre CreatedBy
	Status   string
	CardCode string
	ListOptions
}

// QuotationRepository define el puerto de persistencia para Quotation.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	Update(ctx context.Context, q *entity.Quotation) error
	List(ctx context.Context, f QuotationFilter) ([]entity.Quotation, int, error)
	ListByCreator(ctx context.Context, userID string, r DateRange) ([]entity.Quotation, error)
}
