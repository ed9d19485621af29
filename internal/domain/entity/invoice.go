package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura de venta del ERP.
// DocEntry es el identificador interno (único); DocNum es el número visible.
type Invoice struct {
	DocEntry   int64
	DocNum     int64
	CardCode   string
	DocDate    time.Time
	DocTotal   decimal.Decimal // total bruto (incluye IVA)
	VatSum     decimal.Decimal
	PaidToDate decimal.Decimal // no se garantiza PaidToDate <= DocTotal
	Lines      []InvoiceLine
	CreatedAt  time.Time
}

// NetTotal devuelve el total de la factura sin IVA.
func (i Invoice) NetTotal() decimal.Decimal {
	return i.DocTotal.Sub(i.VatSum)
}

// InvoiceLine representa una línea de detalle de la factura.
type InvoiceLine struct {
	DocEntry    int64
	LineNum     int
	ItemCode    string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	LineTotal   decimal.Decimal
}
