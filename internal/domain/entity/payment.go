package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago reconocidos en los recibos.
const (
	PaymentMethodCash       = "Cash"
	PaymentMethodTransfer   = "Bank Transfer"
	PaymentMethodCheck      = "Check"
	PaymentMethodCreditCard = "Credit Card"
)

// Payment representa un recibo de pago. Un mismo documento puede combinar varios medios.
type Payment struct {
	DocEntry    int64
	DocNum      int64
	CardCode    string
	DocDate     time.Time
	CashSum     decimal.Decimal
	TransferSum decimal.Decimal
	CheckSum    decimal.Decimal
	CreditSum   decimal.Decimal
	CreatedAt   time.Time
}

// Total suma todos los medios de pago del documento.
func (p Payment) Total() decimal.Decimal {
	return p.CashSum.Add(p.TransferSum).Add(p.CheckSum).Add(p.CreditSum)
}

// MethodAmount par medio de pago / monto.
type MethodAmount struct {
	Method string
	Amount decimal.Decimal
}

// Methods devuelve los medios con monto positivo, en orden fijo.
func (p Payment) Methods() []MethodAmount {
	all := []MethodAmount{
		{PaymentMethodCash, p.CashSum},
		{PaymentMethodTransfer, p.TransferSum},
		{PaymentMethodCheck, p.CheckSum},
		{PaymentMethodCreditCard, p.CreditSum},
	}
	out := make([]MethodAmount, 0, len(all))
	for _, m := range all {
		if m.Amount.IsPositive() {
			out = append(out, m)
		}
	}
	return out
}

// PaymentLink resuelve la relación muchos-a-muchos entre un pago y una factura.
type PaymentLink struct {
	PaymentDocEntry int64
	InvoiceDocEntry int64
	PaymentDate     time.Time
	InvoiceDate     time.Time
	AppliedAmount   decimal.Decimal
}
