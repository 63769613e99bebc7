package dto

import "github.com/shopspring/decimal"

// RegistrarPagoRequest identifies the plan either directly or through its
// venta; exactly one of plan_pago_id / venta_id is required.
type RegistrarPagoRequest struct {
	PlanPagoID string `json:"plan_pago_id" validate:"required_without=VentaID,omitempty,uuid"`
	VentaID    string `json:"venta_id"     validate:"omitempty,uuid"`
	// Optional: restrict the payment to one installment instead of
	// cascading from the oldest open one.
	AmortizacionID *string         `json:"amortizacion_id" validate:"omitempty,uuid"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"    validate:"required"`
	FechaPago      string          `json:"fecha_pago"      validate:"required,datetime=2006-01-02"`
	MetodoPago     string          `json:"metodo_pago"     validate:"required,oneof=EFECTIVO TRANSFERENCIA CHEQUE TARJETA_CREDITO TARJETA_DEBITO OTRO"`
	ReferenciaPago *string         `json:"referencia_pago" validate:"omitempty,max=100"`
	Observaciones  *string         `json:"observaciones"`
	// EnviarRecibo queues the PDF receipt email to the cliente.
	EnviarRecibo bool `json:"enviar_recibo"`
}

type CancelarPagoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type PagoFilter struct {
	PlanPagoID string `form:"plan_pago_id" validate:"omitempty,uuid"`
	ClienteID  string `form:"cliente_id"   validate:"omitempty,uuid"`
	Desde      string `form:"desde"        validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta"        validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PagoResponse struct {
	ID             string          `json:"id"`
	PlanPagoID     string          `json:"plan_pago_id"`
	AmortizacionID *string         `json:"amortizacion_id"`
	FechaPago      string          `json:"fecha_pago"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MontoACapital  decimal.Decimal `json:"monto_a_capital"`
	MontoAInteres  decimal.Decimal `json:"monto_a_interes"`
	MontoAMora     decimal.Decimal `json:"monto_a_mora"`
	MetodoPago     string          `json:"metodo_pago"`
	ReferenciaPago *string         `json:"referencia_pago"`
	Estado         string          `json:"estado"`
	Observaciones  *string         `json:"observaciones"`
	CreatedAt      string          `json:"created_at"`
	// Plan aggregates after this payment was applied.
	Plan *PlanPagoResponse `json:"plan,omitempty"`
}

type PagoListResponse struct {
	Data  []PagoResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
