package dto

import "github.com/shopspring/decimal"

type CrearVentaRequest struct {
	TerrenoID   string          `json:"terreno_id"   validate:"required,uuid"`
	ClienteID   string          `json:"cliente_id"   validate:"required,uuid"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"required"`
	Enganche    decimal.Decimal `json:"enganche"     validate:"min=0"`
	FechaVenta  string          `json:"fecha_venta"  validate:"required,datetime=2006-01-02"`
	// Nil plan means venta de contado: no table, no installments.
	Plan  *CrearPlanPagoTerminos `json:"plan" validate:"omitempty"`
	Notas *string                `json:"notas"`
}

type CancelarVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type VentaFilter struct {
	ProyectoID string `form:"proyecto_id" validate:"omitempty,uuid"`
	ClienteID  string `form:"cliente_id"  validate:"omitempty,uuid"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=PENDIENTE PAGADA CANCELADA ANULADA"`
	Desde      string `form:"desde"       validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta"       validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaResponse struct {
	ID          string          `json:"id"`
	TerrenoID   string          `json:"terreno_id"`
	Terreno     string          `json:"terreno,omitempty"`
	ClienteID   string          `json:"cliente_id"`
	Cliente     string          `json:"cliente,omitempty"`
	ApartadoID  *string         `json:"apartado_id"`
	FechaVenta  string          `json:"fecha_venta"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Enganche    decimal.Decimal `json:"enganche"`
	Estado      string          `json:"estado"`
	Notas       *string         `json:"notas"`
	// Present when the sale is financed.
	PlanPago  *PlanPagoResponse `json:"plan_pago,omitempty"`
	CreatedAt string            `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
