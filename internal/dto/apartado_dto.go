package dto

import "github.com/shopspring/decimal"

type CrearApartadoRequest struct {
	TerrenoID     string          `json:"terreno_id"     validate:"required,uuid"`
	ClienteID     string          `json:"cliente_id"     validate:"required,uuid"`
	MontoApartado decimal.Decimal `json:"monto_apartado" validate:"required"`
	DiasVigencia  int             `json:"dias_vigencia"  validate:"min=1,max=180"`
	Observaciones *string         `json:"observaciones"`
}

type CancelarApartadoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ConvertirApartadoRequest turns a reservation into a sale. The monto
// apartado counts toward the enganche.
type ConvertirApartadoRequest struct {
	PrecioVenta decimal.Decimal        `json:"precio_venta" validate:"required"`
	Enganche    decimal.Decimal        `json:"enganche"     validate:"min=0"`
	Plan        *CrearPlanPagoTerminos `json:"plan"         validate:"omitempty"`
	Notas       *string                `json:"notas"`
}

type ApartadoFilter struct {
	TerrenoID string `form:"terreno_id" validate:"omitempty,uuid"`
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Estado    string `form:"estado"     validate:"omitempty,oneof=VIGENTE CONVERTIDO CANCELADO VENCIDO"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ApartadoResponse struct {
	ID               string          `json:"id"`
	TerrenoID        string          `json:"terreno_id"`
	Terreno          string          `json:"terreno,omitempty"`
	ClienteID        string          `json:"cliente_id"`
	Cliente          string          `json:"cliente,omitempty"`
	MontoApartado    decimal.Decimal `json:"monto_apartado"`
	PrecioTotal      decimal.Decimal `json:"precio_total"`
	FechaApartado    string          `json:"fecha_apartado"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	// Stored estado plus the derived VENCIDO flag.
	Estado        string  `json:"estado"`
	Vencido       bool    `json:"vencido"`
	Observaciones *string `json:"observaciones"`
	CreatedAt     string  `json:"created_at"`
}

type ApartadoListResponse struct {
	Data  []ApartadoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
