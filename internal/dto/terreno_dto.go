package dto

import "github.com/shopspring/decimal"

type CrearTerrenoRequest struct {
	ProyectoID string  `json:"proyecto_id" validate:"required,uuid"`
	NumeroLote string  `json:"numero_lote" validate:"required,min=1,max=20"`
	Manzana    *string `json:"manzana"     validate:"omitempty,max=20"`

	Area   decimal.Decimal  `json:"area" validate:"required"`
	Frente *decimal.Decimal `json:"frente"`
	Fondo  *decimal.Decimal `json:"fondo"`

	PrecioBase decimal.Decimal `json:"precio_base" validate:"required"`
	// Flat adjustment and multiplier over the base; precio final is
	// derived, never posted.
	PrecioAjuste        decimal.Decimal  `json:"precio_ajuste"`
	PrecioMultiplicador *decimal.Decimal `json:"precio_multiplicador"`

	Observaciones *string `json:"observaciones"`
}

type ActualizarTerrenoRequest struct {
	NumeroLote *string          `json:"numero_lote" validate:"omitempty,min=1,max=20"`
	Manzana    *string          `json:"manzana"     validate:"omitempty,max=20"`
	Area       *decimal.Decimal `json:"area"`
	Frente     *decimal.Decimal `json:"frente"`
	Fondo      *decimal.Decimal `json:"fondo"`

	PrecioBase          *decimal.Decimal `json:"precio_base"`
	PrecioAjuste        *decimal.Decimal `json:"precio_ajuste"`
	PrecioMultiplicador *decimal.Decimal `json:"precio_multiplicador"`

	Observaciones *string `json:"observaciones"`
	// Only DISPONIBLE <-> NO_DISPONIBLE may be set by hand; APARTADO and
	// VENDIDO are driven by apartados and ventas.
	Estado *string `json:"estado" validate:"omitempty,oneof=DISPONIBLE NO_DISPONIBLE"`
}

type TerrenoFilter struct {
	ProyectoID string `form:"proyecto_id" validate:"omitempty,uuid"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=DISPONIBLE APARTADO VENDIDO NO_DISPONIBLE"`
	Manzana    string `form:"manzana"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type TerrenoResponse struct {
	ID         string  `json:"id"`
	ProyectoID string  `json:"proyecto_id"`
	Proyecto   string  `json:"proyecto,omitempty"`
	NumeroLote string  `json:"numero_lote"`
	Manzana    *string `json:"manzana"`

	Area   decimal.Decimal  `json:"area"`
	Frente *decimal.Decimal `json:"frente"`
	Fondo  *decimal.Decimal `json:"fondo"`

	PrecioBase          decimal.Decimal `json:"precio_base"`
	PrecioAjuste        decimal.Decimal `json:"precio_ajuste"`
	PrecioMultiplicador decimal.Decimal `json:"precio_multiplicador"`
	PrecioFinal         decimal.Decimal `json:"precio_final"`

	Estado        string  `json:"estado"`
	Observaciones *string `json:"observaciones"`
	CreatedAt     string  `json:"created_at"`
}

type TerrenoListResponse struct {
	Data  []TerrenoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
