package dto

import "github.com/shopspring/decimal"

type CrearCotizacionRequest struct {
	TerrenoID       string  `json:"terreno_id"       validate:"required,uuid"`
	ClienteNombre   string  `json:"cliente_nombre"   validate:"required,min=3,max=200"`
	ClienteEmail    *string `json:"cliente_email"    validate:"omitempty,email"`
	ClienteTelefono *string `json:"cliente_telefono" validate:"omitempty,min=7,max=20"`
	// Either percentage or flat amount; both zero means list price.
	DescuentoPorcentaje decimal.Decimal `json:"descuento_porcentaje" validate:"min=0,max=100"`
	DescuentoMonto      decimal.Decimal `json:"descuento_monto"      validate:"min=0"`
	DiasVigencia        int             `json:"dias_vigencia"        validate:"min=1,max=90"`
	Notas               *string         `json:"notas"`
}

type CotizacionFilter struct {
	TerrenoID string `form:"terreno_id" validate:"omitempty,uuid"`
	Vigentes  bool   `form:"vigentes"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CotizacionResponse struct {
	ID                  string          `json:"id"`
	TerrenoID           string          `json:"terreno_id"`
	Terreno             string          `json:"terreno,omitempty"`
	ClienteNombre       string          `json:"cliente_nombre"`
	ClienteEmail        *string         `json:"cliente_email"`
	ClienteTelefono     *string         `json:"cliente_telefono"`
	PrecioLista         decimal.Decimal `json:"precio_lista"`
	DescuentoPorcentaje decimal.Decimal `json:"descuento_porcentaje"`
	DescuentoMonto      decimal.Decimal `json:"descuento_monto"`
	PrecioFinal         decimal.Decimal `json:"precio_final"`
	FechaCotizacion     string          `json:"fecha_cotizacion"`
	FechaVencimiento    string          `json:"fecha_vencimiento"`
	Vigente             bool            `json:"vigente"`
	Notas               *string         `json:"notas"`
	CreatedAt           string          `json:"created_at"`
}

type CotizacionListResponse struct {
	Data  []CotizacionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
