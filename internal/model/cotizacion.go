package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cotizacion is a price quote over a terreno with a validity date.
// The discount can be expressed as a percentage or a fixed amount; the
// stored precio_final already reconciles both.
type Cotizacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TerrenoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Terreno   *Terreno  `gorm:"foreignKey:TerrenoID"`

	ClienteNombre   string  `gorm:"type:varchar(200);not null"`
	ClienteEmail    *string `gorm:"type:varchar(120)"`
	ClienteTelefono *string `gorm:"type:varchar(20)"`

	PrecioLista         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DescuentoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DescuentoMonto      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PrecioFinal         decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	FechaCotizacion  time.Time `gorm:"type:date;not null"`
	FechaVencimiento time.Time `gorm:"type:date;not null"`
	Notas            *string   `gorm:"type:text"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// Vigente reports whether the quote is still valid on the given date.
func (c *Cotizacion) Vigente(hoy time.Time) bool {
	return !c.FechaVencimiento.Before(hoy)
}
