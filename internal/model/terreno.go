package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Terreno estados
const (
	TerrenoDisponible   = "DISPONIBLE"
	TerrenoApartado     = "APARTADO"
	TerrenoVendido      = "VENDIDO"
	TerrenoNoDisponible = "NO_DISPONIBLE"
)

// Terreno is a single land lot within a proyecto.
// precio_final = (precio_base + precio_ajuste) * precio_multiplicador
type Terreno struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProyectoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Proyecto   *Proyecto `gorm:"foreignKey:ProyectoID"`

	NumeroLote string  `gorm:"type:varchar(20);not null"`
	Manzana    *string `gorm:"type:varchar(20)"`

	// Dimensions in square meters / linear meters
	Area   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Frente *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Fondo  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	PrecioBase          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PrecioAjuste        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PrecioMultiplicador decimal.Decimal `gorm:"type:decimal(8,4);not null;default:1"`
	PrecioFinal         decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	Estado        string  `gorm:"type:varchar(20);not null;default:'DISPONIBLE'"`
	Observaciones *string `gorm:"type:text"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Terreno) TableName() string { return "terrenos" }

// CalcularPrecioFinal recomputes PrecioFinal from the pricing components.
func (t *Terreno) CalcularPrecioFinal() {
	t.PrecioFinal = t.PrecioBase.Add(t.PrecioAjuste).Mul(t.PrecioMultiplicador).Round(2)
}
