package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Apartado estados. "VENCIDO" is never stored: an apartado is vencido when
// estado == VIGENTE and fecha_vencimiento < today.
const (
	ApartadoVigente    = "VIGENTE"
	ApartadoConvertido = "CONVERTIDO"
	ApartadoCancelado  = "CANCELADO"
)

// Apartado is a time-limited reservation of a terreno pending conversion
// to a venta. While VIGENTE, the terreno stays in estado APARTADO.
type Apartado struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TerrenoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Terreno   *Terreno  `gorm:"foreignKey:TerrenoID"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Cliente   *Cliente  `gorm:"foreignKey:ClienteID"`

	MontoApartado    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PrecioTotal      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FechaApartado    time.Time       `gorm:"type:date;not null"`
	FechaVencimiento time.Time       `gorm:"type:date;not null"`
	Estado           string          `gorm:"type:varchar(20);not null;default:'VIGENTE'"`
	Observaciones    *string         `gorm:"type:text"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Apartado) TableName() string { return "apartados" }

// Vencido reports whether a VIGENTE apartado has passed its expiry date.
func (a *Apartado) Vencido(hoy time.Time) bool {
	return a.Estado == ApartadoVigente && a.FechaVencimiento.Before(hoy)
}
