package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta estados
const (
	VentaPendiente = "PENDIENTE"
	VentaPagada    = "PAGADA"
	VentaCancelada = "CANCELADA"
	VentaAnulada   = "ANULADA"
)

// Venta records the sale of a terreno to a cliente. When the sale is
// financed (monto_financiado > 0) it owns exactly one PlanPago, created in
// the same transaction.
type Venta struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TerrenoID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	Terreno    *Terreno   `gorm:"foreignKey:TerrenoID"`
	ClienteID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	Cliente    *Cliente   `gorm:"foreignKey:ClienteID"`
	ApartadoID *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID  *uuid.UUID `gorm:"type:uuid"`

	FechaVenta  time.Time       `gorm:"type:date;not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Enganche    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	Notas       *string         `gorm:"type:text"`

	PlanPago *PlanPago `gorm:"foreignKey:VentaID"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Venta) TableName() string { return "ventas" }
