package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Métodos de pago
const (
	MetodoEfectivo       = "EFECTIVO"
	MetodoTransferencia  = "TRANSFERENCIA"
	MetodoCheque         = "CHEQUE"
	MetodoTarjetaCredito = "TARJETA_CREDITO"
	MetodoTarjetaDebito  = "TARJETA_DEBITO"
	MetodoOtro           = "OTRO"
)

// Estados de pago
const (
	PagoAplicado    = "APLICADO"
	PagoCancelado   = "CANCELADO"
	PagoReembolsado = "REEMBOLSADO"
)

// Pago is a money receipt applied against a plan's installments. The
// capital/interes/mora split records how the allocator distributed the
// amount; monto_pagado == monto_a_capital + monto_a_interes + monto_a_mora.
type Pago struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanPagoID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	AmortizacionID *uuid.UUID `gorm:"type:uuid;index"`
	ClienteID      *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID      *uuid.UUID `gorm:"type:uuid"`

	FechaPago   time.Time       `gorm:"type:date;not null"`
	MontoPagado decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	MontoACapital decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MontoAInteres decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MontoAMora    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	MetodoPago     string  `gorm:"type:varchar(20);not null"`
	ReferenciaPago *string `gorm:"type:varchar(100)"`
	Estado         string  `gorm:"type:varchar(20);not null;default:'APLICADO'"`
	Observaciones  *string `gorm:"type:text"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Pago) TableName() string { return "pagos" }
