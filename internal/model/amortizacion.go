package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de amortización. Only PENDIENTE, PAGADA and CONDONADA are ever
// persisted; VENCIDA is derived at read time from fecha_vencimiento plus the
// plan's dias de gracia (see finanzas.EstadoActual), so no background job is
// needed to flip rows at expiry.
const (
	AmortizacionPendiente = "PENDIENTE"
	AmortizacionPagada    = "PAGADA"
	AmortizacionVencida   = "VENCIDA"
	AmortizacionCondonada = "CONDONADA"
)

// Amortizacion is one scheduled installment of a PlanPago. All rows of a
// plan are generated together at plan creation and never created or deleted
// individually.
//
// Invariants (except on CONDONADA rows, where the forgiven remainder breaks
// the second one on purpose):
//
//	monto_total     == monto_capital + monto_interes
//	saldo_pendiente == monto_total - monto_pagado
type Amortizacion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanPagoID uuid.UUID `gorm:"type:uuid;index;not null"`

	// 1-based position within the plan; defines due order.
	NumeroAmortizacion int       `gorm:"not null"`
	FechaVencimiento   time.Time `gorm:"type:date;not null"`

	MontoCapital   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MontoInteres   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MontoTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MontoPagado    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SaldoPendiente decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	// Outstanding principal after this row is paid (schedule column).
	SaldoRestante decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	// Late-payment surcharge, refreshed from the plan's tasa de mora while
	// the row is overdue. Paid before interest and capital.
	MoraAcumulada decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DiasAtraso    int             `gorm:"not null;default:0"`

	FechaPago *time.Time `gorm:"type:date"`
	Estado    string     `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	Notas     *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Amortizacion) TableName() string { return "amortizaciones" }

// Cerrada reports whether the row accepts no further payment.
func (a *Amortizacion) Cerrada() bool {
	return a.Estado == AmortizacionPagada || a.Estado == AmortizacionCondonada
}
