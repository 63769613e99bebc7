package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de plan
const (
	PlanContado                = "CONTADO"
	PlanCredito                = "CREDITO"
	PlanApartadoFinanciamiento = "APARTADO_CON_FINANCIAMIENTO"
)

// Frecuencias de pago
const (
	FrecuenciaSemanal    = "SEMANAL"
	FrecuenciaQuincenal  = "QUINCENAL"
	FrecuenciaMensual    = "MENSUAL"
	FrecuenciaBimestral  = "BIMESTRAL"
	FrecuenciaTrimestral = "TRIMESTRAL"
	FrecuenciaSemestral  = "SEMESTRAL"
	FrecuenciaAnual      = "ANUAL"
)

// PlanPago holds the financing terms of a Venta and cached progress
// aggregates. Financial terms are immutable after creation; only notas,
// tasa de mora and dias de gracia can change. The invariant
// monto_financiado == monto_total - enganche holds at all times.
type PlanPago struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	ClienteID *uuid.UUID `gorm:"type:uuid;index"`

	TipoPlan       string `gorm:"type:varchar(30);not null"`
	FrecuenciaPago string `gorm:"type:varchar(20);not null;default:'MENSUAL'"`

	MontoTotal      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Enganche        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MontoFinanciado decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	AplicaInteres      bool            `gorm:"not null;default:false"`
	TasaInteresAnual   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TasaInteresMensual decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0"`

	TasaMoraMensual decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiasGracia      int             `gorm:"not null;default:0"`

	NumeroPagos int `gorm:"not null"`
	PlazoMeses  int `gorm:"not null;default:1"`

	FechaInicio     time.Time `gorm:"type:date;not null"`
	FechaPrimerPago time.Time `gorm:"type:date;not null"`
	FechaUltimoPago time.Time `gorm:"type:date;not null"`

	Notas *string `gorm:"type:text"`

	// Cached aggregates — recomputed from the amortization rows, never
	// hand-edited. See finanzas.RecalcularAvance.
	TotalPagado              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalPendiente           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AmortizacionesPagadas    int             `gorm:"not null;default:0"`
	AmortizacionesPendientes int             `gorm:"not null;default:0"`
	AmortizacionesVencidas   int             `gorm:"not null;default:0"`
	PorcentajeAvance         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	Amortizaciones []Amortizacion `gorm:"foreignKey:PlanPagoID"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlanPago) TableName() string { return "planes_pago" }
