package dto

import "github.com/shopspring/decimal"

// CrearPlanPagoTerminos carries the financing terms when a venta (or an
// apartado conversion) creates its plan. The amortization table is generated
// from these in the same transaction.
type CrearPlanPagoTerminos struct {
	TipoPlan       string `json:"tipo_plan"       validate:"required,oneof=CONTADO CREDITO APARTADO_CON_FINANCIAMIENTO"`
	FrecuenciaPago string `json:"frecuencia_pago" validate:"required,oneof=SEMANAL QUINCENAL MENSUAL BIMESTRAL TRIMESTRAL SEMESTRAL ANUAL"`
	NumeroPagos    int    `json:"numero_pagos"    validate:"required,min=1,max=480"`

	AplicaInteres    bool            `json:"aplica_interes"`
	TasaInteresAnual decimal.Decimal `json:"tasa_interes_anual" validate:"min=0"`
	TasaMoraMensual  decimal.Decimal `json:"tasa_mora_mensual"  validate:"min=0"`
	DiasGracia       int             `json:"dias_gracia"        validate:"min=0,max=30"`

	FechaPrimerPago string  `json:"fecha_primer_pago" validate:"required,datetime=2006-01-02"`
	Notas           *string `json:"notas"`
}

// CrearPlanPagoRequest attaches a plan to an existing venta that was sold
// without one. The venta must have no active plan.
type CrearPlanPagoRequest struct {
	VentaID  string                `json:"venta_id" validate:"required,uuid"`
	Terminos CrearPlanPagoTerminos `json:"terminos" validate:"required"`
}

// ActualizarPlanPagoRequest: financial terms are immutable, only these
// operational fields can change after creation.
type ActualizarPlanPagoRequest struct {
	TasaMoraMensual *decimal.Decimal `json:"tasa_mora_mensual" validate:"omitempty"`
	DiasGracia      *int             `json:"dias_gracia"       validate:"omitempty,min=0,max=30"`
	Notas           *string          `json:"notas"`
}

type PlanPagoFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	// conVencidas narrows to plans with at least one overdue installment.
	ConVencidas bool `form:"con_vencidas"`
	Page        int  `form:"page,default=1"   validate:"min=1"`
	Limit       int  `form:"limit,default=50" validate:"min=1,max=200"`
}

type AmortizacionResponse struct {
	ID                 string          `json:"id"`
	NumeroAmortizacion int             `json:"numero_amortizacion"`
	FechaVencimiento   string          `json:"fecha_vencimiento"`
	MontoCapital       decimal.Decimal `json:"monto_capital"`
	MontoInteres       decimal.Decimal `json:"monto_interes"`
	MontoTotal         decimal.Decimal `json:"monto_total"`
	MontoPagado        decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente     decimal.Decimal `json:"saldo_pendiente"`
	SaldoRestante      decimal.Decimal `json:"saldo_restante"`
	MoraAcumulada      decimal.Decimal `json:"mora_acumulada"`
	DiasAtraso         int             `json:"dias_atraso"`
	FechaPago          *string         `json:"fecha_pago"`
	// Effective estado: PENDIENTE rows past due plus grace read as VENCIDA.
	Estado string  `json:"estado"`
	Notas  *string `json:"notas"`
}

type PlanPagoResponse struct {
	ID        string  `json:"id"`
	VentaID   string  `json:"venta_id"`
	ClienteID *string `json:"cliente_id"`
	Cliente   string  `json:"cliente,omitempty"`

	TipoPlan       string `json:"tipo_plan"`
	FrecuenciaPago string `json:"frecuencia_pago"`

	MontoTotal      decimal.Decimal `json:"monto_total"`
	Enganche        decimal.Decimal `json:"enganche"`
	MontoFinanciado decimal.Decimal `json:"monto_financiado"`

	AplicaInteres      bool            `json:"aplica_interes"`
	TasaInteresAnual   decimal.Decimal `json:"tasa_interes_anual"`
	TasaInteresMensual decimal.Decimal `json:"tasa_interes_mensual"`
	TasaMoraMensual    decimal.Decimal `json:"tasa_mora_mensual"`
	DiasGracia         int             `json:"dias_gracia"`

	NumeroPagos     int    `json:"numero_pagos"`
	PlazoMeses      int    `json:"plazo_meses"`
	FechaInicio     string `json:"fecha_inicio"`
	FechaPrimerPago string `json:"fecha_primer_pago"`
	FechaUltimoPago string `json:"fecha_ultimo_pago"`

	TotalPagado              decimal.Decimal `json:"total_pagado"`
	TotalPendiente           decimal.Decimal `json:"total_pendiente"`
	AmortizacionesPagadas    int             `json:"amortizaciones_pagadas"`
	AmortizacionesPendientes int             `json:"amortizaciones_pendientes"`
	AmortizacionesVencidas   int             `json:"amortizaciones_vencidas"`
	PorcentajeAvance         decimal.Decimal `json:"porcentaje_avance"`

	Notas     *string                `json:"notas"`
	Tabla     []AmortizacionResponse `json:"tabla,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

type PlanPagoListResponse struct {
	Data  []PlanPagoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// TablaAmortizacionResponse is the schedule alone, with column totals.
type TablaAmortizacionResponse struct {
	PlanPagoID   string                 `json:"plan_pago_id"`
	Tabla        []AmortizacionResponse `json:"tabla"`
	TotalCapital decimal.Decimal        `json:"total_capital"`
	TotalInteres decimal.Decimal        `json:"total_interes"`
	TotalCuotas  decimal.Decimal        `json:"total_cuotas"`
	TotalPagado  decimal.Decimal        `json:"total_pagado"`
}

// EstadoCuentaResponse is the full account statement of a plan: identity,
// progress, the complete table and the payment history.
type EstadoCuentaResponse struct {
	Plan          PlanPagoResponse       `json:"plan"`
	Terreno       string                 `json:"terreno"`
	Proyecto      string                 `json:"proyecto"`
	Tabla         []AmortizacionResponse `json:"tabla"`
	Pagos         []PagoResponse         `json:"pagos"`
	MoraAcumulada decimal.Decimal        `json:"mora_acumulada"`
	ProximaCuota  *AmortizacionResponse  `json:"proxima_cuota"`
	GeneradoEn    string                 `json:"generado_en"`
}

type CondonarAmortizacionRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}
