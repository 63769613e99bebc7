package dto

import "github.com/shopspring/decimal"

// DashboardResponse summarizes inventory, sales and collections. Served
// from a short-lived Redis cache.
type DashboardResponse struct {
	TotalProyectos      int64 `json:"total_proyectos"`
	TotalTerrenos       int64 `json:"total_terrenos"`
	TerrenosDisponibles int64 `json:"terrenos_disponibles"`
	TerrenosApartados   int64 `json:"terrenos_apartados"`
	TerrenosVendidos    int64 `json:"terrenos_vendidos"`

	VentasDelMes      int64           `json:"ventas_del_mes"`
	MontoVentasDelMes decimal.Decimal `json:"monto_ventas_del_mes"`

	PagosDelMes      int64           `json:"pagos_del_mes"`
	MontoPagosDelMes decimal.Decimal `json:"monto_pagos_del_mes"`

	PlanesActivos        int64           `json:"planes_activos"`
	PlanesConVencidas    int64           `json:"planes_con_vencidas"`
	CarteraVencida       decimal.Decimal `json:"cartera_vencida"`
	CarteraPorCobrar     decimal.Decimal `json:"cartera_por_cobrar"`
	ApartadosVigentes    int64           `json:"apartados_vigentes"`
	CotizacionesVigentes int64           `json:"cotizaciones_vigentes"`

	GeneradoEn string `json:"generado_en"`
}

// CuotaVencidaItem is one overdue installment in the collections report.
type CuotaVencidaItem struct {
	PlanPagoID         string          `json:"plan_pago_id"`
	Cliente            string          `json:"cliente"`
	Terreno            string          `json:"terreno"`
	NumeroAmortizacion int             `json:"numero_amortizacion"`
	FechaVencimiento   string          `json:"fecha_vencimiento"`
	SaldoPendiente     decimal.Decimal `json:"saldo_pendiente"`
	MoraAcumulada      decimal.Decimal `json:"mora_acumulada"`
	DiasAtraso         int             `json:"dias_atraso"`
}

type CuotasVencidasResponse struct {
	Data       []CuotaVencidaItem `json:"data"`
	TotalSaldo decimal.Decimal    `json:"total_saldo"`
	TotalMora  decimal.Decimal    `json:"total_mora"`
}

type ReporteVentasFilter struct {
	Desde      string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
	ProyectoID string `form:"proyecto_id" validate:"omitempty,uuid"`
}
