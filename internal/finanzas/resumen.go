package finanzas

import (
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
)

// RecalcularAvance rebuilds the plan's cached aggregates from its
// amortization rows. Run inside the same transaction as any mutation that
// touches a row, so the cache never survives a write it disagrees with.
//
// totalPagado sums monto_pagado only; forgiven remainders on CONDONADA
// rows reduce totalPendiente but never count as collected, so the
// porcentaje de avance reflects money in, not paper closed.
func RecalcularAvance(plan *model.PlanPago, amortizaciones []*model.Amortizacion, hoy time.Time) {
	totalPagado := decimal.Zero
	condonado := decimal.Zero
	var pagadas, pendientes, vencidas int

	for _, a := range amortizaciones {
		totalPagado = totalPagado.Add(a.MontoPagado)
		switch EstadoActual(a, plan.DiasGracia, hoy) {
		case model.AmortizacionPagada:
			pagadas++
		case model.AmortizacionCondonada:
			condonado = condonado.Add(a.MontoTotal.Sub(a.MontoPagado))
		case model.AmortizacionVencida:
			vencidas++
		default:
			pendientes++
		}
	}

	pendiente := plan.MontoFinanciado.Sub(totalPagado).Sub(condonado)
	if pendiente.IsNegative() {
		pendiente = decimal.Zero
	}

	// With nothing financed there is no progress to measure: 0%, never an
	// error and never a division by zero.
	avance := decimal.Zero
	if plan.MontoFinanciado.IsPositive() {
		avance = totalPagado.Mul(cien).Div(plan.MontoFinanciado).Round(2)
		if avance.GreaterThan(cien) {
			avance = cien
		}
	}

	plan.TotalPagado = totalPagado.Round(2)
	plan.TotalPendiente = pendiente.Round(2)
	plan.AmortizacionesPagadas = pagadas
	plan.AmortizacionesPendientes = pendientes
	plan.AmortizacionesVencidas = vencidas
	plan.PorcentajeAvance = avance
}

// Liquidado reports whether every row of the plan is closed.
func Liquidado(amortizaciones []*model.Amortizacion) bool {
	for _, a := range amortizaciones {
		if !a.Cerrada() {
			return false
		}
	}
	return true
}
