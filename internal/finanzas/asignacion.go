package finanzas

import (
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
)

// Desglose is how a payment was distributed across the plan.
type Desglose struct {
	ACapital decimal.Decimal
	AInteres decimal.Decimal
	AMora    decimal.Decimal
	// PrimeraAmortizacion is the first row the payment touched.
	PrimeraAmortizacion *model.Amortizacion
}

// AplicarPago allocates monto against the plan's installments, earliest
// numero_amortizacion first, paying mora, then interest, then capital
// within each row, carrying the remainder forward. Mora is a surcharge on
// top of the scheduled cuota: it reduces mora_acumulada but never counts
// into monto_pagado, so 0 <= monto_pagado <= monto_total stays true.
//
// The rows slice must be ordered by numero_amortizacion and must be the
// plan's complete, current snapshot (the caller holds the plan lock).
// Before anything is mutated the amount is checked against everything
// still owed; a payment that could not be fully consumed fails with
// ErrSobrepago and leaves every row untouched. When objetivo is non-nil
// only that row receives money; paying a closed row fails with
// ErrAmortizacionCerrada.
func AplicarPago(plan *model.PlanPago, rows []*model.Amortizacion, objetivo *model.Amortizacion, monto decimal.Decimal, fechaPago, hoy time.Time) (Desglose, error) {
	var d Desglose

	if !monto.IsPositive() {
		return d, ErrTerminosInvalidos
	}

	ActualizarMora(plan, rows, hoy)

	elegibles := rows
	if objetivo != nil {
		if objetivo.Cerrada() {
			return d, ErrAmortizacionCerrada
		}
		elegibles = []*model.Amortizacion{objetivo}
	}

	// Pre-flight: total still collectable across eligible rows.
	disponible := decimal.Zero
	abiertas := 0
	for _, a := range elegibles {
		if a.Cerrada() {
			continue
		}
		abiertas++
		disponible = disponible.Add(a.SaldoPendiente).Add(a.MoraAcumulada)
	}
	if abiertas == 0 {
		return d, ErrAmortizacionCerrada
	}
	if monto.GreaterThan(disponible) {
		return d, ErrSobrepago
	}

	restante := monto
	for _, a := range elegibles {
		if !restante.IsPositive() {
			break
		}
		if a.Cerrada() {
			continue
		}

		// 1. Mora
		if a.MoraAcumulada.IsPositive() {
			pagoMora := decimal.Min(restante, a.MoraAcumulada)
			a.MoraAcumulada = a.MoraAcumulada.Sub(pagoMora)
			d.AMora = d.AMora.Add(pagoMora)
			restante = restante.Sub(pagoMora)
		}
		if !restante.IsPositive() {
			if d.PrimeraAmortizacion == nil {
				d.PrimeraAmortizacion = a
			}
			break
		}

		// 2. Interés still unpaid on this row
		interesPendiente := a.MontoInteres.Sub(decimal.Min(a.MontoPagado, a.MontoInteres))
		pagoInteres := decimal.Min(restante, interesPendiente)
		d.AInteres = d.AInteres.Add(pagoInteres)
		restante = restante.Sub(pagoInteres)

		// 3. Capital
		pagoCapital := decimal.Min(restante, a.SaldoPendiente.Sub(pagoInteres))
		d.ACapital = d.ACapital.Add(pagoCapital)
		restante = restante.Sub(pagoCapital)

		aplicado := pagoInteres.Add(pagoCapital)
		if aplicado.IsPositive() || d.PrimeraAmortizacion == nil {
			a.MontoPagado = a.MontoPagado.Add(aplicado)
			a.SaldoPendiente = a.MontoTotal.Sub(a.MontoPagado)
			fp := fechaPago
			a.FechaPago = &fp

			if a.SaldoPendiente.IsZero() {
				a.Estado = model.AmortizacionPagada
				a.DiasAtraso = 0
				a.MoraAcumulada = decimal.Zero
			}
			if d.PrimeraAmortizacion == nil {
				d.PrimeraAmortizacion = a
			}
		}
	}

	return d, nil
}
