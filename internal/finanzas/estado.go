package finanzas

import (
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
)

// EstadoActual derives the effective state of an installment on a given
// date. PAGADA and CONDONADA are terminal and returned as stored; a
// PENDIENTE row reads as VENCIDA once today is past fecha_vencimiento plus
// the grace period. The overdue flip is never persisted — it comes out of
// this comparison on every read, so no sweeper has to run at expiry.
func EstadoActual(a *model.Amortizacion, diasGracia int, hoy time.Time) string {
	if a.Cerrada() {
		return a.Estado
	}
	limite := a.FechaVencimiento.AddDate(0, 0, diasGracia)
	if hoy.After(limite) {
		return model.AmortizacionVencida
	}
	return model.AmortizacionPendiente
}

// DiasAtraso counts days past the grace limit; zero while within grace or
// for closed rows.
func DiasAtraso(a *model.Amortizacion, diasGracia int, hoy time.Time) int {
	if a.Cerrada() {
		return 0
	}
	limite := a.FechaVencimiento.AddDate(0, 0, diasGracia)
	if !hoy.After(limite) {
		return 0
	}
	return int(hoy.Sub(limite).Hours() / 24)
}

// Mora computes the late surcharge on a pending balance:
//
//	mora = saldo * (tasaMoraMensual / 30 / 100) * diasAtraso
func Mora(saldoPendiente, tasaMoraMensual decimal.Decimal, diasAtraso int) decimal.Decimal {
	if tasaMoraMensual.IsZero() || diasAtraso <= 0 {
		return decimal.Zero
	}
	tasaDiaria := tasaMoraMensual.Div(decimal.NewFromInt(30)).Div(cien).Round(6)
	return saldoPendiente.Mul(tasaDiaria).Mul(decimal.NewFromInt(int64(diasAtraso))).Round(2)
}

// ActualizarMora refreshes dias_atraso and mora_acumulada on every open row
// of the plan. Called inside the payment transaction before allocating.
func ActualizarMora(plan *model.PlanPago, amortizaciones []*model.Amortizacion, hoy time.Time) {
	for _, a := range amortizaciones {
		if a.Cerrada() {
			continue
		}
		dias := DiasAtraso(a, plan.DiasGracia, hoy)
		a.DiasAtraso = dias
		a.MoraAcumulada = Mora(a.SaldoPendiente, plan.TasaMoraMensual, dias)
	}
}

// Condonar administratively waives an installment: the remaining balance is
// forgiven, the row closes, and it drops out of pendiente/vencida counts.
// What was actually collected (monto_pagado) stays untouched, so forgiving
// never inflates totalPagado or the porcentaje de avance.
func Condonar(a *model.Amortizacion) error {
	if a.Cerrada() {
		return ErrAmortizacionCerrada
	}
	a.Estado = model.AmortizacionCondonada
	a.SaldoPendiente = decimal.Zero
	a.MoraAcumulada = decimal.Zero
	a.DiasAtraso = 0
	return nil
}
