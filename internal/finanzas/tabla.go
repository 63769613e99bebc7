// Package finanzas implements the payment-plan arithmetic: amortization
// table generation, derived installment state, payment allocation and plan
// progress aggregates. Everything here is pure — no repositories, no clock
// other than the `hoy` arguments — so the service layer can run it inside a
// transaction and the tests can run it against literal values.
package finanzas

import (
	"errors"
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrTerminosInvalidos rejects plan terms before any row is persisted.
	ErrTerminosInvalidos = errors.New("terminos del plan invalidos")
	// ErrAmortizacionCerrada is returned when a payment targets a row that
	// is already PAGADA or CONDONADA.
	ErrAmortizacionCerrada = errors.New("la amortizacion ya esta cerrada")
	// ErrSobrepago rejects a payment larger than everything still owed on
	// the plan. Nothing is written, so a retried request fails identically.
	ErrSobrepago = errors.New("el monto excede el saldo pendiente del plan")
)

var cien = decimal.NewFromInt(100)

// frecuenciaDias maps each payment frequency to its nominal day count.
// Used for plazo estimation and for the sub-monthly due-date steps.
var frecuenciaDias = map[string]int{
	model.FrecuenciaSemanal:    7,
	model.FrecuenciaQuincenal:  15,
	model.FrecuenciaMensual:    30,
	model.FrecuenciaBimestral:  60,
	model.FrecuenciaTrimestral: 90,
	model.FrecuenciaSemestral:  180,
	model.FrecuenciaAnual:      365,
}

// frecuenciaMeses maps month-based frequencies to their calendar step.
// MENSUAL and larger advance by calendar months so a schedule that starts
// on the 5th stays on the 5th instead of drifting with 30-day steps.
var frecuenciaMeses = map[string]int{
	model.FrecuenciaMensual:    1,
	model.FrecuenciaBimestral:  2,
	model.FrecuenciaTrimestral: 3,
	model.FrecuenciaSemestral:  6,
	model.FrecuenciaAnual:      12,
}

// FrecuenciaValida reports whether the string is a known payment frequency.
func FrecuenciaValida(frecuencia string) bool {
	_, ok := frecuenciaDias[frecuencia]
	return ok
}

// SiguienteVencimiento returns the due date that follows fecha for the
// given frequency.
func SiguienteVencimiento(fecha time.Time, frecuencia string) time.Time {
	if meses, ok := frecuenciaMeses[frecuencia]; ok {
		return fecha.AddDate(0, meses, 0)
	}
	return fecha.AddDate(0, 0, frecuenciaDias[frecuencia])
}

// FechaUltimoPago returns the due date of installment numeroPagos.
func FechaUltimoPago(fechaPrimerPago time.Time, numeroPagos int, frecuencia string) time.Time {
	fecha := fechaPrimerPago
	for i := 1; i < numeroPagos; i++ {
		fecha = SiguienteVencimiento(fecha, frecuencia)
	}
	return fecha
}

// PlazoMeses estimates the plan length in months, never below 1.
func PlazoMeses(numeroPagos int, frecuencia string) int {
	if meses, ok := frecuenciaMeses[frecuencia]; ok {
		return numeroPagos * meses
	}
	meses := numeroPagos * frecuenciaDias[frecuencia] / 30
	if meses < 1 {
		meses = 1
	}
	return meses
}

// TasaMensualDesdeAnual derives the monthly rate the schedule runs on.
func TasaMensualDesdeAnual(tasaAnual decimal.Decimal) decimal.Decimal {
	return tasaAnual.Div(decimal.NewFromInt(12)).Round(4)
}

// CuotaFija computes the fixed installment of a French amortization:
//
//	cuota = P * i * (1+i)^n / ((1+i)^n - 1)
//
// where i is the monthly rate as a fraction.
func CuotaFija(principal, tasaMensual decimal.Decimal, numeroPagos int) decimal.Decimal {
	n := int64(numeroPagos)
	if tasaMensual.IsZero() {
		return principal.Div(decimal.NewFromInt(n)).Round(2)
	}

	i := tasaMensual.Div(cien).Round(6)
	unoPlusIPotN := decimal.NewFromInt(1).Add(i).Pow(decimal.NewFromInt(n))

	numerador := principal.Mul(i).Mul(unoPlusIPotN)
	denominador := unoPlusIPotN.Sub(decimal.NewFromInt(1))
	return numerador.Div(denominador).Round(2)
}

// ValidarTerminos checks the plan terms the generator depends on.
func ValidarTerminos(plan *model.PlanPago) error {
	switch {
	case plan.NumeroPagos < 1:
		return fmt.Errorf("%w: numero_pagos debe ser >= 1", ErrTerminosInvalidos)
	case plan.MontoFinanciado.IsNegative():
		return fmt.Errorf("%w: monto_financiado no puede ser negativo", ErrTerminosInvalidos)
	case plan.MontoTotal.IsNegative() || plan.Enganche.IsNegative():
		return fmt.Errorf("%w: montos negativos", ErrTerminosInvalidos)
	case !plan.MontoFinanciado.Equal(plan.MontoTotal.Sub(plan.Enganche)):
		return fmt.Errorf("%w: monto_financiado debe ser monto_total - enganche", ErrTerminosInvalidos)
	case plan.TasaInteresAnual.IsNegative() || plan.TasaInteresMensual.IsNegative() || plan.TasaMoraMensual.IsNegative():
		return fmt.Errorf("%w: las tasas no pueden ser negativas", ErrTerminosInvalidos)
	case plan.DiasGracia < 0:
		return fmt.Errorf("%w: dias_gracia no puede ser negativo", ErrTerminosInvalidos)
	case !FrecuenciaValida(plan.FrecuenciaPago):
		return fmt.Errorf("%w: frecuencia_pago desconocida %q", ErrTerminosInvalidos, plan.FrecuenciaPago)
	case plan.FechaPrimerPago.Before(plan.FechaInicio):
		return fmt.Errorf("%w: fecha_primer_pago anterior a fecha_inicio", ErrTerminosInvalidos)
	}
	return nil
}

// GenerarTabla produces the full amortization table for a plan. The
// returned slice has exactly plan.NumeroPagos rows, all PENDIENTE with
// nothing paid, and the capital column sums to monto_financiado to the
// cent: the last row absorbs whatever rounding left over.
//
// Without interest the capital is split evenly. With interest the split is
// a French amortization: fixed installment, interest on the outstanding
// balance, rising capital portion.
func GenerarTabla(plan *model.PlanPago) ([]model.Amortizacion, error) {
	if err := ValidarTerminos(plan); err != nil {
		return nil, err
	}

	numeroPagos := plan.NumeroPagos
	saldo := plan.MontoFinanciado
	vencimiento := plan.FechaPrimerPago
	conInteres := plan.AplicaInteres && plan.TasaInteresMensual.IsPositive()

	var cuotaFija, capitalPorCuota decimal.Decimal
	if conInteres {
		cuotaFija = CuotaFija(plan.MontoFinanciado, plan.TasaInteresMensual, numeroPagos)
	} else {
		capitalPorCuota = plan.MontoFinanciado.Div(decimal.NewFromInt(int64(numeroPagos))).Round(2)
	}

	tabla := make([]model.Amortizacion, 0, numeroPagos)
	for i := 1; i <= numeroPagos; i++ {
		var capital, interes decimal.Decimal
		if conInteres {
			interes = saldo.Mul(plan.TasaInteresMensual.Div(cien).Round(6)).Round(2)
			capital = cuotaFija.Sub(interes)
		} else {
			capital = capitalPorCuota
		}
		if i == numeroPagos {
			// Last row absorbs the rounding remainder.
			capital = saldo
		}
		saldo = saldo.Sub(capital)

		montoTotal := capital.Add(interes)
		tabla = append(tabla, model.Amortizacion{
			PlanPagoID:         plan.ID,
			NumeroAmortizacion: i,
			FechaVencimiento:   vencimiento,
			MontoCapital:       capital.Round(2),
			MontoInteres:       interes.Round(2),
			MontoTotal:         montoTotal.Round(2),
			MontoPagado:        decimal.Zero,
			SaldoPendiente:     montoTotal.Round(2),
			SaldoRestante:      saldo.Round(2),
			MoraAcumulada:      decimal.Zero,
			Estado:             model.AmortizacionPendiente,
		})

		vencimiento = SiguienteVencimiento(vencimiento, plan.FrecuenciaPago)
	}

	return tabla, nil
}
