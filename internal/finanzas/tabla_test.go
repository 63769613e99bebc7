package finanzas

import (
	"testing"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func planBase() *model.PlanPago {
	return &model.PlanPago{
		TipoPlan:        model.PlanCredito,
		FrecuenciaPago:  model.FrecuenciaMensual,
		MontoTotal:      decimal.NewFromInt(12000),
		Enganche:        decimal.Zero,
		MontoFinanciado: decimal.NewFromInt(12000),
		NumeroPagos:     12,
		FechaInicio:     fecha(2026, time.January, 5),
		FechaPrimerPago: fecha(2026, time.February, 5),
	}
}

func TestGenerarTablaSinInteres(t *testing.T) {
	plan := planBase()

	tabla, err := GenerarTabla(plan)
	require.NoError(t, err)
	require.Len(t, tabla, 12)

	suma := decimal.Zero
	for i, a := range tabla {
		assert.Equal(t, i+1, a.NumeroAmortizacion)
		assert.Equal(t, model.AmortizacionPendiente, a.Estado)
		assert.True(t, a.MontoPagado.IsZero())
		assert.True(t, a.MontoTotal.Equal(a.MontoCapital.Add(a.MontoInteres)))
		assert.True(t, a.SaldoPendiente.Equal(a.MontoTotal))
		suma = suma.Add(a.MontoCapital)
	}
	assert.True(t, suma.Equal(plan.MontoFinanciado), "capital debe sumar exacto: %s", suma)
	assert.True(t, tabla[0].MontoTotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tabla[11].SaldoRestante.IsZero())
}

func TestGenerarTablaUltimaCuotaAbsorbeRedondeo(t *testing.T) {
	plan := planBase()
	plan.MontoTotal = decimal.NewFromInt(10000)
	plan.MontoFinanciado = decimal.NewFromInt(10000)
	plan.NumeroPagos = 3

	tabla, err := GenerarTabla(plan)
	require.NoError(t, err)
	require.Len(t, tabla, 3)

	// 10000/3 = 3333.33, last row picks up the extra centavo.
	assert.True(t, tabla[0].MontoCapital.Equal(decimal.RequireFromString("3333.33")))
	assert.True(t, tabla[1].MontoCapital.Equal(decimal.RequireFromString("3333.33")))
	assert.True(t, tabla[2].MontoCapital.Equal(decimal.RequireFromString("3333.34")))

	suma := tabla[0].MontoCapital.Add(tabla[1].MontoCapital).Add(tabla[2].MontoCapital)
	assert.True(t, suma.Equal(plan.MontoFinanciado))
}

func TestGenerarTablaFrancesa(t *testing.T) {
	plan := planBase()
	plan.MontoTotal = decimal.NewFromInt(100000)
	plan.MontoFinanciado = decimal.NewFromInt(100000)
	plan.AplicaInteres = true
	plan.TasaInteresAnual = decimal.NewFromInt(12)
	plan.TasaInteresMensual = decimal.NewFromInt(1)
	plan.NumeroPagos = 12

	tabla, err := GenerarTabla(plan)
	require.NoError(t, err)
	require.Len(t, tabla, 12)

	cuota := CuotaFija(plan.MontoFinanciado, plan.TasaInteresMensual, 12)

	sumaCapital := decimal.Zero
	for i, a := range tabla {
		sumaCapital = sumaCapital.Add(a.MontoCapital)
		if i < len(tabla)-1 {
			// Fixed installment holds except on the absorbing last row.
			assert.True(t, a.MontoTotal.Equal(cuota),
				"cuota %d: esperado %s, obtenido %s", i+1, cuota, a.MontoTotal)
		}
		if i > 0 {
			// Capital portion grows as the balance shrinks.
			assert.True(t, a.MontoCapital.GreaterThanOrEqual(tabla[i-1].MontoCapital))
			assert.True(t, a.MontoInteres.LessThanOrEqual(tabla[i-1].MontoInteres))
		}
	}
	assert.True(t, sumaCapital.Equal(plan.MontoFinanciado))

	// Last installment stays within a few centavos of the fixed one.
	diff := tabla[11].MontoTotal.Sub(cuota).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(1)), "ajuste final %s", diff)
}

func TestGenerarTablaUnSoloPago(t *testing.T) {
	plan := planBase()
	plan.NumeroPagos = 1

	tabla, err := GenerarTabla(plan)
	require.NoError(t, err)
	require.Len(t, tabla, 1)
	assert.True(t, tabla[0].MontoCapital.Equal(plan.MontoFinanciado))
	assert.True(t, tabla[0].SaldoRestante.IsZero())
	assert.True(t, tabla[0].FechaVencimiento.Equal(plan.FechaPrimerPago))
}

func TestGenerarTablaTerminosInvalidos(t *testing.T) {
	casos := map[string]func(*model.PlanPago){
		"cero pagos":            func(p *model.PlanPago) { p.NumeroPagos = 0 },
		"frecuencia desconocida": func(p *model.PlanPago) { p.FrecuenciaPago = "DIARIA" },
		"financiado inconsistente": func(p *model.PlanPago) {
			p.Enganche = decimal.NewFromInt(500)
		},
		"tasa negativa": func(p *model.PlanPago) {
			p.TasaMoraMensual = decimal.NewFromInt(-1)
		},
		"primer pago antes de inicio": func(p *model.PlanPago) {
			p.FechaPrimerPago = p.FechaInicio.AddDate(0, 0, -1)
		},
	}

	for nombre, mutar := range casos {
		t.Run(nombre, func(t *testing.T) {
			plan := planBase()
			mutar(plan)
			_, err := GenerarTabla(plan)
			assert.ErrorIs(t, err, ErrTerminosInvalidos)
		})
	}
}

func TestVencimientosMensualesNoDerivan(t *testing.T) {
	plan := planBase()
	plan.FechaPrimerPago = fecha(2026, time.January, 31)
	plan.FechaInicio = fecha(2026, time.January, 1)
	plan.NumeroPagos = 3

	tabla, err := GenerarTabla(plan)
	require.NoError(t, err)

	// AddDate normalizes Jan 31 + 1 month to Mar 3; the point is that the
	// step is calendar months, not a fixed 30 days.
	assert.True(t, tabla[1].FechaVencimiento.Equal(fecha(2026, time.March, 3)))
	assert.True(t, tabla[2].FechaVencimiento.Equal(fecha(2026, time.April, 3)))
}

func TestSiguienteVencimientoSubMensual(t *testing.T) {
	base := fecha(2026, time.March, 1)
	assert.True(t, SiguienteVencimiento(base, model.FrecuenciaSemanal).Equal(fecha(2026, time.March, 8)))
	assert.True(t, SiguienteVencimiento(base, model.FrecuenciaQuincenal).Equal(fecha(2026, time.March, 16)))
	assert.True(t, SiguienteVencimiento(base, model.FrecuenciaMensual).Equal(fecha(2026, time.April, 1)))
}

func TestCuotaFijaSinTasa(t *testing.T) {
	cuota := CuotaFija(decimal.NewFromInt(1200), decimal.Zero, 12)
	assert.True(t, cuota.Equal(decimal.NewFromInt(100)))
}

func TestPlazoMeses(t *testing.T) {
	assert.Equal(t, 12, PlazoMeses(12, model.FrecuenciaMensual))
	assert.Equal(t, 24, PlazoMeses(12, model.FrecuenciaBimestral))
	assert.Equal(t, 6, PlazoMeses(26, model.FrecuenciaSemanal))
	assert.Equal(t, 1, PlazoMeses(2, model.FrecuenciaSemanal))
}
