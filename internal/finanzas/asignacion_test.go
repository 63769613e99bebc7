package finanzas

import (
	"testing"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tablaDePrueba(t *testing.T, plan *model.PlanPago) []*model.Amortizacion {
	t.Helper()
	tabla, err := GenerarTabla(plan)
	require.NoError(t, err)
	rows := make([]*model.Amortizacion, len(tabla))
	for i := range tabla {
		rows[i] = &tabla[i]
	}
	return rows
}

func TestAplicarPagoCuotaExacta(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	d, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(1000), hoy, hoy)
	require.NoError(t, err)

	assert.True(t, d.ACapital.Equal(decimal.NewFromInt(1000)))
	assert.True(t, d.AInteres.IsZero())
	assert.True(t, d.AMora.IsZero())

	assert.Equal(t, model.AmortizacionPagada, rows[0].Estado)
	assert.True(t, rows[0].SaldoPendiente.IsZero())
	require.NotNil(t, rows[0].FechaPago)
	assert.Equal(t, model.AmortizacionPendiente, rows[1].Estado)
	assert.Same(t, rows[0], d.PrimeraAmortizacion)
}

func TestAplicarPagoParcial(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(400), hoy, hoy)
	require.NoError(t, err)

	assert.Equal(t, model.AmortizacionPendiente, rows[0].Estado)
	assert.True(t, rows[0].MontoPagado.Equal(decimal.NewFromInt(400)))
	assert.True(t, rows[0].SaldoPendiente.Equal(decimal.NewFromInt(600)))
}

func TestAplicarPagoCascadaVariasCuotas(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	// 2500 cierra dos cuotas de 1000 y deja 500 en la tercera.
	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(2500), hoy, hoy)
	require.NoError(t, err)

	assert.Equal(t, model.AmortizacionPagada, rows[0].Estado)
	assert.Equal(t, model.AmortizacionPagada, rows[1].Estado)
	assert.True(t, rows[2].MontoPagado.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, model.AmortizacionPendiente, rows[2].Estado)
	assert.True(t, rows[3].MontoPagado.IsZero())
}

func TestAplicarPagoPrioridadMoraInteresCapital(t *testing.T) {
	plan := planBase()
	plan.TasaMoraMensual = decimal.NewFromInt(3)
	plan.AplicaInteres = true
	plan.TasaInteresMensual = decimal.NewFromInt(1)
	plan.MontoTotal = decimal.NewFromInt(100000)
	plan.MontoFinanciado = decimal.NewFromInt(100000)
	rows := tablaDePrueba(t, plan)

	// 20 days past the first due date: mora accrues on cuota 1.
	hoy := rows[0].FechaVencimiento.AddDate(0, 0, 20)
	moraEsperada := Mora(rows[0].MontoTotal, plan.TasaMoraMensual, 20)
	require.True(t, moraEsperada.IsPositive())

	pago := moraEsperada.Add(rows[0].MontoInteres).Add(decimal.NewFromInt(100))
	d, err := AplicarPago(plan, rows, nil, pago, hoy, hoy)
	require.NoError(t, err)

	assert.True(t, d.AMora.Equal(moraEsperada), "mora %s vs %s", d.AMora, moraEsperada)
	assert.True(t, d.AInteres.Equal(rows[0].MontoInteres))
	assert.True(t, d.ACapital.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].MoraAcumulada.IsZero())
	assert.Equal(t, model.AmortizacionPendiente, rows[0].Estado)
}

func TestAplicarPagoSobrepago(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(12001), hoy, hoy)
	assert.ErrorIs(t, err, ErrSobrepago)

	// Nothing was written.
	for _, a := range rows {
		assert.True(t, a.MontoPagado.IsZero())
		assert.Equal(t, model.AmortizacionPendiente, a.Estado)
		assert.Nil(t, a.FechaPago)
	}
}

func TestAplicarPagoObjetivo(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, rows[2], decimal.NewFromInt(1000), hoy, hoy)
	require.NoError(t, err)

	assert.Equal(t, model.AmortizacionPagada, rows[2].Estado)
	assert.True(t, rows[0].MontoPagado.IsZero())

	// A targeted payment larger than that row is an overpayment even when
	// the rest of the plan could absorb it.
	_, err = AplicarPago(plan, rows, rows[3], decimal.NewFromInt(1500), hoy, hoy)
	assert.ErrorIs(t, err, ErrSobrepago)

	_, err = AplicarPago(plan, rows, rows[2], decimal.NewFromInt(10), hoy, hoy)
	assert.ErrorIs(t, err, ErrAmortizacionCerrada)
}

func TestAplicarPagoPlanLiquidado(t *testing.T) {
	plan := planBase()
	plan.NumeroPagos = 1
	plan.MontoTotal = decimal.NewFromInt(1000)
	plan.MontoFinanciado = decimal.NewFromInt(1000)
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(1000), hoy, hoy)
	require.NoError(t, err)
	assert.True(t, Liquidado(rows))

	_, err = AplicarPago(plan, rows, nil, decimal.NewFromInt(1), hoy, hoy)
	assert.ErrorIs(t, err, ErrAmortizacionCerrada)
}

func TestAplicarPagoMontoInvalido(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.Zero, hoy, hoy)
	assert.ErrorIs(t, err, ErrTerminosInvalidos)
	_, err = AplicarPago(plan, rows, nil, decimal.NewFromInt(-5), hoy, hoy)
	assert.ErrorIs(t, err, ErrTerminosInvalidos)
}
