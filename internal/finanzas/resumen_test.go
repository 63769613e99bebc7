package finanzas

import (
	"testing"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalcularAvance(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(3000), hoy, hoy)
	require.NoError(t, err)

	RecalcularAvance(plan, rows, hoy)

	assert.True(t, plan.TotalPagado.Equal(decimal.NewFromInt(3000)))
	assert.True(t, plan.TotalPendiente.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, 3, plan.AmortizacionesPagadas)
	assert.Equal(t, 9, plan.AmortizacionesPendientes)
	assert.Equal(t, 0, plan.AmortizacionesVencidas)
	assert.True(t, plan.PorcentajeAvance.Equal(decimal.NewFromInt(25)))
}

func TestRecalcularAvanceCuentaVencidasDerivadas(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)

	// Two due dates behind, nothing stored as VENCIDA.
	hoy := fecha(2026, time.March, 20)
	RecalcularAvance(plan, rows, hoy)

	assert.Equal(t, 2, plan.AmortizacionesVencidas)
	assert.Equal(t, 10, plan.AmortizacionesPendientes)
	for _, a := range rows {
		assert.NotEqual(t, model.AmortizacionVencida, a.Estado, "VENCIDA nunca se persiste")
	}
}

func TestRecalcularAvanceCondonada(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	// Half of cuota 1 paid, the rest forgiven.
	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(500), hoy, hoy)
	require.NoError(t, err)
	require.NoError(t, Condonar(rows[0]))

	RecalcularAvance(plan, rows, hoy)

	// Collected stays at 500; the forgiven 500 leaves totalPendiente but
	// never enters totalPagado.
	assert.True(t, plan.TotalPagado.Equal(decimal.NewFromInt(500)))
	assert.True(t, plan.TotalPendiente.Equal(decimal.NewFromInt(11000)))
	assert.Equal(t, 0, plan.AmortizacionesPagadas)
	assert.Equal(t, 11, plan.AmortizacionesPendientes)
	avanceEsperado := decimal.NewFromInt(500).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(12000)).Round(2)
	assert.True(t, plan.PorcentajeAvance.Equal(avanceEsperado))
}

func TestRecalcularAvancePlanSinFinanciamiento(t *testing.T) {
	plan := planBase()
	plan.MontoTotal = decimal.NewFromInt(5000)
	plan.Enganche = decimal.NewFromInt(5000)
	plan.MontoFinanciado = decimal.Zero

	RecalcularAvance(plan, nil, fecha(2026, time.February, 1))

	// Zero financed means zero progress, not a division by zero.
	assert.True(t, plan.TotalPendiente.IsZero())
	assert.True(t, plan.PorcentajeAvance.IsZero())
}

func TestRecalcularAvanceIdempotente(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.June, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(2500), hoy, hoy)
	require.NoError(t, err)
	require.NoError(t, Condonar(rows[11]))

	RecalcularAvance(plan, rows, hoy)
	primero := *plan

	// Same snapshot in, same aggregates out.
	RecalcularAvance(plan, rows, hoy)

	assert.True(t, plan.TotalPagado.Equal(primero.TotalPagado))
	assert.True(t, plan.TotalPendiente.Equal(primero.TotalPendiente))
	assert.Equal(t, primero.AmortizacionesPagadas, plan.AmortizacionesPagadas)
	assert.Equal(t, primero.AmortizacionesPendientes, plan.AmortizacionesPendientes)
	assert.Equal(t, primero.AmortizacionesVencidas, plan.AmortizacionesVencidas)
	assert.True(t, plan.PorcentajeAvance.Equal(primero.PorcentajeAvance))
}

func TestRecalcularAvancePlanCompleto(t *testing.T) {
	plan := planBase()
	rows := tablaDePrueba(t, plan)
	hoy := fecha(2026, time.February, 1)

	_, err := AplicarPago(plan, rows, nil, decimal.NewFromInt(12000), hoy, hoy)
	require.NoError(t, err)
	RecalcularAvance(plan, rows, hoy)

	assert.True(t, plan.TotalPendiente.IsZero())
	assert.Equal(t, 12, plan.AmortizacionesPagadas)
	assert.True(t, plan.PorcentajeAvance.Equal(decimal.NewFromInt(100)))
	assert.True(t, Liquidado(rows))
}
