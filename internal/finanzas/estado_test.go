package finanzas

import (
	"testing"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstadoActualDerivaVencida(t *testing.T) {
	a := &model.Amortizacion{
		FechaVencimiento: fecha(2026, time.March, 10),
		Estado:           model.AmortizacionPendiente,
	}

	assert.Equal(t, model.AmortizacionPendiente, EstadoActual(a, 0, fecha(2026, time.March, 10)))
	assert.Equal(t, model.AmortizacionVencida, EstadoActual(a, 0, fecha(2026, time.March, 11)))

	// Grace days push the flip out.
	assert.Equal(t, model.AmortizacionPendiente, EstadoActual(a, 5, fecha(2026, time.March, 15)))
	assert.Equal(t, model.AmortizacionVencida, EstadoActual(a, 5, fecha(2026, time.March, 16)))
}

func TestEstadoActualRespetaEstadosTerminales(t *testing.T) {
	hoy := fecha(2026, time.June, 1)
	pagada := &model.Amortizacion{
		FechaVencimiento: fecha(2026, time.January, 1),
		Estado:           model.AmortizacionPagada,
	}
	condonada := &model.Amortizacion{
		FechaVencimiento: fecha(2026, time.January, 1),
		Estado:           model.AmortizacionCondonada,
	}

	assert.Equal(t, model.AmortizacionPagada, EstadoActual(pagada, 0, hoy))
	assert.Equal(t, model.AmortizacionCondonada, EstadoActual(condonada, 0, hoy))
}

func TestMora(t *testing.T) {
	// 1000 al 3% mensual, 10 dias: 1000 * 0.001 * 10 = 10.00
	mora := Mora(decimal.NewFromInt(1000), decimal.NewFromInt(3), 10)
	assert.True(t, mora.Equal(decimal.NewFromInt(10)), "mora = %s", mora)

	assert.True(t, Mora(decimal.NewFromInt(1000), decimal.Zero, 10).IsZero())
	assert.True(t, Mora(decimal.NewFromInt(1000), decimal.NewFromInt(3), 0).IsZero())
}

func TestActualizarMora(t *testing.T) {
	plan := &model.PlanPago{
		TasaMoraMensual: decimal.NewFromInt(3),
		DiasGracia:      2,
	}
	rows := []*model.Amortizacion{
		{
			FechaVencimiento: fecha(2026, time.March, 1),
			SaldoPendiente:   decimal.NewFromInt(1000),
			Estado:           model.AmortizacionPendiente,
		},
		{
			FechaVencimiento: fecha(2026, time.April, 1),
			SaldoPendiente:   decimal.NewFromInt(1000),
			Estado:           model.AmortizacionPendiente,
		},
		{
			FechaVencimiento: fecha(2026, time.January, 1),
			SaldoPendiente:   decimal.Zero,
			Estado:           model.AmortizacionPagada,
			MoraAcumulada:    decimal.Zero,
		},
	}

	ActualizarMora(plan, rows, fecha(2026, time.March, 13))

	assert.Equal(t, 10, rows[0].DiasAtraso)
	assert.True(t, rows[0].MoraAcumulada.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, rows[1].DiasAtraso)
	assert.True(t, rows[1].MoraAcumulada.IsZero())
	assert.True(t, rows[2].MoraAcumulada.IsZero())
}

func TestCondonar(t *testing.T) {
	a := &model.Amortizacion{
		MontoTotal:     decimal.NewFromInt(1000),
		MontoPagado:    decimal.NewFromInt(400),
		SaldoPendiente: decimal.NewFromInt(600),
		MoraAcumulada:  decimal.NewFromInt(12),
		DiasAtraso:     8,
		Estado:         model.AmortizacionPendiente,
	}

	require.NoError(t, Condonar(a))
	assert.Equal(t, model.AmortizacionCondonada, a.Estado)
	assert.True(t, a.SaldoPendiente.IsZero())
	assert.True(t, a.MoraAcumulada.IsZero())
	assert.Equal(t, 0, a.DiasAtraso)
	// Collected money stays on the row.
	assert.True(t, a.MontoPagado.Equal(decimal.NewFromInt(400)))

	assert.ErrorIs(t, Condonar(a), ErrAmortizacionCerrada)

	pagada := &model.Amortizacion{Estado: model.AmortizacionPagada}
	assert.ErrorIs(t, Condonar(pagada), ErrAmortizacionCerrada)
}
