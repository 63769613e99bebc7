package service

import (
	"context"
	"testing"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/finanzas"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagoFixture struct {
	svc       PagoService
	pagoRepo  *stubPagoRepo
	planRepo  *stubPlanRepo
	amortRepo *stubAmortRepo
	plan      *model.PlanPago
	rows      []*model.Amortizacion
	hoy       string
}

// newPagoFixture seeds an active 12x1000 plan whose first installment is
// due a month from now, so no row is overdue while the tests run.
func newPagoFixture(t *testing.T) *pagoFixture {
	t.Helper()
	plan, tabla, err := construirPlan(
		uuid.New(), uuid.New(),
		decimal.NewFromInt(12000), decimal.Zero,
		time.Now().UTC(), terminosCredito(12),
	)
	require.NoError(t, err)
	plan.ID = uuid.New()

	f := &pagoFixture{
		pagoRepo:  &stubPagoRepo{},
		planRepo:  newStubPlanRepo(),
		amortRepo: newStubAmortRepo(),
		plan:      plan,
		hoy:       time.Now().UTC().Format(fechaISO),
	}
	f.planRepo.planes[plan.ID] = plan
	for i := range tabla {
		tabla[i].PlanPagoID = plan.ID
	}
	require.NoError(t, f.amortRepo.CreateBatch(context.Background(), nil, tabla))
	f.rows = f.amortRepo.rows[plan.ID]
	f.svc = NewPagoService(f.pagoRepo, f.planRepo, f.amortRepo, newStubVentaRepo(), nil)
	return f
}

func (f *pagoFixture) registrar(t *testing.T, monto int64) *dto.PagoResponse {
	t.Helper()
	resp, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		PlanPagoID:  f.plan.ID.String(),
		MontoPagado: decimal.NewFromInt(monto),
		FechaPago:   f.hoy,
		MetodoPago:  model.MetodoEfectivo,
	})
	require.NoError(t, err)
	return resp
}

func TestRegistrarPagoCuotaExacta(t *testing.T) {
	f := newPagoFixture(t)

	resp := f.registrar(t, 1000)

	assert.Equal(t, model.PagoAplicado, resp.Estado)
	assert.True(t, resp.MontoACapital.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.MontoAInteres.IsZero())
	assert.True(t, resp.MontoAMora.IsZero())
	require.NotNil(t, resp.AmortizacionID)
	assert.Equal(t, f.rows[0].ID.String(), *resp.AmortizacionID)

	assert.Equal(t, model.AmortizacionPagada, f.rows[0].Estado)
	assert.Equal(t, model.AmortizacionPendiente, f.rows[1].Estado)

	require.NotNil(t, resp.Plan)
	assert.True(t, f.plan.TotalPagado.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, f.plan.AmortizacionesPagadas)
	assert.Equal(t, 11, f.plan.AmortizacionesPendientes)
	require.Len(t, f.pagoRepo.pagos, 1)
}

func TestRegistrarPagoPorVentaID(t *testing.T) {
	f := newPagoFixture(t)

	resp, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		VentaID:     f.plan.VentaID.String(),
		MontoPagado: decimal.NewFromInt(1000),
		FechaPago:   f.hoy,
		MetodoPago:  model.MetodoEfectivo,
	})
	require.NoError(t, err)
	assert.Equal(t, f.plan.ID.String(), resp.PlanPagoID)
	assert.True(t, f.plan.TotalPagado.Equal(decimal.NewFromInt(1000)))
}

func TestRegistrarPagoVentaSinPlan(t *testing.T) {
	f := newPagoFixture(t)

	_, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		VentaID:     uuid.New().String(),
		MontoPagado: decimal.NewFromInt(1000),
		FechaPago:   f.hoy,
		MetodoPago:  model.MetodoEfectivo,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tiene plan")
}

func TestRegistrarPagoSobrepagoNoEscribeNada(t *testing.T) {
	f := newPagoFixture(t)

	_, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		PlanPagoID:  f.plan.ID.String(),
		MontoPagado: decimal.NewFromInt(12001),
		FechaPago:   f.hoy,
		MetodoPago:  model.MetodoTransferencia,
	})
	require.ErrorIs(t, err, finanzas.ErrSobrepago)

	assert.Empty(t, f.pagoRepo.pagos)
	for _, a := range f.rows {
		assert.True(t, a.MontoPagado.IsZero())
		assert.Equal(t, model.AmortizacionPendiente, a.Estado)
	}
	assert.True(t, f.plan.TotalPagado.IsZero())
}

func TestRegistrarPagoDirigidoAUnaCuota(t *testing.T) {
	f := newPagoFixture(t)
	objetivo := f.rows[2].ID.String()

	resp, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		PlanPagoID:     f.plan.ID.String(),
		AmortizacionID: &objetivo,
		MontoPagado:    decimal.NewFromInt(400),
		FechaPago:      f.hoy,
		MetodoPago:     model.MetodoEfectivo,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.AmortizacionID)
	assert.Equal(t, objetivo, *resp.AmortizacionID)
	assert.True(t, f.rows[0].MontoPagado.IsZero())
	assert.True(t, f.rows[2].MontoPagado.Equal(decimal.NewFromInt(400)))
	assert.True(t, f.rows[2].SaldoPendiente.Equal(decimal.NewFromInt(600)))
}

func TestRegistrarPagoAmortizacionDeOtroPlan(t *testing.T) {
	f := newPagoFixture(t)
	ajena := uuid.New().String()

	_, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		PlanPagoID:     f.plan.ID.String(),
		AmortizacionID: &ajena,
		MontoPagado:    decimal.NewFromInt(400),
		FechaPago:      f.hoy,
		MetodoPago:     model.MetodoEfectivo,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pertenece al plan")
}

func TestRegistrarPagoPlanInactivo(t *testing.T) {
	f := newPagoFixture(t)
	f.plan.Activo = false

	_, err := f.svc.Registrar(context.Background(), nil, dto.RegistrarPagoRequest{
		PlanPagoID:  f.plan.ID.String(),
		MontoPagado: decimal.NewFromInt(1000),
		FechaPago:   f.hoy,
		MetodoPago:  model.MetodoEfectivo,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestRegistrarPagoLiquidaElPlan(t *testing.T) {
	f := newPagoFixture(t)

	f.registrar(t, 12000)

	for _, a := range f.rows {
		assert.Equal(t, model.AmortizacionPagada, a.Estado)
	}
	assert.True(t, finanzas.Liquidado(f.rows))
	assert.True(t, f.plan.PorcentajeAvance.Equal(decimal.NewFromInt(100)))
	assert.True(t, f.plan.TotalPendiente.IsZero())
}

func TestCancelarPagoReaplicaLosRestantes(t *testing.T) {
	f := newPagoFixture(t)

	primero := f.registrar(t, 1000)
	f.registrar(t, 500)
	assert.True(t, f.plan.TotalPagado.Equal(decimal.NewFromInt(1500)))

	primeroID, err := uuid.Parse(primero.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancelar(context.Background(), primeroID, "monto capturado dos veces"))

	// Only the surviving 500 remains, reallocated from the first row.
	assert.True(t, f.plan.TotalPagado.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 0, f.plan.AmortizacionesPagadas)
	assert.Equal(t, model.AmortizacionPendiente, f.rows[0].Estado)
	assert.True(t, f.rows[0].MontoPagado.Equal(decimal.NewFromInt(500)))
	assert.True(t, f.rows[0].SaldoPendiente.Equal(decimal.NewFromInt(500)))
	assert.True(t, f.rows[1].MontoPagado.IsZero())
}

func TestCancelarPagoNoAplicado(t *testing.T) {
	f := newPagoFixture(t)
	resp := f.registrar(t, 1000)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	f.pagoRepo.pagos[0].Estado = model.PagoCancelado

	err = f.svc.Cancelar(context.Background(), id, "ya estaba cancelado")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APLICADO")
}
