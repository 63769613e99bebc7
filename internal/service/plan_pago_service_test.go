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

type planFixture struct {
	svc       PlanPagoService
	repo      *stubPlanRepo
	amortRepo *stubAmortRepo
	pagoRepo  *stubPagoRepo
	ventaRepo *stubVentaRepo
	plan      *model.PlanPago
	rows      []*model.Amortizacion
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	plan, tabla, err := construirPlan(
		uuid.New(), uuid.New(),
		decimal.NewFromInt(12000), decimal.Zero,
		time.Now().UTC(), terminosCredito(12),
	)
	require.NoError(t, err)
	plan.ID = uuid.New()
	plan.Amortizaciones = tabla

	f := &planFixture{
		repo:      newStubPlanRepo(),
		amortRepo: newStubAmortRepo(),
		pagoRepo:  &stubPagoRepo{},
		ventaRepo: newStubVentaRepo(),
		plan:      plan,
	}
	f.repo.planes[plan.ID] = plan
	for i := range tabla {
		tabla[i].PlanPagoID = plan.ID
	}
	require.NoError(t, f.amortRepo.CreateBatch(context.Background(), nil, tabla))
	f.rows = f.amortRepo.rows[plan.ID]
	f.svc = NewPlanPagoService(f.repo, f.amortRepo, f.pagoRepo, f.ventaRepo, t.TempDir(), "Inmobiliaria Pruebas")
	return f
}

func TestCrearPlanParaVentaSinFinanciamiento(t *testing.T) {
	f := newPlanFixture(t)
	venta := &model.Venta{
		ID:          uuid.New(),
		ClienteID:   uuid.New(),
		FechaVenta:  time.Now().UTC(),
		PrecioVenta: decimal.NewFromInt(60000),
		Enganche:    decimal.NewFromInt(12000),
		Estado:      model.VentaPagada,
		Activo:      true,
	}
	f.ventaRepo.ventas[venta.ID] = venta

	resp, err := f.svc.Crear(context.Background(), dto.CrearPlanPagoRequest{
		VentaID:  venta.ID.String(),
		Terminos: *terminosCredito(24),
	})
	require.NoError(t, err)

	assert.True(t, resp.MontoFinanciado.Equal(decimal.NewFromInt(48000)))
	assert.Equal(t, 24, resp.NumeroPagos)
	assert.Len(t, resp.Tabla, 24)
	// The new fixture plan belongs to another venta; a second plan exists now.
	assert.Len(t, f.repo.planes, 2)
}

func TestCrearPlanVentaSinMontoPorFinanciar(t *testing.T) {
	f := newPlanFixture(t)
	venta := &model.Venta{
		ID:          uuid.New(),
		ClienteID:   uuid.New(),
		FechaVenta:  time.Now().UTC(),
		PrecioVenta: decimal.NewFromInt(60000),
		Enganche:    decimal.NewFromInt(60000),
		Estado:      model.VentaPagada,
		Activo:      true,
	}
	f.ventaRepo.ventas[venta.ID] = venta

	_, err := f.svc.Crear(context.Background(), dto.CrearPlanPagoRequest{
		VentaID:  venta.ID.String(),
		Terminos: *terminosCredito(12),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monto por financiar")
	assert.Len(t, f.repo.planes, 1)
}

func TestCrearPlanVentaYaFinanciada(t *testing.T) {
	f := newPlanFixture(t)
	venta := &model.Venta{ID: f.plan.VentaID, Estado: model.VentaPendiente, Activo: true}
	f.ventaRepo.ventas[venta.ID] = venta

	_, err := f.svc.Crear(context.Background(), dto.CrearPlanPagoRequest{
		VentaID:  venta.ID.String(),
		Terminos: *terminosCredito(12),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya tiene un plan")
}

func TestTablaConTotales(t *testing.T) {
	f := newPlanFixture(t)

	resp, err := f.svc.Tabla(context.Background(), f.plan.ID)
	require.NoError(t, err)

	require.Len(t, resp.Tabla, 12)
	assert.True(t, resp.TotalCapital.Equal(decimal.NewFromInt(12000)))
	assert.True(t, resp.TotalInteres.IsZero())
	assert.True(t, resp.TotalCuotas.Equal(decimal.NewFromInt(12000)))
	assert.True(t, resp.TotalPagado.IsZero())
}

func TestActualizarPlanSoloTerminosOperativos(t *testing.T) {
	f := newPlanFixture(t)
	mora := decimal.NewFromInt(3)
	gracia := 5
	notas := "acuerdo con el cliente"

	resp, err := f.svc.Actualizar(context.Background(), f.plan.ID, dto.ActualizarPlanPagoRequest{
		TasaMoraMensual: &mora,
		DiasGracia:      &gracia,
		Notas:           &notas,
	})
	require.NoError(t, err)

	assert.True(t, resp.TasaMoraMensual.Equal(mora))
	assert.Equal(t, 5, resp.DiasGracia)
	require.NotNil(t, resp.Notas)
	assert.Equal(t, notas, *resp.Notas)

	// Financing terms stay as created.
	assert.True(t, f.plan.MontoFinanciado.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, 12, f.plan.NumeroPagos)
}

func TestActualizarPlanMoraNegativa(t *testing.T) {
	f := newPlanFixture(t)
	mora := decimal.NewFromInt(-1)

	_, err := f.svc.Actualizar(context.Background(), f.plan.ID, dto.ActualizarPlanPagoRequest{
		TasaMoraMensual: &mora,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negativa")
}

func TestCondonarAmortizacion(t *testing.T) {
	f := newPlanFixture(t)
	objetivo := f.rows[1]

	resp, err := f.svc.Condonar(context.Background(), objetivo.ID, "convenio firmado")
	require.NoError(t, err)

	assert.Equal(t, model.AmortizacionCondonada, resp.Estado)
	assert.Equal(t, model.AmortizacionCondonada, objetivo.Estado)
	assert.True(t, objetivo.SaldoPendiente.IsZero())
	require.NotNil(t, objetivo.Notas)
	assert.Contains(t, *objetivo.Notas, "convenio firmado")

	// The forgiven 1000 leaves the pendiente, never the pagado.
	assert.True(t, f.plan.TotalPagado.IsZero())
	assert.True(t, f.plan.TotalPendiente.Equal(decimal.NewFromInt(11000)))
	assert.Equal(t, 11, f.plan.AmortizacionesPendientes)
}

func TestCondonarAmortizacionCerrada(t *testing.T) {
	f := newPlanFixture(t)
	f.rows[0].Estado = model.AmortizacionPagada

	_, err := f.svc.Condonar(context.Background(), f.rows[0].ID, "duplicado")
	require.ErrorIs(t, err, finanzas.ErrAmortizacionCerrada)
}

func TestEliminarPlanSinPagos(t *testing.T) {
	f := newPlanFixture(t)

	require.NoError(t, f.svc.Eliminar(context.Background(), f.plan.ID))
	assert.False(t, f.plan.Activo)
}

func TestEliminarPlanConPagosAplicados(t *testing.T) {
	f := newPlanFixture(t)
	f.plan.TotalPagado = decimal.NewFromInt(1000)

	err := f.svc.Eliminar(context.Background(), f.plan.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pagos aplicados")
	assert.True(t, f.plan.Activo)
}

func TestEstadoCuenta(t *testing.T) {
	f := newPlanFixture(t)
	manzana := "B"
	venta := &model.Venta{
		ID: f.plan.VentaID,
		Terreno: &model.Terreno{
			NumeroLote: "7",
			Manzana:    &manzana,
			Proyecto:   &model.Proyecto{Nombre: "Lomas del Valle"},
		},
	}
	f.ventaRepo.ventas[venta.ID] = venta

	resp, err := f.svc.EstadoCuenta(context.Background(), f.plan.ID)
	require.NoError(t, err)

	assert.Equal(t, "MB-L7", resp.Terreno)
	assert.Equal(t, "Lomas del Valle", resp.Proyecto)
	require.Len(t, resp.Tabla, 12)
	require.NotNil(t, resp.ProximaCuota)
	assert.Equal(t, 1, resp.ProximaCuota.NumeroAmortizacion)
	assert.True(t, resp.MoraAcumulada.IsZero())
	assert.Empty(t, resp.Pagos)
}
