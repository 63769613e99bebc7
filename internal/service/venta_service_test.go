package service

import (
	"context"
	"testing"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terrenoDisponible(precio int64) *model.Terreno {
	manzana := "A"
	return &model.Terreno{
		ID:          uuid.New(),
		ProyectoID:  uuid.New(),
		NumeroLote:  "12",
		Manzana:     &manzana,
		Area:        decimal.NewFromInt(200),
		PrecioBase:  decimal.NewFromInt(precio),
		PrecioFinal: decimal.NewFromInt(precio),
		Estado:      model.TerrenoDisponible,
		Activo:      true,
	}
}

func clienteActivo() *model.Cliente {
	return &model.Cliente{
		ID:            uuid.New(),
		Nombre:        "Ana",
		Apellido:      "Lopez",
		EstadoCliente: model.ClienteProspecto,
		Activo:        true,
	}
}

// terminosCredito builds financing terms with the first installment one
// month out, so nothing reads as overdue during the test.
func terminosCredito(numeroPagos int) *dto.CrearPlanPagoTerminos {
	primerPago := time.Now().UTC().AddDate(0, 1, 0)
	return &dto.CrearPlanPagoTerminos{
		TipoPlan:        model.PlanCredito,
		FrecuenciaPago:  model.FrecuenciaMensual,
		NumeroPagos:     numeroPagos,
		FechaPrimerPago: primerPago.Format(fechaISO),
	}
}

type ventaFixture struct {
	svc         VentaService
	ventaRepo   *stubVentaRepo
	terrenoRepo *stubTerrenoRepo
	clienteRepo *stubClienteRepo
	planRepo    *stubPlanRepo
	amortRepo   *stubAmortRepo
	terreno     *model.Terreno
	cliente     *model.Cliente
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	f := &ventaFixture{
		ventaRepo:   newStubVentaRepo(),
		terrenoRepo: newStubTerrenoRepo(),
		clienteRepo: newStubClienteRepo(),
		planRepo:    newStubPlanRepo(),
		amortRepo:   newStubAmortRepo(),
		terreno:     terrenoDisponible(120000),
		cliente:     clienteActivo(),
	}
	f.terrenoRepo.terrenos[f.terreno.ID] = f.terreno
	f.clienteRepo.clientes[f.cliente.ID] = f.cliente
	f.svc = NewVentaService(f.ventaRepo, f.terrenoRepo, f.clienteRepo, &stubProyectoRepo{}, f.planRepo, f.amortRepo)
	return f
}

func TestCrearVentaFinanciada(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.Crear(context.Background(), nil, dto.CrearVentaRequest{
		TerrenoID:   f.terreno.ID.String(),
		ClienteID:   f.cliente.ID.String(),
		PrecioVenta: decimal.NewFromInt(120000),
		Enganche:    decimal.NewFromInt(20000),
		FechaVenta:  "2026-08-15",
		Plan:        terminosCredito(12),
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPendiente, resp.Estado)
	assert.Equal(t, "Ana Lopez", resp.Cliente)
	require.NotNil(t, resp.PlanPago)
	assert.True(t, resp.PlanPago.MontoFinanciado.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 12, resp.PlanPago.NumeroPagos)
	assert.Equal(t, 12, resp.PlanPago.AmortizacionesPendientes)

	require.Len(t, f.planRepo.planes, 1)
	planID, err := uuid.Parse(resp.PlanPago.ID)
	require.NoError(t, err)
	rows := f.amortRepo.rows[planID]
	require.Len(t, rows, 12)
	for _, a := range rows {
		assert.Equal(t, planID, a.PlanPagoID)
		assert.Equal(t, model.AmortizacionPendiente, a.Estado)
	}
}

func TestCrearVentaDeContado(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.Crear(context.Background(), nil, dto.CrearVentaRequest{
		TerrenoID:   f.terreno.ID.String(),
		ClienteID:   f.cliente.ID.String(),
		PrecioVenta: decimal.NewFromInt(120000),
		Enganche:    decimal.Zero,
		FechaVenta:  "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPagada, resp.Estado)
	assert.True(t, resp.Enganche.Equal(decimal.NewFromInt(120000)))
	assert.Nil(t, resp.PlanPago)
	assert.Empty(t, f.planRepo.planes)
}

func TestCrearVentaEngancheCompletoIgnoraElPlan(t *testing.T) {
	f := newVentaFixture(t)

	// Plan terms arrive, but the enganche covers the full price: nothing
	// to finance, so the venta closes de contado and no plan persists.
	resp, err := f.svc.Crear(context.Background(), nil, dto.CrearVentaRequest{
		TerrenoID:   f.terreno.ID.String(),
		ClienteID:   f.cliente.ID.String(),
		PrecioVenta: decimal.NewFromInt(120000),
		Enganche:    decimal.NewFromInt(120000),
		FechaVenta:  "2026-08-15",
		Plan:        terminosCredito(12),
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPagada, resp.Estado)
	assert.Nil(t, resp.PlanPago)
	assert.Empty(t, f.planRepo.planes)
	assert.Empty(t, f.amortRepo.rows)
}

func TestCrearVentaTerrenoNoDisponible(t *testing.T) {
	f := newVentaFixture(t)
	f.terreno.Estado = model.TerrenoVendido

	_, err := f.svc.Crear(context.Background(), nil, dto.CrearVentaRequest{
		TerrenoID:   f.terreno.ID.String(),
		ClienteID:   f.cliente.ID.String(),
		PrecioVenta: decimal.NewFromInt(120000),
		FechaVenta:  "2026-08-15",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no esta disponible")
	assert.Empty(t, f.ventaRepo.ventas)
}

func TestCrearVentaEngancheExcedePrecio(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.Crear(context.Background(), nil, dto.CrearVentaRequest{
		TerrenoID:   f.terreno.ID.String(),
		ClienteID:   f.cliente.ID.String(),
		PrecioVenta: decimal.NewFromInt(100000),
		Enganche:    decimal.NewFromInt(100001),
		FechaVenta:  "2026-08-15",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enganche")
}

func TestCrearVentaClienteInactivo(t *testing.T) {
	f := newVentaFixture(t)
	f.cliente.Activo = false

	_, err := f.svc.Crear(context.Background(), nil, dto.CrearVentaRequest{
		TerrenoID:   f.terreno.ID.String(),
		ClienteID:   f.cliente.ID.String(),
		PrecioVenta: decimal.NewFromInt(120000),
		FechaVenta:  "2026-08-15",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cliente")
}

func TestCancelarVentaSinPagos(t *testing.T) {
	f := newVentaFixture(t)
	plan := &model.PlanPago{ID: uuid.New(), TotalPagado: decimal.Zero, Activo: true}
	f.planRepo.planes[plan.ID] = plan
	venta := &model.Venta{
		ID:        uuid.New(),
		TerrenoID: f.terreno.ID,
		ClienteID: f.cliente.ID,
		Estado:    model.VentaPendiente,
		PlanPago:  plan,
		Activo:    true,
	}
	f.ventaRepo.ventas[venta.ID] = venta

	err := f.svc.Cancelar(context.Background(), venta.ID, "el cliente desistio")
	require.NoError(t, err)

	assert.Equal(t, model.VentaCancelada, venta.Estado)
	assert.False(t, plan.Activo)
}

func TestCancelarVentaConPagosAplicados(t *testing.T) {
	f := newVentaFixture(t)
	plan := &model.PlanPago{ID: uuid.New(), TotalPagado: decimal.NewFromInt(1500), Activo: true}
	venta := &model.Venta{
		ID:        uuid.New(),
		TerrenoID: f.terreno.ID,
		ClienteID: f.cliente.ID,
		Estado:    model.VentaPendiente,
		PlanPago:  plan,
		Activo:    true,
	}
	f.ventaRepo.ventas[venta.ID] = venta

	err := f.svc.Cancelar(context.Background(), venta.ID, "el cliente desistio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pagos aplicados")
	assert.Equal(t, model.VentaPendiente, venta.Estado)
}

func TestCancelarVentaYaCancelada(t *testing.T) {
	f := newVentaFixture(t)
	venta := &model.Venta{
		ID:        uuid.New(),
		TerrenoID: f.terreno.ID,
		ClienteID: f.cliente.ID,
		Estado:    model.VentaCancelada,
	}
	f.ventaRepo.ventas[venta.ID] = venta

	err := f.svc.Cancelar(context.Background(), venta.ID, "duplicada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya esta cancelada")
}
