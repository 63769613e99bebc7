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

type apartadoFixture struct {
	svc         ApartadoService
	repo        *stubApartadoRepo
	terrenoRepo *stubTerrenoRepo
	clienteRepo *stubClienteRepo
	ventaRepo   *stubVentaRepo
	planRepo    *stubPlanRepo
	amortRepo   *stubAmortRepo
	terreno     *model.Terreno
	cliente     *model.Cliente
}

func newApartadoFixture(t *testing.T) *apartadoFixture {
	t.Helper()
	f := &apartadoFixture{
		repo:        newStubApartadoRepo(),
		terrenoRepo: newStubTerrenoRepo(),
		clienteRepo: newStubClienteRepo(),
		ventaRepo:   newStubVentaRepo(),
		planRepo:    newStubPlanRepo(),
		amortRepo:   newStubAmortRepo(),
		terreno:     terrenoDisponible(120000),
		cliente:     clienteActivo(),
	}
	f.terrenoRepo.terrenos[f.terreno.ID] = f.terreno
	f.clienteRepo.clientes[f.cliente.ID] = f.cliente
	f.svc = NewApartadoService(f.repo, f.terrenoRepo, f.clienteRepo, &stubProyectoRepo{}, f.ventaRepo, f.planRepo, f.amortRepo)
	return f
}

func (f *apartadoFixture) apartadoVigente(diasParaVencer int) *model.Apartado {
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	a := &model.Apartado{
		ID:               uuid.New(),
		TerrenoID:        f.terreno.ID,
		ClienteID:        f.cliente.ID,
		MontoApartado:    decimal.NewFromInt(5000),
		PrecioTotal:      f.terreno.PrecioFinal,
		FechaApartado:    hoy.AddDate(0, 0, -10),
		FechaVencimiento: hoy.AddDate(0, 0, diasParaVencer),
		Estado:           model.ApartadoVigente,
		Activo:           true,
	}
	f.repo.apartados[a.ID] = a
	return a
}

func TestCrearApartado(t *testing.T) {
	f := newApartadoFixture(t)

	resp, err := f.svc.Crear(context.Background(), dto.CrearApartadoRequest{
		TerrenoID:     f.terreno.ID.String(),
		ClienteID:     f.cliente.ID.String(),
		MontoApartado: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApartadoVigente, resp.Estado)
	assert.False(t, resp.Vencido)
	assert.True(t, resp.PrecioTotal.Equal(f.terreno.PrecioFinal))
	assert.Equal(t, "Ana Lopez", resp.Cliente)

	// Default vigencia is 30 days.
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	assert.Equal(t, hoy.AddDate(0, 0, 30).Format(fechaISO), resp.FechaVencimiento)
	require.Len(t, f.repo.apartados, 1)
}

func TestCrearApartadoTerrenoOcupado(t *testing.T) {
	f := newApartadoFixture(t)
	f.terreno.Estado = model.TerrenoApartado

	_, err := f.svc.Crear(context.Background(), dto.CrearApartadoRequest{
		TerrenoID:     f.terreno.ID.String(),
		ClienteID:     f.cliente.ID.String(),
		MontoApartado: decimal.NewFromInt(5000),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no esta disponible")
	assert.Empty(t, f.repo.apartados)
}

func TestCrearApartadoMontoExcedePrecio(t *testing.T) {
	f := newApartadoFixture(t)

	_, err := f.svc.Crear(context.Background(), dto.CrearApartadoRequest{
		TerrenoID:     f.terreno.ID.String(),
		ClienteID:     f.cliente.ID.String(),
		MontoApartado: decimal.NewFromInt(120001),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excede el precio")
}

func TestCancelarApartado(t *testing.T) {
	f := newApartadoFixture(t)
	a := f.apartadoVigente(20)

	require.NoError(t, f.svc.Cancelar(context.Background(), a.ID, "el cliente desistio"))
	assert.Equal(t, model.ApartadoCancelado, a.Estado)
}

func TestCancelarApartadoNoVigente(t *testing.T) {
	f := newApartadoFixture(t)
	a := f.apartadoVigente(20)
	a.Estado = model.ApartadoConvertido

	err := f.svc.Cancelar(context.Background(), a.ID, "tarde")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIGENTE")
}

func TestConvertirApartadoEnVentaFinanciada(t *testing.T) {
	f := newApartadoFixture(t)
	a := f.apartadoVigente(20)

	resp, err := f.svc.Convertir(context.Background(), a.ID, nil, dto.ConvertirApartadoRequest{
		PrecioVenta: decimal.NewFromInt(120000),
		Enganche:    decimal.NewFromInt(15000),
		Plan:        terminosCredito(24),
	})
	require.NoError(t, err)

	// The 5000 deposit is credited on top of the 15000 enganche.
	assert.True(t, resp.Enganche.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, model.VentaPendiente, resp.Estado)
	require.NotNil(t, resp.ApartadoID)
	assert.Equal(t, a.ID.String(), *resp.ApartadoID)

	require.NotNil(t, resp.PlanPago)
	assert.True(t, resp.PlanPago.MontoFinanciado.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 24, resp.PlanPago.NumeroPagos)
	require.Len(t, f.ventaRepo.ventas, 1)
}

func TestConvertirApartadoSinSaldoPorFinanciar(t *testing.T) {
	f := newApartadoFixture(t)
	a := f.apartadoVigente(20)

	// Deposit plus enganche cover the full price: the plan terms are
	// ignored and the venta closes de contado.
	resp, err := f.svc.Convertir(context.Background(), a.ID, nil, dto.ConvertirApartadoRequest{
		PrecioVenta: decimal.NewFromInt(20000),
		Enganche:    decimal.NewFromInt(15000), // +5000 apartado == precio
		Plan:        terminosCredito(12),
	})
	require.NoError(t, err)

	assert.Equal(t, model.VentaPagada, resp.Estado)
	assert.True(t, resp.Enganche.Equal(decimal.NewFromInt(20000)))
	assert.Nil(t, resp.PlanPago)
	assert.Empty(t, f.planRepo.planes)
}

func TestConvertirApartadoVencido(t *testing.T) {
	f := newApartadoFixture(t)
	a := f.apartadoVigente(-1)

	_, err := f.svc.Convertir(context.Background(), a.ID, nil, dto.ConvertirApartadoRequest{
		PrecioVenta: decimal.NewFromInt(120000),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vencido")
	assert.Empty(t, f.ventaRepo.ventas)
}

func TestConvertirApartadoEngancheExcedePrecio(t *testing.T) {
	f := newApartadoFixture(t)
	a := f.apartadoVigente(20)

	_, err := f.svc.Convertir(context.Background(), a.ID, nil, dto.ConvertirApartadoRequest{
		PrecioVenta: decimal.NewFromInt(10000),
		Enganche:    decimal.NewFromInt(9000), // +5000 apartado > 10000
		Plan:        terminosCredito(12),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enganche")
}

func TestCancelarVencidosLiberaLosExpirados(t *testing.T) {
	f := newApartadoFixture(t)
	vencido := f.apartadoVigente(-3)
	vigente := f.apartadoVigente(15)

	liberados, err := f.svc.CancelarVencidos(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, liberados)
	assert.Equal(t, model.ApartadoCancelado, vencido.Estado)
	assert.Equal(t, model.ApartadoVigente, vigente.Estado)
}
