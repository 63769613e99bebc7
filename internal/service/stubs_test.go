package service

import (
	"context"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Every DB() returns nil so runTx calls the
// service body directly without a transaction; tx-only branches are
// covered by the integration suite against a real postgres.

type stubTerrenoRepo struct {
	terrenos map[uuid.UUID]*model.Terreno
}

func newStubTerrenoRepo() *stubTerrenoRepo {
	return &stubTerrenoRepo{terrenos: make(map[uuid.UUID]*model.Terreno)}
}

func (s *stubTerrenoRepo) Create(ctx context.Context, t *model.Terreno) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.terrenos[t.ID] = t
	return nil
}

func (s *stubTerrenoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Terreno, error) {
	if t, ok := s.terrenos[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTerrenoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Terreno, error) {
	return s.FindByID(ctx, id)
}

func (s *stubTerrenoRepo) List(ctx context.Context, filter dto.TerrenoFilter) ([]model.Terreno, int64, error) {
	return nil, 0, nil
}

func (s *stubTerrenoRepo) Update(ctx context.Context, t *model.Terreno) error {
	s.terrenos[t.ID] = t
	return nil
}

func (s *stubTerrenoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	if t, ok := s.terrenos[id]; ok {
		t.Estado = estado
	}
	return nil
}

func (s *stubTerrenoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubTerrenoRepo) DB() *gorm.DB                                       { return nil }

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (s *stubClienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.clientes[c.ID] = c
	return nil
}

func (s *stubClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	if c, ok := s.clientes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubClienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	return nil, 0, nil
}

func (s *stubClienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	s.clientes[c.ID] = c
	return nil
}

func (s *stubClienteRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	if c, ok := s.clientes[id]; ok {
		c.EstadoCliente = estado
	}
	return nil
}

func (s *stubClienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }

type stubProyectoRepo struct{}

func (s *stubProyectoRepo) Create(ctx context.Context, p *model.Proyecto) error { return nil }
func (s *stubProyectoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proyecto, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubProyectoRepo) List(ctx context.Context, filter dto.ProyectoFilter) ([]model.Proyecto, int64, error) {
	return nil, 0, nil
}
func (s *stubProyectoRepo) Update(ctx context.Context, p *model.Proyecto) error  { return nil }
func (s *stubProyectoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error   { return nil }
func (s *stubProyectoRepo) RefrescarContadores(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (s *stubVentaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.ventas[v.ID] = v
	return nil
}

func (s *stubVentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	if v, ok := s.ventas[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVentaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	return nil, 0, nil
}

func (s *stubVentaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	if v, ok := s.ventas[id]; ok {
		v.Estado = estado
	}
	return nil
}

func (s *stubVentaRepo) DB() *gorm.DB { return nil }

type stubPlanRepo struct {
	planes map[uuid.UUID]*model.PlanPago
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{planes: make(map[uuid.UUID]*model.PlanPago)}
}

func (s *stubPlanRepo) Create(ctx context.Context, tx *gorm.DB, p *model.PlanPago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.planes[p.ID] = p
	return nil
}

func (s *stubPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PlanPago, error) {
	if p, ok := s.planes[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPlanRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error) {
	return s.FindByID(ctx, id)
}

func (s *stubPlanRepo) FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.PlanPago, error) {
	for _, p := range s.planes {
		if p.VentaID == ventaID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPlanRepo) List(ctx context.Context, filter dto.PlanPagoFilter) ([]model.PlanPago, int64, error) {
	return nil, 0, nil
}

func (s *stubPlanRepo) UpdateTx(tx *gorm.DB, p *model.PlanPago) error {
	s.planes[p.ID] = p
	return nil
}

func (s *stubPlanRepo) Desactivar(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if p, ok := s.planes[id]; ok {
		p.Activo = false
	}
	return nil
}

func (s *stubPlanRepo) DB() *gorm.DB { return nil }

type stubAmortRepo struct {
	rows map[uuid.UUID][]*model.Amortizacion
}

func newStubAmortRepo() *stubAmortRepo {
	return &stubAmortRepo{rows: make(map[uuid.UUID][]*model.Amortizacion)}
}

func (s *stubAmortRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []model.Amortizacion) error {
	for i := range rows {
		r := rows[i]
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		s.rows[r.PlanPagoID] = append(s.rows[r.PlanPagoID], &r)
	}
	return nil
}

func (s *stubAmortRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Amortizacion, error) {
	for _, rows := range s.rows {
		for _, a := range rows {
			if a.ID == id {
				return a, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAmortRepo) ListByPlanTx(tx *gorm.DB, planID uuid.UUID) ([]*model.Amortizacion, error) {
	return s.rows[planID], nil
}

func (s *stubAmortRepo) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*model.Amortizacion, error) {
	return s.rows[planID], nil
}

func (s *stubAmortRepo) UpdateTx(tx *gorm.DB, a *model.Amortizacion) error { return nil }

func (s *stubAmortRepo) ListPorVencer(ctx context.Context, desde, hasta time.Time) ([]model.Amortizacion, error) {
	return nil, nil
}

func (s *stubAmortRepo) ListVencidas(ctx context.Context, hoy time.Time) ([]model.Amortizacion, error) {
	return nil, nil
}

func (s *stubAmortRepo) DeleteByPlanTx(tx *gorm.DB, planID uuid.UUID) error {
	delete(s.rows, planID)
	return nil
}

type stubPagoRepo struct {
	pagos []*model.Pago
}

func (s *stubPagoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	// Monotonic CreatedAt so the replay tie-break is deterministic.
	p.CreatedAt = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(len(s.pagos)) * time.Second)
	s.pagos = append(s.pagos, p)
	return nil
}

func (s *stubPagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	for _, p := range s.pagos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPagoRepo) List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error) {
	return nil, 0, nil
}

func (s *stubPagoRepo) ListByPlan(ctx context.Context, planID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range s.pagos {
		if p.PlanPagoID == planID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubPagoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	for _, p := range s.pagos {
		if p.ID == id {
			p.Estado = estado
		}
	}
	return nil
}

func (s *stubPagoRepo) SumDelMes(ctx context.Context, fecha time.Time) (int64, decimal.Decimal, error) {
	return 0, decimal.Zero, nil
}

func (s *stubPagoRepo) DB() *gorm.DB { return nil }

type stubApartadoRepo struct {
	apartados map[uuid.UUID]*model.Apartado
}

func newStubApartadoRepo() *stubApartadoRepo {
	return &stubApartadoRepo{apartados: make(map[uuid.UUID]*model.Apartado)}
}

func (s *stubApartadoRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Apartado) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.apartados[a.ID] = a
	return nil
}

func (s *stubApartadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Apartado, error) {
	if a, ok := s.apartados[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubApartadoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Apartado, error) {
	return s.FindByID(ctx, id)
}

func (s *stubApartadoRepo) FindVigenteByTerreno(ctx context.Context, terrenoID uuid.UUID) (*model.Apartado, error) {
	for _, a := range s.apartados {
		if a.TerrenoID == terrenoID && a.Estado == model.ApartadoVigente {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubApartadoRepo) List(ctx context.Context, filter dto.ApartadoFilter, hoy time.Time) ([]model.Apartado, int64, error) {
	return nil, 0, nil
}

func (s *stubApartadoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	if a, ok := s.apartados[id]; ok {
		a.Estado = estado
	}
	return nil
}

func (s *stubApartadoRepo) ListVencidos(ctx context.Context, hoy time.Time) ([]model.Apartado, error) {
	var out []model.Apartado
	for _, a := range s.apartados {
		if a.Vencido(hoy) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubApartadoRepo) CountVigentes(ctx context.Context, hoy time.Time) (int64, error) {
	return 0, nil
}

func (s *stubApartadoRepo) DB() *gorm.DB { return nil }
