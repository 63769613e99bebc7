package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/finanzas"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/infra"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PlanPagoService interface {
	// Crear attaches a plan to a venta that was sold without financing.
	Crear(ctx context.Context, req dto.CrearPlanPagoRequest) (*dto.PlanPagoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PlanPagoResponse, error)
	ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.PlanPagoResponse, error)
	Tabla(ctx context.Context, id uuid.UUID) (*dto.TablaAmortizacionResponse, error)
	Listar(ctx context.Context, filter dto.PlanPagoFilter) (*dto.PlanPagoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlanPagoRequest) (*dto.PlanPagoResponse, error)
	EstadoCuenta(ctx context.Context, id uuid.UUID) (*dto.EstadoCuentaResponse, error)
	// EstadoCuentaPDF renders the statement as a PDF and returns its path.
	EstadoCuentaPDF(ctx context.Context, id uuid.UUID) (string, error)
	Condonar(ctx context.Context, amortizacionID uuid.UUID, motivo string) (*dto.AmortizacionResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type planPagoService struct {
	repo           repository.PlanPagoRepository
	amortRepo      repository.AmortizacionRepository
	pagoRepo       repository.PagoRepository
	ventaRepo      repository.VentaRepository
	pdfStoragePath string
	empresaNombre  string
}

func NewPlanPagoService(
	repo repository.PlanPagoRepository,
	amortRepo repository.AmortizacionRepository,
	pagoRepo repository.PagoRepository,
	ventaRepo repository.VentaRepository,
	pdfStoragePath string,
	empresaNombre string,
) PlanPagoService {
	return &planPagoService{
		repo:           repo,
		amortRepo:      amortRepo,
		pagoRepo:       pagoRepo,
		ventaRepo:      ventaRepo,
		pdfStoragePath: pdfStoragePath,
		empresaNombre:  empresaNombre,
	}
}

// Crear builds the plan and its full table for a venta sold without
// financing, all inside one transaction. A venta already carrying an
// active plan is rejected; a PAGADA venta reopens as PENDIENTE since
// there is now a balance to collect.
func (s *planPagoService) Crear(ctx context.Context, req dto.CrearPlanPagoRequest) (*dto.PlanPagoResponse, error) {
	ventaID, err := uuid.Parse(req.VentaID)
	if err != nil {
		return nil, fmt.Errorf("venta_id invalido: %w", err)
	}
	venta, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	if venta.Estado == model.VentaCancelada || venta.Estado == model.VentaAnulada {
		return nil, errors.New("la venta esta cancelada")
	}
	if existente, err := s.repo.FindByVentaID(ctx, ventaID); err == nil && existente.Activo {
		return nil, errors.New("la venta ya tiene un plan de pago activo")
	}
	if !venta.PrecioVenta.Sub(venta.Enganche).IsPositive() {
		return nil, errors.New("la venta no tiene monto por financiar")
	}

	var resp *dto.PlanPagoResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plan, tabla, err := construirPlan(ventaID, venta.ClienteID, venta.PrecioVenta, venta.Enganche, venta.FechaVenta, &req.Terminos)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx, plan); err != nil {
			return err
		}
		for i := range tabla {
			tabla[i].PlanPagoID = plan.ID
		}
		if err := s.amortRepo.CreateBatch(ctx, tx, tabla); err != nil {
			return err
		}
		if venta.Estado == model.VentaPagada && tx != nil {
			if err := s.ventaRepo.UpdateEstadoTx(tx, ventaID, model.VentaPendiente); err != nil {
				return err
			}
		}
		rows := make([]*model.Amortizacion, len(tabla))
		for i := range tabla {
			rows[i] = &tabla[i]
		}
		resp = planToResponse(plan, rows, time.Now().UTC())
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *planPagoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PlanPagoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("plan de pago no encontrado")
	}
	rows := make([]*model.Amortizacion, len(p.Amortizaciones))
	for i := range p.Amortizaciones {
		rows[i] = &p.Amortizaciones[i]
	}
	return planToResponse(p, rows, time.Now().UTC()), nil
}

func (s *planPagoService) ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.PlanPagoResponse, error) {
	p, err := s.repo.FindByVentaID(ctx, ventaID)
	if err != nil {
		return nil, errors.New("la venta no tiene plan de pago")
	}
	rows := make([]*model.Amortizacion, len(p.Amortizaciones))
	for i := range p.Amortizaciones {
		rows[i] = &p.Amortizaciones[i]
	}
	return planToResponse(p, rows, time.Now().UTC()), nil
}

func (s *planPagoService) Tabla(ctx context.Context, id uuid.UUID) (*dto.TablaAmortizacionResponse, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("plan de pago no encontrado")
	}

	hoy := time.Now().UTC()
	resp := &dto.TablaAmortizacionResponse{PlanPagoID: plan.ID.String()}
	for i := range plan.Amortizaciones {
		a := &plan.Amortizaciones[i]
		resp.Tabla = append(resp.Tabla, *amortizacionToResponse(a, plan.DiasGracia, hoy))
		resp.TotalCapital = resp.TotalCapital.Add(a.MontoCapital)
		resp.TotalInteres = resp.TotalInteres.Add(a.MontoInteres)
		resp.TotalCuotas = resp.TotalCuotas.Add(a.MontoTotal)
		resp.TotalPagado = resp.TotalPagado.Add(a.MontoPagado)
	}
	return resp, nil
}

func (s *planPagoService) Listar(ctx context.Context, filter dto.PlanPagoFilter) (*dto.PlanPagoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	planes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hoy := time.Now().UTC()
	data := make([]dto.PlanPagoResponse, len(planes))
	for i := range planes {
		data[i] = *planToResponse(&planes[i], nil, hoy)
	}
	return &dto.PlanPagoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Actualizar only touches tasa de mora, dias de gracia and notas. The
// financing terms of a plan with a generated table never change; a new
// deal means cancelling the venta and selling again.
func (s *planPagoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlanPagoRequest) (*dto.PlanPagoResponse, error) {
	if req.TasaMoraMensual != nil && req.TasaMoraMensual.IsNegative() {
		return nil, errors.New("tasa_mora_mensual no puede ser negativa")
	}

	var resp *dto.PlanPagoResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plan, err := s.lockPlan(ctx, tx, id)
		if err != nil {
			return errors.New("plan de pago no encontrado")
		}
		if req.TasaMoraMensual != nil {
			plan.TasaMoraMensual = *req.TasaMoraMensual
		}
		if req.DiasGracia != nil {
			plan.DiasGracia = *req.DiasGracia
		}
		if req.Notas != nil {
			plan.Notas = req.Notas
		}

		rows, err := s.listRows(ctx, tx, id)
		if err != nil {
			return err
		}
		// Grace or mora changes shift which rows read as overdue.
		hoy := time.Now().UTC()
		finanzas.ActualizarMora(plan, rows, hoy)
		finanzas.RecalcularAvance(plan, rows, hoy)
		if err := s.saveRows(tx, rows); err != nil {
			return err
		}
		if err := s.savePlan(tx, plan); err != nil {
			return err
		}
		resp = planToResponse(plan, rows, hoy)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planPagoService) EstadoCuenta(ctx context.Context, id uuid.UUID) (*dto.EstadoCuentaResponse, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("plan de pago no encontrado")
	}
	rows := make([]*model.Amortizacion, len(plan.Amortizaciones))
	for i := range plan.Amortizaciones {
		rows[i] = &plan.Amortizaciones[i]
	}

	pagos, err := s.pagoRepo.ListByPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	hoy := time.Now().UTC()
	terreno, proyecto := "", ""
	if venta, err := s.ventaRepo.FindByID(ctx, plan.VentaID); err == nil && venta.Terreno != nil {
		terreno = codigoLote(venta.Terreno)
		if venta.Terreno.Proyecto != nil {
			proyecto = venta.Terreno.Proyecto.Nombre
		}
	}

	resp := &dto.EstadoCuentaResponse{
		Plan:       *planToResponse(plan, nil, hoy),
		Terreno:    terreno,
		Proyecto:   proyecto,
		GeneradoEn: hoy.Format("2006-01-02T15:04:05Z"),
	}

	mora := decimal.Zero
	for _, a := range rows {
		item := amortizacionToResponse(a, plan.DiasGracia, hoy)
		// Report mora as it stands today, even if not yet persisted.
		item.MoraAcumulada = finanzas.Mora(a.SaldoPendiente, plan.TasaMoraMensual, item.DiasAtraso)
		mora = mora.Add(item.MoraAcumulada)
		resp.Tabla = append(resp.Tabla, *item)
		if resp.ProximaCuota == nil && !a.Cerrada() {
			resp.ProximaCuota = item
		}
	}
	resp.MoraAcumulada = mora

	for i := range pagos {
		resp.Pagos = append(resp.Pagos, *pagoToResponse(&pagos[i]))
	}
	return resp, nil
}

func (s *planPagoService) EstadoCuentaPDF(ctx context.Context, id uuid.UUID) (string, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("plan de pago no encontrado")
	}

	datos := infra.ReciboDatos{Empresa: s.empresaNombre}
	if venta, err := s.ventaRepo.FindByID(ctx, plan.VentaID); err == nil {
		if venta.Cliente != nil {
			datos.Cliente = venta.Cliente.NombreCompleto()
		}
		if venta.Terreno != nil {
			datos.Terreno = codigoLote(venta.Terreno)
			if venta.Terreno.Proyecto != nil {
				datos.Proyecto = venta.Terreno.Proyecto.Nombre
			}
		}
	}
	return infra.GenerateEstadoCuentaPDF(plan, plan.Amortizaciones, datos, s.pdfStoragePath)
}

// Condonar forgives the remaining balance of one installment.
func (s *planPagoService) Condonar(ctx context.Context, amortizacionID uuid.UUID, motivo string) (*dto.AmortizacionResponse, error) {
	a, err := s.amortRepo.FindByID(ctx, amortizacionID)
	if err != nil {
		return nil, errors.New("amortizacion no encontrada")
	}

	var resp *dto.AmortizacionResponse
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plan, err := s.lockPlan(ctx, tx, a.PlanPagoID)
		if err != nil {
			return errors.New("plan de pago no encontrado")
		}
		rows, err := s.listRows(ctx, tx, plan.ID)
		if err != nil {
			return err
		}

		var objetivo *model.Amortizacion
		for _, row := range rows {
			if row.ID == amortizacionID {
				objetivo = row
				break
			}
		}
		if objetivo == nil {
			objetivo = a
			rows = append(rows, a)
		}

		if err := finanzas.Condonar(objetivo); err != nil {
			return err
		}
		nota := fmt.Sprintf("Condonada: %s", motivo)
		objetivo.Notas = &nota

		hoy := time.Now().UTC()
		finanzas.RecalcularAvance(plan, rows, hoy)
		if err := s.saveRows(tx, rows); err != nil {
			return err
		}
		if err := s.savePlan(tx, plan); err != nil {
			return err
		}
		resp = amortizacionToResponse(objetivo, plan.DiasGracia, hoy)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Eliminar removes a plan and its table. Refused once any money has been
// collected; the record of payments must survive.
func (s *planPagoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plan, err := s.lockPlan(ctx, tx, id)
		if err != nil {
			return errors.New("plan de pago no encontrado")
		}
		if plan.TotalPagado.IsPositive() {
			return errors.New("el plan tiene pagos aplicados; no puede eliminarse")
		}
		if tx != nil {
			if err := s.amortRepo.DeleteByPlanTx(tx, id); err != nil {
				return err
			}
		}
		return s.repo.Desactivar(ctx, tx, id)
	})
}

func (s *planPagoService) lockPlan(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error) {
	if tx == nil {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.FindByIDForUpdate(ctx, tx, id)
}

func (s *planPagoService) listRows(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*model.Amortizacion, error) {
	if tx == nil {
		return s.amortRepo.ListByPlan(ctx, planID)
	}
	return s.amortRepo.ListByPlanTx(tx, planID)
}

func (s *planPagoService) saveRows(tx *gorm.DB, rows []*model.Amortizacion) error {
	if tx == nil {
		return nil
	}
	for _, a := range rows {
		if err := s.amortRepo.UpdateTx(tx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *planPagoService) savePlan(tx *gorm.DB, p *model.PlanPago) error {
	if tx == nil {
		return nil
	}
	return s.repo.UpdateTx(tx, p)
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	var amortID *string
	if p.AmortizacionID != nil {
		s := p.AmortizacionID.String()
		amortID = &s
	}
	return &dto.PagoResponse{
		ID:             p.ID.String(),
		PlanPagoID:     p.PlanPagoID.String(),
		AmortizacionID: amortID,
		FechaPago:      p.FechaPago.Format(fechaISO),
		MontoPagado:    p.MontoPagado,
		MontoACapital:  p.MontoACapital,
		MontoAInteres:  p.MontoAInteres,
		MontoAMora:     p.MontoAMora,
		MetodoPago:     p.MetodoPago,
		ReferenciaPago: p.ReferenciaPago,
		Estado:         p.Estado,
		Observaciones:  p.Observaciones,
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
