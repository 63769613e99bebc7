package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/finanzas"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PagoService interface {
	Registrar(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error)
	Listar(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) error
}

type pagoService struct {
	repo       repository.PagoRepository
	planRepo   repository.PlanPagoRepository
	amortRepo  repository.AmortizacionRepository
	ventaRepo  repository.VentaRepository
	dispatcher *worker.Dispatcher
}

func NewPagoService(
	repo repository.PagoRepository,
	planRepo repository.PlanPagoRepository,
	amortRepo repository.AmortizacionRepository,
	ventaRepo repository.VentaRepository,
	dispatcher *worker.Dispatcher,
) PagoService {
	return &pagoService{
		repo:       repo,
		planRepo:   planRepo,
		amortRepo:  amortRepo,
		ventaRepo:  ventaRepo,
		dispatcher: dispatcher,
	}
}

// Registrar applies a payment to a plan under the plan row lock: refresh
// mora, run the allocator, persist the touched rows, the refreshed plan
// aggregates and the pago itself in one transaction. An overpayment rolls
// everything back and nothing is written.
func (s *pagoService) Registrar(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	planID, err := s.resolverPlanID(ctx, req)
	if err != nil {
		return nil, err
	}
	fechaPago, err := time.Parse(fechaISO, req.FechaPago)
	if err != nil {
		return nil, fmt.Errorf("fecha_pago invalida: %w", err)
	}
	if !req.MontoPagado.IsPositive() {
		return nil, errors.New("monto_pagado debe ser positivo")
	}

	var objetivoID *uuid.UUID
	if req.AmortizacionID != nil {
		id, err := uuid.Parse(*req.AmortizacionID)
		if err != nil {
			return nil, fmt.Errorf("amortizacion_id invalido: %w", err)
		}
		objetivoID = &id
	}

	hoy := time.Now().UTC()
	var pago model.Pago
	var plan *model.PlanPago
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		plan, err = s.lockPlan(ctx, tx, planID)
		if err != nil {
			return errors.New("plan de pago no encontrado")
		}
		if !plan.Activo {
			return errors.New("el plan de pago esta inactivo")
		}

		rows, err := s.listRows(ctx, tx, planID)
		if err != nil {
			return err
		}

		var objetivo *model.Amortizacion
		if objetivoID != nil {
			for _, a := range rows {
				if a.ID == *objetivoID {
					objetivo = a
					break
				}
			}
			if objetivo == nil {
				return errors.New("la amortizacion no pertenece al plan")
			}
		}

		desglose, err := finanzas.AplicarPago(plan, rows, objetivo, req.MontoPagado, fechaPago, hoy)
		if err != nil {
			return err
		}
		finanzas.RecalcularAvance(plan, rows, hoy)

		var amortizacionID *uuid.UUID
		if desglose.PrimeraAmortizacion != nil {
			id := desglose.PrimeraAmortizacion.ID
			amortizacionID = &id
		}
		pago = model.Pago{
			PlanPagoID:     planID,
			AmortizacionID: amortizacionID,
			ClienteID:      plan.ClienteID,
			UsuarioID:      usuarioID,
			FechaPago:      fechaPago,
			MontoPagado:    req.MontoPagado,
			MontoACapital:  desglose.ACapital,
			MontoAInteres:  desglose.AInteres,
			MontoAMora:     desglose.AMora,
			MetodoPago:     req.MetodoPago,
			ReferenciaPago: req.ReferenciaPago,
			Estado:         model.PagoAplicado,
			Observaciones:  req.Observaciones,
			Activo:         true,
		}
		if err := s.repo.Create(ctx, tx, &pago); err != nil {
			return err
		}
		if err := s.saveRows(tx, rows); err != nil {
			return err
		}
		if err := s.savePlan(tx, plan); err != nil {
			return err
		}

		// A fully collected plan closes its venta.
		if finanzas.Liquidado(rows) && tx != nil {
			return s.ventaRepo.UpdateEstadoTx(tx, plan.VentaID, model.VentaPagada)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt generation and mailing happen off the request path.
	if s.dispatcher != nil && req.EnviarRecibo {
		payload := worker.ReciboJobPayload{PagoID: pago.ID.String()}
		_ = s.dispatcher.EnqueueRecibo(ctx, payload)
	}

	resp := pagoToResponse(&pago)
	resp.Plan = planToResponse(plan, nil, hoy)
	return resp, nil
}

func (s *pagoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	return pagoToResponse(p), nil
}

func (s *pagoService) Listar(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pagos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PagoResponse, len(pagos))
	for i := range pagos {
		data[i] = *pagoToResponse(&pagos[i])
	}
	return &dto.PagoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Cancelar voids a payment and rebuilds the plan state by replaying the
// remaining applied payments in chronological order against a pristine
// table. Splits of replayed pagos are re-stored, since the mora they met
// at the time may differ once an earlier payment disappears.
func (s *pagoService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pago no encontrado")
	}
	if p.Estado != model.PagoAplicado {
		return errors.New("solo un pago APLICADO puede cancelarse")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plan, err := s.lockPlan(ctx, tx, p.PlanPagoID)
		if err != nil {
			return errors.New("plan de pago no encontrado")
		}
		rows, err := s.listRows(ctx, tx, plan.ID)
		if err != nil {
			return err
		}
		pagos, err := s.repo.ListByPlan(ctx, plan.ID)
		if err != nil {
			return err
		}

		// Reset every non-condonada row to its scheduled state.
		for _, a := range rows {
			if a.Estado == model.AmortizacionCondonada {
				continue
			}
			a.Estado = model.AmortizacionPendiente
			a.MontoPagado = decimal.Zero
			a.SaldoPendiente = a.MontoTotal
			a.MoraAcumulada = decimal.Zero
			a.DiasAtraso = 0
			a.FechaPago = nil
		}

		// Replay the surviving payments oldest first.
		restantes := make([]*model.Pago, 0, len(pagos))
		for i := range pagos {
			if pagos[i].ID == id || pagos[i].Estado != model.PagoAplicado {
				continue
			}
			restantes = append(restantes, &pagos[i])
		}
		sort.SliceStable(restantes, func(i, j int) bool {
			if !restantes[i].FechaPago.Equal(restantes[j].FechaPago) {
				return restantes[i].FechaPago.Before(restantes[j].FechaPago)
			}
			return restantes[i].CreatedAt.Before(restantes[j].CreatedAt)
		})

		for _, rp := range restantes {
			var objetivo *model.Amortizacion
			d, err := finanzas.AplicarPago(plan, rows, objetivo, rp.MontoPagado, rp.FechaPago, rp.FechaPago)
			if err != nil {
				return fmt.Errorf("no se pudo reaplicar el pago %s: %w", rp.ID, err)
			}
			rp.MontoACapital = d.ACapital
			rp.MontoAInteres = d.AInteres
			rp.MontoAMora = d.AMora
			if tx != nil {
				if err := tx.Save(rp).Error; err != nil {
					return err
				}
			}
		}

		hoy := time.Now().UTC()
		finanzas.ActualizarMora(plan, rows, hoy)
		finanzas.RecalcularAvance(plan, rows, hoy)

		if tx != nil {
			if err := s.repo.UpdateEstadoTx(tx, id, model.PagoCancelado); err != nil {
				return err
			}
		}
		if err := s.saveRows(tx, rows); err != nil {
			return err
		}
		if err := s.savePlan(tx, plan); err != nil {
			return err
		}
		if !finanzas.Liquidado(rows) && tx != nil {
			return s.ventaRepo.UpdateEstadoTx(tx, plan.VentaID, model.VentaPendiente)
		}
		return nil
	})
}

// resolverPlanID accepts the plan directly or through its venta.
func (s *pagoService) resolverPlanID(ctx context.Context, req dto.RegistrarPagoRequest) (uuid.UUID, error) {
	if req.PlanPagoID != "" {
		id, err := uuid.Parse(req.PlanPagoID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("plan_pago_id invalido: %w", err)
		}
		return id, nil
	}
	ventaID, err := uuid.Parse(req.VentaID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("venta_id invalido: %w", err)
	}
	plan, err := s.planRepo.FindByVentaID(ctx, ventaID)
	if err != nil {
		return uuid.Nil, errors.New("la venta no tiene plan de pago")
	}
	return plan.ID, nil
}

func (s *pagoService) lockPlan(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error) {
	if tx == nil {
		return s.planRepo.FindByID(ctx, id)
	}
	return s.planRepo.FindByIDForUpdate(ctx, tx, id)
}

func (s *pagoService) listRows(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*model.Amortizacion, error) {
	if tx == nil {
		return s.amortRepo.ListByPlan(ctx, planID)
	}
	return s.amortRepo.ListByPlanTx(tx, planID)
}

func (s *pagoService) saveRows(tx *gorm.DB, rows []*model.Amortizacion) error {
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

func (s *pagoService) savePlan(tx *gorm.DB, p *model.PlanPago) error {
	if tx == nil {
		return nil
	}
	return s.planRepo.UpdateTx(tx, p)
}
