package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, usuarioID *uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) error
}

type ventaService struct {
	repo         repository.VentaRepository
	terrenoRepo  repository.TerrenoRepository
	clienteRepo  repository.ClienteRepository
	proyectoRepo repository.ProyectoRepository
	planRepo     repository.PlanPagoRepository
	amortRepo    repository.AmortizacionRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	terrenoRepo repository.TerrenoRepository,
	clienteRepo repository.ClienteRepository,
	proyectoRepo repository.ProyectoRepository,
	planRepo repository.PlanPagoRepository,
	amortRepo repository.AmortizacionRepository,
) VentaService {
	return &ventaService{
		repo:         repo,
		terrenoRepo:  terrenoRepo,
		clienteRepo:  clienteRepo,
		proyectoRepo: proyectoRepo,
		planRepo:     planRepo,
		amortRepo:    amortRepo,
	}
}

// Crear registers a sale atomically: lock the terreno, flip it to VENDIDO,
// create the venta and, when financed, the plan with its full table. Any
// failure rolls the whole thing back, so a venta never exists half-built.
func (s *ventaService) Crear(ctx context.Context, usuarioID *uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	terrenoID, err := uuid.Parse(req.TerrenoID)
	if err != nil {
		return nil, fmt.Errorf("terreno_id invalido: %w", err)
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id invalido: %w", err)
	}
	fechaVenta, err := time.Parse(fechaISO, req.FechaVenta)
	if err != nil {
		return nil, fmt.Errorf("fecha_venta invalida: %w", err)
	}
	if req.Enganche.GreaterThan(req.PrecioVenta) {
		return nil, errors.New("el enganche no puede exceder el precio de venta")
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil || !cliente.Activo {
		return nil, errors.New("cliente no encontrado o inactivo")
	}

	// A plan only makes sense when something is left to finance; an
	// enganche covering the full price is a venta de contado even if the
	// request carries plan terms.
	conPlan := req.Plan != nil && req.PrecioVenta.Sub(req.Enganche).IsPositive()

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		terreno, err := s.lockTerreno(ctx, tx, terrenoID)
		if err != nil {
			return errors.New("terreno no encontrado")
		}
		if terreno.Estado != model.TerrenoDisponible {
			return fmt.Errorf("el terreno no esta disponible (estado %s)", terreno.Estado)
		}

		venta = model.Venta{
			TerrenoID:   terrenoID,
			ClienteID:   clienteID,
			UsuarioID:   usuarioID,
			FechaVenta:  fechaVenta,
			PrecioVenta: req.PrecioVenta,
			Enganche:    req.Enganche,
			Estado:      model.VentaPendiente,
			Notas:       req.Notas,
			Activo:      true,
		}
		if !conPlan {
			// Venta de contado: paid in full at signature.
			venta.Enganche = req.PrecioVenta
			venta.Estado = model.VentaPagada
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		if conPlan {
			plan, tabla, err := construirPlan(venta.ID, clienteID, req.PrecioVenta, req.Enganche, fechaVenta, req.Plan)
			if err != nil {
				return err
			}
			if err := s.planRepo.Create(ctx, tx, plan); err != nil {
				return err
			}
			for i := range tabla {
				tabla[i].PlanPagoID = plan.ID
			}
			if err := s.amortRepo.CreateBatch(ctx, tx, tabla); err != nil {
				return err
			}
			venta.PlanPago = plan
		}

		if err := s.updateTerrenoEstado(tx, terrenoID, model.TerrenoVendido); err != nil {
			return err
		}
		if err := s.refrescarContadores(ctx, tx, terreno.ProyectoID); err != nil {
			return err
		}
		return s.marcarClienteActivo(tx, clienteID)
	})
	if txErr != nil {
		return nil, txErr
	}

	venta.Cliente = cliente
	return ventaToResponse(&venta, time.Now().UTC()), nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(v, time.Now().UTC()), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hoy := time.Now().UTC()
	data := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		data[i] = *ventaToResponse(&ventas[i], hoy)
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Cancelar reverses a sale: the plan is deactivated and the terreno goes
// back to DISPONIBLE. Blocked once the plan has collected money.
func (s *ventaService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if v.Estado == model.VentaCancelada || v.Estado == model.VentaAnulada {
		return errors.New("la venta ya esta cancelada")
	}
	if v.PlanPago != nil && v.PlanPago.TotalPagado.IsPositive() {
		return errors.New("el plan tiene pagos aplicados; no puede cancelarse la venta")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if v.PlanPago != nil {
			if err := s.planRepo.Desactivar(ctx, tx, v.PlanPago.ID); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateEstadoTx(tx, id, model.VentaCancelada); err != nil {
			return err
		}
		if err := s.updateTerrenoEstado(tx, v.TerrenoID, model.TerrenoDisponible); err != nil {
			return err
		}
		if v.Terreno != nil {
			return s.refrescarContadores(ctx, tx, v.Terreno.ProyectoID)
		}
		return nil
	})
}

// Tx helpers tolerate the nil-tx unit test mode.

func (s *ventaService) lockTerreno(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Terreno, error) {
	if tx == nil {
		return s.terrenoRepo.FindByID(ctx, id)
	}
	return s.terrenoRepo.FindByIDForUpdate(ctx, tx, id)
}

func (s *ventaService) updateTerrenoEstado(tx *gorm.DB, id uuid.UUID, estado string) error {
	if tx == nil {
		return nil
	}
	return s.terrenoRepo.UpdateEstadoTx(tx, id, estado)
}

func (s *ventaService) refrescarContadores(ctx context.Context, tx *gorm.DB, proyectoID uuid.UUID) error {
	if tx == nil {
		return nil
	}
	return s.proyectoRepo.RefrescarContadores(ctx, tx, proyectoID)
}

func (s *ventaService) marcarClienteActivo(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		return nil
	}
	return s.clienteRepo.UpdateEstadoTx(tx, id, model.ClienteActivo)
}

func ventaToResponse(v *model.Venta, hoy time.Time) *dto.VentaResponse {
	terreno := ""
	if v.Terreno != nil {
		terreno = codigoLote(v.Terreno)
	}
	cliente := ""
	if v.Cliente != nil {
		cliente = v.Cliente.NombreCompleto()
	}
	var apartadoID *string
	if v.ApartadoID != nil {
		s := v.ApartadoID.String()
		apartadoID = &s
	}
	resp := &dto.VentaResponse{
		ID:          v.ID.String(),
		TerrenoID:   v.TerrenoID.String(),
		Terreno:     terreno,
		ClienteID:   v.ClienteID.String(),
		Cliente:     cliente,
		ApartadoID:  apartadoID,
		FechaVenta:  v.FechaVenta.Format(fechaISO),
		PrecioVenta: v.PrecioVenta,
		Enganche:    v.Enganche,
		Estado:      v.Estado,
		Notas:       v.Notas,
		CreatedAt:   v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.PlanPago != nil {
		resp.PlanPago = planToResponse(v.PlanPago, nil, hoy)
	}
	return resp
}
