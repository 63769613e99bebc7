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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ApartadoService interface {
	Crear(ctx context.Context, req dto.CrearApartadoRequest) (*dto.ApartadoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ApartadoResponse, error)
	Listar(ctx context.Context, filter dto.ApartadoFilter) (*dto.ApartadoListResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) error
	// Convertir turns the reservation into a venta; the monto apartado is
	// credited to the enganche.
	Convertir(ctx context.Context, id uuid.UUID, usuarioID *uuid.UUID, req dto.ConvertirApartadoRequest) (*dto.VentaResponse, error)
	// CancelarVencidos releases every lot whose reservation expired. Run by
	// the daily sweep.
	CancelarVencidos(ctx context.Context) (int, error)
}

type apartadoService struct {
	repo         repository.ApartadoRepository
	terrenoRepo  repository.TerrenoRepository
	clienteRepo  repository.ClienteRepository
	proyectoRepo repository.ProyectoRepository
	ventaRepo    repository.VentaRepository
	planRepo     repository.PlanPagoRepository
	amortRepo    repository.AmortizacionRepository
}

func NewApartadoService(
	repo repository.ApartadoRepository,
	terrenoRepo repository.TerrenoRepository,
	clienteRepo repository.ClienteRepository,
	proyectoRepo repository.ProyectoRepository,
	ventaRepo repository.VentaRepository,
	planRepo repository.PlanPagoRepository,
	amortRepo repository.AmortizacionRepository,
) ApartadoService {
	return &apartadoService{
		repo:         repo,
		terrenoRepo:  terrenoRepo,
		clienteRepo:  clienteRepo,
		proyectoRepo: proyectoRepo,
		ventaRepo:    ventaRepo,
		planRepo:     planRepo,
		amortRepo:    amortRepo,
	}
}

func (s *apartadoService) Crear(ctx context.Context, req dto.CrearApartadoRequest) (*dto.ApartadoResponse, error) {
	terrenoID, err := uuid.Parse(req.TerrenoID)
	if err != nil {
		return nil, fmt.Errorf("terreno_id invalido: %w", err)
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id invalido: %w", err)
	}
	if !req.MontoApartado.IsPositive() {
		return nil, errors.New("monto_apartado debe ser positivo")
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil || !cliente.Activo {
		return nil, errors.New("cliente no encontrado o inactivo")
	}

	dias := req.DiasVigencia
	if dias == 0 {
		dias = 30
	}
	hoy := time.Now().UTC().Truncate(24 * time.Hour)

	var apartado model.Apartado
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		terreno, err := s.lockTerreno(ctx, tx, terrenoID)
		if err != nil {
			return errors.New("terreno no encontrado")
		}
		if terreno.Estado != model.TerrenoDisponible {
			return fmt.Errorf("el terreno no esta disponible (estado %s)", terreno.Estado)
		}
		if req.MontoApartado.GreaterThan(terreno.PrecioFinal) {
			return errors.New("monto_apartado excede el precio del terreno")
		}

		apartado = model.Apartado{
			TerrenoID:        terrenoID,
			ClienteID:        clienteID,
			MontoApartado:    req.MontoApartado,
			PrecioTotal:      terreno.PrecioFinal,
			FechaApartado:    hoy,
			FechaVencimiento: hoy.AddDate(0, 0, dias),
			Estado:           model.ApartadoVigente,
			Observaciones:    req.Observaciones,
			Activo:           true,
		}
		if err := s.repo.Create(ctx, tx, &apartado); err != nil {
			return err
		}
		if tx != nil {
			if err := s.terrenoRepo.UpdateEstadoTx(tx, terrenoID, model.TerrenoApartado); err != nil {
				return err
			}
			return s.proyectoRepo.RefrescarContadores(ctx, tx, terreno.ProyectoID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	apartado.Cliente = cliente
	return apartadoToResponse(&apartado, hoy), nil
}

func (s *apartadoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ApartadoResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("apartado no encontrado")
	}
	return apartadoToResponse(a, time.Now().UTC()), nil
}

func (s *apartadoService) Listar(ctx context.Context, filter dto.ApartadoFilter) (*dto.ApartadoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	hoy := time.Now().UTC()
	apartados, total, err := s.repo.List(ctx, filter, hoy)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ApartadoResponse, len(apartados))
	for i := range apartados {
		data[i] = *apartadoToResponse(&apartados[i], hoy)
	}
	return &dto.ApartadoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *apartadoService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		a, err := s.lockApartado(ctx, tx, id)
		if err != nil {
			return errors.New("apartado no encontrado")
		}
		if a.Estado != model.ApartadoVigente {
			return fmt.Errorf("solo un apartado VIGENTE puede cancelarse (estado %s)", a.Estado)
		}
		return s.liberarTerreno(ctx, tx, a, model.ApartadoCancelado)
	})
}

func (s *apartadoService) Convertir(ctx context.Context, id uuid.UUID, usuarioID *uuid.UUID, req dto.ConvertirApartadoRequest) (*dto.VentaResponse, error) {
	hoy := time.Now().UTC().Truncate(24 * time.Hour)

	var venta model.Venta
	var cliente *model.Cliente
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		a, err := s.lockApartado(ctx, tx, id)
		if err != nil {
			return errors.New("apartado no encontrado")
		}
		if a.Estado != model.ApartadoVigente {
			return fmt.Errorf("solo un apartado VIGENTE puede convertirse (estado %s)", a.Estado)
		}
		if a.Vencido(hoy) {
			return errors.New("el apartado esta vencido")
		}

		terreno, err := s.lockTerreno(ctx, tx, a.TerrenoID)
		if err != nil {
			return errors.New("terreno no encontrado")
		}

		// The reservation deposit counts toward the down payment.
		enganche := req.Enganche.Add(a.MontoApartado)
		if enganche.GreaterThan(req.PrecioVenta) {
			return errors.New("el enganche no puede exceder el precio de venta")
		}
		// Nothing left to finance means venta de contado, plan terms or not.
		conPlan := req.Plan != nil && req.PrecioVenta.Sub(enganche).IsPositive()

		apartadoID := a.ID
		venta = model.Venta{
			TerrenoID:   a.TerrenoID,
			ClienteID:   a.ClienteID,
			ApartadoID:  &apartadoID,
			UsuarioID:   usuarioID,
			FechaVenta:  hoy,
			PrecioVenta: req.PrecioVenta,
			Enganche:    enganche,
			Estado:      model.VentaPendiente,
			Notas:       req.Notas,
			Activo:      true,
		}
		if !conPlan {
			venta.Enganche = req.PrecioVenta
			venta.Estado = model.VentaPagada
		}
		if err := s.ventaRepo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		if conPlan {
			plan, tabla, err := construirPlan(venta.ID, a.ClienteID, req.PrecioVenta, enganche, hoy, req.Plan)
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

		if tx != nil {
			if err := s.repo.UpdateEstadoTx(tx, a.ID, model.ApartadoConvertido); err != nil {
				return err
			}
			if err := s.terrenoRepo.UpdateEstadoTx(tx, a.TerrenoID, model.TerrenoVendido); err != nil {
				return err
			}
			if err := s.proyectoRepo.RefrescarContadores(ctx, tx, terreno.ProyectoID); err != nil {
				return err
			}
			if err := s.clienteRepo.UpdateEstadoTx(tx, a.ClienteID, model.ClienteActivo); err != nil {
				return err
			}
		}
		cliente, _ = s.clienteRepo.FindByID(ctx, a.ClienteID)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	venta.Cliente = cliente
	return ventaToResponse(&venta, time.Now().UTC()), nil
}

func (s *apartadoService) CancelarVencidos(ctx context.Context) (int, error) {
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	vencidos, err := s.repo.ListVencidos(ctx, hoy)
	if err != nil {
		return 0, err
	}

	liberados := 0
	for i := range vencidos {
		a := vencidos[i]
		err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			locked, err := s.lockApartado(ctx, tx, a.ID)
			if err != nil {
				return err
			}
			// Someone may have converted or cancelled it since the scan.
			if locked.Estado != model.ApartadoVigente {
				return nil
			}
			return s.liberarTerreno(ctx, tx, locked, model.ApartadoCancelado)
		})
		if err != nil {
			log.Error().Err(err).Str("apartado_id", a.ID.String()).Msg("no se pudo liberar apartado vencido")
			continue
		}
		liberados++
	}
	return liberados, nil
}

// liberarTerreno closes the apartado and returns the lot to DISPONIBLE.
func (s *apartadoService) liberarTerreno(ctx context.Context, tx *gorm.DB, a *model.Apartado, estadoFinal string) error {
	if tx == nil {
		a.Estado = estadoFinal
		return nil
	}
	if err := s.repo.UpdateEstadoTx(tx, a.ID, estadoFinal); err != nil {
		return err
	}
	if err := s.terrenoRepo.UpdateEstadoTx(tx, a.TerrenoID, model.TerrenoDisponible); err != nil {
		return err
	}
	terreno, err := s.terrenoRepo.FindByIDForUpdate(ctx, tx, a.TerrenoID)
	if err != nil {
		return err
	}
	return s.proyectoRepo.RefrescarContadores(ctx, tx, terreno.ProyectoID)
}

func (s *apartadoService) lockTerreno(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Terreno, error) {
	if tx == nil {
		return s.terrenoRepo.FindByID(ctx, id)
	}
	return s.terrenoRepo.FindByIDForUpdate(ctx, tx, id)
}

func (s *apartadoService) lockApartado(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Apartado, error) {
	if tx == nil {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.FindByIDForUpdate(ctx, tx, id)
}

func apartadoToResponse(a *model.Apartado, hoy time.Time) *dto.ApartadoResponse {
	terreno := ""
	if a.Terreno != nil {
		terreno = codigoLote(a.Terreno)
	}
	cliente := ""
	if a.Cliente != nil {
		cliente = a.Cliente.NombreCompleto()
	}
	return &dto.ApartadoResponse{
		ID:               a.ID.String(),
		TerrenoID:        a.TerrenoID.String(),
		Terreno:          terreno,
		ClienteID:        a.ClienteID.String(),
		Cliente:          cliente,
		MontoApartado:    a.MontoApartado,
		PrecioTotal:      a.PrecioTotal,
		FechaApartado:    a.FechaApartado.Format(fechaISO),
		FechaVencimiento: a.FechaVencimiento.Format(fechaISO),
		Estado:           a.Estado,
		Vencido:          a.Vencido(hoy),
		Observaciones:    a.Observaciones,
		CreatedAt:        a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
