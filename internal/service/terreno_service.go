package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TerrenoService interface {
	Crear(ctx context.Context, req dto.CrearTerrenoRequest) (*dto.TerrenoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.TerrenoResponse, error)
	Listar(ctx context.Context, filter dto.TerrenoFilter) (*dto.TerrenoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTerrenoRequest) (*dto.TerrenoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type terrenoService struct {
	repo         repository.TerrenoRepository
	proyectoRepo repository.ProyectoRepository
}

func NewTerrenoService(repo repository.TerrenoRepository, proyectoRepo repository.ProyectoRepository) TerrenoService {
	return &terrenoService{repo: repo, proyectoRepo: proyectoRepo}
}

func (s *terrenoService) Crear(ctx context.Context, req dto.CrearTerrenoRequest) (*dto.TerrenoResponse, error) {
	proyectoID, err := uuid.Parse(req.ProyectoID)
	if err != nil {
		return nil, fmt.Errorf("proyecto_id invalido: %w", err)
	}
	proyecto, err := s.proyectoRepo.FindByID(ctx, proyectoID)
	if err != nil || !proyecto.Activo {
		return nil, errors.New("proyecto no encontrado o inactivo")
	}

	multiplicador := decimal.NewFromInt(1)
	if req.PrecioMultiplicador != nil {
		multiplicador = *req.PrecioMultiplicador
	}
	t := &model.Terreno{
		ProyectoID:          proyectoID,
		NumeroLote:          req.NumeroLote,
		Manzana:             req.Manzana,
		Area:                req.Area,
		Frente:              req.Frente,
		Fondo:               req.Fondo,
		PrecioBase:          req.PrecioBase,
		PrecioAjuste:        req.PrecioAjuste,
		PrecioMultiplicador: multiplicador,
		Estado:              model.TerrenoDisponible,
		Observaciones:       req.Observaciones,
		Activo:              true,
	}
	t.CalcularPrecioFinal()

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return s.repo.Create(ctx, t)
		}
		if err := tx.WithContext(ctx).Create(t).Error; err != nil {
			return err
		}
		return s.proyectoRepo.RefrescarContadores(ctx, tx, proyectoID)
	})
	if err != nil {
		return nil, err
	}
	t.Proyecto = proyecto
	return terrenoToResponse(t), nil
}

func (s *terrenoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.TerrenoResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("terreno no encontrado")
	}
	return terrenoToResponse(t), nil
}

func (s *terrenoService) Listar(ctx context.Context, filter dto.TerrenoFilter) (*dto.TerrenoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	terrenos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.TerrenoResponse, len(terrenos))
	for i := range terrenos {
		data[i] = *terrenoToResponse(&terrenos[i])
	}
	return &dto.TerrenoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *terrenoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTerrenoRequest) (*dto.TerrenoResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("terreno no encontrado")
	}
	if t.Estado == model.TerrenoVendido {
		return nil, errors.New("un terreno vendido no puede modificarse")
	}

	if req.NumeroLote != nil {
		t.NumeroLote = *req.NumeroLote
	}
	if req.Manzana != nil {
		t.Manzana = req.Manzana
	}
	if req.Area != nil {
		t.Area = *req.Area
	}
	if req.Frente != nil {
		t.Frente = req.Frente
	}
	if req.Fondo != nil {
		t.Fondo = req.Fondo
	}
	if req.PrecioBase != nil {
		t.PrecioBase = *req.PrecioBase
	}
	if req.PrecioAjuste != nil {
		t.PrecioAjuste = *req.PrecioAjuste
	}
	if req.PrecioMultiplicador != nil {
		t.PrecioMultiplicador = *req.PrecioMultiplicador
	}
	if req.Observaciones != nil {
		t.Observaciones = req.Observaciones
	}
	if req.Estado != nil {
		// Manual moves are limited to DISPONIBLE <-> NO_DISPONIBLE; an
		// APARTADO lot belongs to its apartado until it resolves.
		if t.Estado == model.TerrenoApartado {
			return nil, errors.New("el terreno esta apartado; cancele el apartado primero")
		}
		t.Estado = *req.Estado
	}
	t.CalcularPrecioFinal()

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return s.repo.Update(ctx, t)
		}
		if err := tx.WithContext(ctx).Save(t).Error; err != nil {
			return err
		}
		return s.proyectoRepo.RefrescarContadores(ctx, tx, t.ProyectoID)
	})
	if err != nil {
		return nil, err
	}
	return terrenoToResponse(t), nil
}

func (s *terrenoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("terreno no encontrado")
	}
	if t.Estado == model.TerrenoApartado || t.Estado == model.TerrenoVendido {
		return errors.New("solo terrenos sin apartado ni venta pueden eliminarse")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return s.repo.SoftDelete(ctx, id)
		}
		if err := tx.Model(&model.Terreno{}).Where("id = ?", id).Update("activo", false).Error; err != nil {
			return err
		}
		return s.proyectoRepo.RefrescarContadores(ctx, tx, t.ProyectoID)
	})
}

// codigoLote formats the display identifier, e.g. "M3-L14".
func codigoLote(t *model.Terreno) string {
	if t.Manzana != nil && *t.Manzana != "" {
		return fmt.Sprintf("M%s-L%s", *t.Manzana, t.NumeroLote)
	}
	return "L" + t.NumeroLote
}

func terrenoToResponse(t *model.Terreno) *dto.TerrenoResponse {
	nombreProyecto := ""
	if t.Proyecto != nil {
		nombreProyecto = t.Proyecto.Nombre
	}
	return &dto.TerrenoResponse{
		ID:                  t.ID.String(),
		ProyectoID:          t.ProyectoID.String(),
		Proyecto:            nombreProyecto,
		NumeroLote:          t.NumeroLote,
		Manzana:             t.Manzana,
		Area:                t.Area,
		Frente:              t.Frente,
		Fondo:               t.Fondo,
		PrecioBase:          t.PrecioBase,
		PrecioAjuste:        t.PrecioAjuste,
		PrecioMultiplicador: t.PrecioMultiplicador,
		PrecioFinal:         t.PrecioFinal,
		Estado:              t.Estado,
		Observaciones:       t.Observaciones,
		CreatedAt:           t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
