package service

import (
	"context"
	"errors"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
)

type ProyectoService interface {
	Crear(ctx context.Context, req dto.CrearProyectoRequest) (*dto.ProyectoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProyectoResponse, error)
	Listar(ctx context.Context, filter dto.ProyectoFilter) (*dto.ProyectoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProyectoRequest) (*dto.ProyectoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proyectoService struct {
	repo        repository.ProyectoRepository
	terrenoRepo repository.TerrenoRepository
}

func NewProyectoService(repo repository.ProyectoRepository, terrenoRepo repository.TerrenoRepository) ProyectoService {
	return &proyectoService{repo: repo, terrenoRepo: terrenoRepo}
}

func (s *proyectoService) Crear(ctx context.Context, req dto.CrearProyectoRequest) (*dto.ProyectoResponse, error) {
	estado := req.Estado
	if estado == "" {
		estado = "ACTIVO"
	}
	p := &model.Proyecto{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Direccion:    req.Direccion,
		Ciudad:       req.Ciudad,
		CodigoPostal: req.CodigoPostal,
		Estado:       estado,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return proyectoToResponse(p), nil
}

func (s *proyectoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProyectoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proyecto no encontrado")
	}
	return proyectoToResponse(p), nil
}

func (s *proyectoService) Listar(ctx context.Context, filter dto.ProyectoFilter) (*dto.ProyectoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	proyectos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProyectoResponse, len(proyectos))
	for i := range proyectos {
		data[i] = *proyectoToResponse(&proyectos[i])
	}
	return &dto.ProyectoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *proyectoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProyectoRequest) (*dto.ProyectoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proyecto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.Ciudad != nil {
		p.Ciudad = req.Ciudad
	}
	if req.CodigoPostal != nil {
		p.CodigoPostal = req.CodigoPostal
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proyectoToResponse(p), nil
}

func (s *proyectoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("proyecto no encontrado")
	}
	// A project with reserved or sold lots cannot be removed.
	if p.TerrenosApartados > 0 || p.TerrenosVendidos > 0 {
		return errors.New("el proyecto tiene terrenos apartados o vendidos")
	}
	return s.repo.SoftDelete(ctx, id)
}

func proyectoToResponse(p *model.Proyecto) *dto.ProyectoResponse {
	return &dto.ProyectoResponse{
		ID:                  p.ID.String(),
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		Direccion:           p.Direccion,
		Ciudad:              p.Ciudad,
		CodigoPostal:        p.CodigoPostal,
		Estado:              p.Estado,
		TotalTerrenos:       p.TotalTerrenos,
		TerrenosDisponibles: p.TerrenosDisponibles,
		TerrenosApartados:   p.TerrenosApartados,
		TerrenosVendidos:    p.TerrenosVendidos,
		Activo:              p.Activo,
		CreatedAt:           p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
