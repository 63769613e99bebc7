package service

import (
	"context"
	"errors"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:        req.Nombre,
		Apellido:      req.Apellido,
		Email:         req.Email,
		Telefono:      req.Telefono,
		Direccion:     req.Direccion,
		Ciudad:        req.Ciudad,
		RFC:           req.RFC,
		EstadoCliente: model.ClienteProspecto,
		Notas:         req.Notas,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		data[i] = *clienteToResponse(&clientes[i])
	}
	return &dto.ClienteListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		c.Apellido = *req.Apellido
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.Ciudad != nil {
		c.Ciudad = req.Ciudad
	}
	if req.RFC != nil {
		c.RFC = req.RFC
	}
	if req.EstadoCliente != nil {
		c.EstadoCliente = *req.EstadoCliente
	}
	if req.Notas != nil {
		c.Notas = req.Notas
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cliente no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:            c.ID.String(),
		Nombre:        c.Nombre,
		Apellido:      c.Apellido,
		Email:         c.Email,
		Telefono:      c.Telefono,
		Direccion:     c.Direccion,
		Ciudad:        c.Ciudad,
		RFC:           c.RFC,
		EstadoCliente: c.EstadoCliente,
		Notas:         c.Notas,
		Activo:        c.Activo,
		CreatedAt:     c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
