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
	"github.com/shopspring/decimal"
)

type CotizacionService interface {
	Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type cotizacionService struct {
	repo        repository.CotizacionRepository
	terrenoRepo repository.TerrenoRepository
}

func NewCotizacionService(repo repository.CotizacionRepository, terrenoRepo repository.TerrenoRepository) CotizacionService {
	return &cotizacionService{repo: repo, terrenoRepo: terrenoRepo}
}

func (s *cotizacionService) Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	terrenoID, err := uuid.Parse(req.TerrenoID)
	if err != nil {
		return nil, fmt.Errorf("terreno_id invalido: %w", err)
	}
	terreno, err := s.terrenoRepo.FindByID(ctx, terrenoID)
	if err != nil || !terreno.Activo {
		return nil, errors.New("terreno no encontrado")
	}
	if terreno.Estado == model.TerrenoVendido {
		return nil, errors.New("el terreno ya esta vendido")
	}

	precioLista := terreno.PrecioFinal
	descuento := req.DescuentoMonto
	if req.DescuentoPorcentaje.IsPositive() {
		descuento = descuento.Add(
			precioLista.Mul(req.DescuentoPorcentaje).Div(decimal.NewFromInt(100)).Round(2))
	}
	precioFinal := precioLista.Sub(descuento)
	if precioFinal.IsNegative() {
		return nil, errors.New("el descuento excede el precio de lista")
	}

	dias := req.DiasVigencia
	if dias == 0 {
		dias = 15
	}
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	c := &model.Cotizacion{
		TerrenoID:           terrenoID,
		ClienteNombre:       req.ClienteNombre,
		ClienteEmail:        req.ClienteEmail,
		ClienteTelefono:     req.ClienteTelefono,
		PrecioLista:         precioLista,
		DescuentoPorcentaje: req.DescuentoPorcentaje,
		DescuentoMonto:      descuento,
		PrecioFinal:         precioFinal,
		FechaCotizacion:     hoy,
		FechaVencimiento:    hoy.AddDate(0, 0, dias),
		Notas:               req.Notas,
		Activo:              true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Terreno = terreno
	return cotizacionToResponse(c, hoy), nil
}

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cotizacion no encontrada")
	}
	return cotizacionToResponse(c, time.Now().UTC()), nil
}

func (s *cotizacionService) Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cotizaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hoy := time.Now().UTC()
	data := make([]dto.CotizacionResponse, len(cotizaciones))
	for i := range cotizaciones {
		data[i] = *cotizacionToResponse(&cotizaciones[i], hoy)
	}
	return &dto.CotizacionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *cotizacionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cotizacion no encontrada")
	}
	return s.repo.SoftDelete(ctx, id)
}

func cotizacionToResponse(c *model.Cotizacion, hoy time.Time) *dto.CotizacionResponse {
	terreno := ""
	if c.Terreno != nil {
		terreno = codigoLote(c.Terreno)
	}
	return &dto.CotizacionResponse{
		ID:                  c.ID.String(),
		TerrenoID:           c.TerrenoID.String(),
		Terreno:             terreno,
		ClienteNombre:       c.ClienteNombre,
		ClienteEmail:        c.ClienteEmail,
		ClienteTelefono:     c.ClienteTelefono,
		PrecioLista:         c.PrecioLista,
		DescuentoPorcentaje: c.DescuentoPorcentaje,
		DescuentoMonto:      c.DescuentoMonto,
		PrecioFinal:         c.PrecioFinal,
		FechaCotizacion:     c.FechaCotizacion.Format(fechaISO),
		FechaVencimiento:    c.FechaVencimiento.Format(fechaISO),
		Vigente:             c.Vigente(hoy),
		Notas:               c.Notas,
		CreatedAt:           c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
