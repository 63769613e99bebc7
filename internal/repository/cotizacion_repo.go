package repository

import (
	"context"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CotizacionRepository interface {
	Create(ctx context.Context, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountVigentes(ctx context.Context, hoy time.Time) (int64, error)
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) Create(ctx context.Context, c *model.Cotizacion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).Preload("Terreno").Preload("Terreno.Proyecto").First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var cotizaciones []model.Cotizacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("activo = true")
	if filter.TerrenoID != "" {
		q = q.Where("terreno_id = ?", filter.TerrenoID)
	}
	if filter.Vigentes {
		q = q.Where("fecha_vencimiento >= CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Terreno").
		Order("fecha_cotizacion DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&cotizaciones).Error
	return cotizaciones, total, err
}

func (r *cotizacionRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *cotizacionRepo) CountVigentes(ctx context.Context, hoy time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cotizacion{}).
		Where("activo = true AND fecha_vencimiento >= ?", hoy).
		Count(&n).Error
	return n, err
}
