package repository

import (
	"context"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApartadoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Apartado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Apartado, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Apartado, error)
	FindVigenteByTerreno(ctx context.Context, terrenoID uuid.UUID) (*model.Apartado, error)
	List(ctx context.Context, filter dto.ApartadoFilter, hoy time.Time) ([]model.Apartado, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	// ListVencidos returns VIGENTE apartados past their expiry date, for
	// the expiry sweep.
	ListVencidos(ctx context.Context, hoy time.Time) ([]model.Apartado, error)
	CountVigentes(ctx context.Context, hoy time.Time) (int64, error)
	DB() *gorm.DB
}

type apartadoRepo struct{ db *gorm.DB }

func NewApartadoRepository(db *gorm.DB) ApartadoRepository { return &apartadoRepo{db: db} }

func (r *apartadoRepo) DB() *gorm.DB { return r.db }

func (r *apartadoRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Apartado) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *apartadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Apartado, error) {
	var a model.Apartado
	err := r.db.WithContext(ctx).Preload("Terreno").Preload("Cliente").First(&a, id).Error
	return &a, err
}

func (r *apartadoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Apartado, error) {
	var a model.Apartado
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, id).Error
	return &a, err
}

func (r *apartadoRepo) FindVigenteByTerreno(ctx context.Context, terrenoID uuid.UUID) (*model.Apartado, error) {
	var a model.Apartado
	err := r.db.WithContext(ctx).
		Where("terreno_id = ? AND estado = ?", terrenoID, model.ApartadoVigente).
		First(&a).Error
	return &a, err
}

func (r *apartadoRepo) List(ctx context.Context, filter dto.ApartadoFilter, hoy time.Time) ([]model.Apartado, int64, error) {
	var apartados []model.Apartado
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Apartado{}).Where("activo = true")
	if filter.TerrenoID != "" {
		q = q.Where("terreno_id = ?", filter.TerrenoID)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	switch filter.Estado {
	case "VENCIDO":
		// Derived: VIGENTE past its expiry.
		q = q.Where("estado = ? AND fecha_vencimiento < ?", model.ApartadoVigente, hoy)
	case "":
	default:
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Terreno").Preload("Cliente").
		Order("fecha_apartado DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&apartados).Error
	return apartados, total, err
}

func (r *apartadoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Apartado{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *apartadoRepo) ListVencidos(ctx context.Context, hoy time.Time) ([]model.Apartado, error) {
	var apartados []model.Apartado
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_vencimiento < ? AND activo = true", model.ApartadoVigente, hoy).
		Find(&apartados).Error
	return apartados, err
}

func (r *apartadoRepo) CountVigentes(ctx context.Context, hoy time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Apartado{}).
		Where("estado = ? AND fecha_vencimiento >= ? AND activo = true", model.ApartadoVigente, hoy).
		Count(&n).Error
	return n, err
}
