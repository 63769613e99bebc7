package repository

import (
	"context"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TerrenoRepository interface {
	Create(ctx context.Context, t *model.Terreno) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Terreno, error)
	// FindByIDForUpdate locks the row for the length of the transaction so
	// concurrent apartados/ventas over the same lot serialize.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Terreno, error)
	List(ctx context.Context, filter dto.TerrenoFilter) ([]model.Terreno, int64, error)
	Update(ctx context.Context, t *model.Terreno) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type terrenoRepo struct{ db *gorm.DB }

func NewTerrenoRepository(db *gorm.DB) TerrenoRepository { return &terrenoRepo{db: db} }

func (r *terrenoRepo) DB() *gorm.DB { return r.db }

func (r *terrenoRepo) Create(ctx context.Context, t *model.Terreno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *terrenoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Terreno, error) {
	var t model.Terreno
	err := r.db.WithContext(ctx).Preload("Proyecto").First(&t, id).Error
	return &t, err
}

func (r *terrenoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Terreno, error) {
	var t model.Terreno
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, id).Error
	return &t, err
}

func (r *terrenoRepo) List(ctx context.Context, filter dto.TerrenoFilter) ([]model.Terreno, int64, error) {
	var terrenos []model.Terreno
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Terreno{}).Where("activo = true")
	if filter.ProyectoID != "" {
		q = q.Where("proyecto_id = ?", filter.ProyectoID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Manzana != "" {
		q = q.Where("manzana = ?", filter.Manzana)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Proyecto").
		Order("manzana ASC, numero_lote ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&terrenos).Error
	return terrenos, total, err
}

func (r *terrenoRepo) Update(ctx context.Context, t *model.Terreno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *terrenoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Terreno{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *terrenoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Terreno{}).Where("id = ?", id).Update("activo", false).Error
}
