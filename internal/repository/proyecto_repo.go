package repository

import (
	"context"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProyectoRepository interface {
	Create(ctx context.Context, p *model.Proyecto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proyecto, error)
	List(ctx context.Context, filter dto.ProyectoFilter) ([]model.Proyecto, int64, error)
	Update(ctx context.Context, p *model.Proyecto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// RefrescarContadores rebuilds the cached terreno counters from the
	// terrenos table. Runs inside the same tx as the state change.
	RefrescarContadores(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type proyectoRepo struct{ db *gorm.DB }

func NewProyectoRepository(db *gorm.DB) ProyectoRepository { return &proyectoRepo{db: db} }

func (r *proyectoRepo) Create(ctx context.Context, p *model.Proyecto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proyectoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proyecto, error) {
	var p model.Proyecto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *proyectoRepo) List(ctx context.Context, filter dto.ProyectoFilter) ([]model.Proyecto, int64, error) {
	var proyectos []model.Proyecto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Proyecto{})
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&proyectos).Error
	return proyectos, total, err
}

func (r *proyectoRepo) Update(ctx context.Context, p *model.Proyecto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proyectoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proyecto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *proyectoRepo) RefrescarContadores(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Exec(`
		UPDATE proyectos SET
			total_terrenos       = (SELECT COUNT(*) FROM terrenos WHERE proyecto_id = ? AND activo = true),
			terrenos_disponibles = (SELECT COUNT(*) FROM terrenos WHERE proyecto_id = ? AND activo = true AND estado = 'DISPONIBLE'),
			terrenos_apartados   = (SELECT COUNT(*) FROM terrenos WHERE proyecto_id = ? AND activo = true AND estado = 'APARTADO'),
			terrenos_vendidos    = (SELECT COUNT(*) FROM terrenos WHERE proyecto_id = ? AND activo = true AND estado = 'VENDIDO')
		WHERE id = ?`, id, id, id, id, id).Error
}
