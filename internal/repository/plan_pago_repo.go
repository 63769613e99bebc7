package repository

import (
	"context"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanPagoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.PlanPago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PlanPago, error)
	// FindByIDForUpdate takes the row lock that serializes every mutation
	// of a plan: payments, waivers and term updates all queue behind it.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error)
	FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.PlanPago, error)
	List(ctx context.Context, filter dto.PlanPagoFilter) ([]model.PlanPago, int64, error)
	UpdateTx(tx *gorm.DB, p *model.PlanPago) error
	Desactivar(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type planPagoRepo struct{ db *gorm.DB }

func NewPlanPagoRepository(db *gorm.DB) PlanPagoRepository { return &planPagoRepo{db: db} }

func (r *planPagoRepo) DB() *gorm.DB { return r.db }

func (r *planPagoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.PlanPago) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *planPagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PlanPago, error) {
	var p model.PlanPago
	err := r.db.WithContext(ctx).
		Preload("Amortizaciones", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero_amortizacion ASC")
		}).
		First(&p, id).Error
	return &p, err
}

func (r *planPagoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error) {
	var p model.PlanPago
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	return &p, err
}

func (r *planPagoRepo) FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.PlanPago, error) {
	var p model.PlanPago
	err := r.db.WithContext(ctx).
		Preload("Amortizaciones", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero_amortizacion ASC")
		}).
		Where("venta_id = ?", ventaID).
		First(&p).Error
	return &p, err
}

func (r *planPagoRepo) List(ctx context.Context, filter dto.PlanPagoFilter) ([]model.PlanPago, int64, error) {
	var planes []model.PlanPago
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PlanPago{}).Where("activo = true")
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.ConVencidas {
		// Derived overdue: an open row past due plus the plan's grace days.
		q = q.Where(`EXISTS (
			SELECT 1 FROM amortizaciones a
			WHERE a.plan_pago_id = planes_pago.id
			  AND a.estado = 'PENDIENTE'
			  AND a.fecha_vencimiento + planes_pago.dias_gracia * INTERVAL '1 day' < CURRENT_DATE
		)`)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&planes).Error
	return planes, total, err
}

func (r *planPagoRepo) UpdateTx(tx *gorm.DB, p *model.PlanPago) error {
	return tx.Save(p).Error
}

func (r *planPagoRepo) Desactivar(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.PlanPago{}).Where("id = ?", id).Update("activo", false).Error
}
