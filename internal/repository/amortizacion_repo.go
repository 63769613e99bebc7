package repository

import (
	"context"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AmortizacionRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []model.Amortizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Amortizacion, error)
	// ListByPlanTx reads the plan's rows inside the caller's transaction,
	// ordered by numero_amortizacion. The plan row lock must already be
	// held; the rows themselves are only ever touched under it.
	ListByPlanTx(tx *gorm.DB, planID uuid.UUID) ([]*model.Amortizacion, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*model.Amortizacion, error)
	UpdateTx(tx *gorm.DB, a *model.Amortizacion) error
	// ListPorVencer returns open installments due within the window, for
	// the reminder cron.
	ListPorVencer(ctx context.Context, desde, hasta time.Time) ([]model.Amortizacion, error)
	// ListVencidas returns open installments past due plus grace across
	// all active plans, joined for the collections report.
	ListVencidas(ctx context.Context, hoy time.Time) ([]model.Amortizacion, error)
	DeleteByPlanTx(tx *gorm.DB, planID uuid.UUID) error
}

type amortizacionRepo struct{ db *gorm.DB }

func NewAmortizacionRepository(db *gorm.DB) AmortizacionRepository { return &amortizacionRepo{db: db} }

func (r *amortizacionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []model.Amortizacion) error {
	return tx.WithContext(ctx).Create(&rows).Error
}

func (r *amortizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Amortizacion, error) {
	var a model.Amortizacion
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *amortizacionRepo) ListByPlanTx(tx *gorm.DB, planID uuid.UUID) ([]*model.Amortizacion, error) {
	var rows []*model.Amortizacion
	err := tx.Where("plan_pago_id = ?", planID).
		Order("numero_amortizacion ASC").
		Find(&rows).Error
	return rows, err
}

func (r *amortizacionRepo) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*model.Amortizacion, error) {
	var rows []*model.Amortizacion
	err := r.db.WithContext(ctx).
		Where("plan_pago_id = ?", planID).
		Order("numero_amortizacion ASC").
		Find(&rows).Error
	return rows, err
}

func (r *amortizacionRepo) UpdateTx(tx *gorm.DB, a *model.Amortizacion) error {
	return tx.Save(a).Error
}

func (r *amortizacionRepo) ListPorVencer(ctx context.Context, desde, hasta time.Time) ([]model.Amortizacion, error) {
	var rows []model.Amortizacion
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_vencimiento BETWEEN ? AND ?", model.AmortizacionPendiente, desde, hasta).
		Order("fecha_vencimiento ASC").
		Find(&rows).Error
	return rows, err
}

func (r *amortizacionRepo) ListVencidas(ctx context.Context, hoy time.Time) ([]model.Amortizacion, error) {
	var rows []model.Amortizacion
	err := r.db.WithContext(ctx).
		Joins("JOIN planes_pago p ON p.id = amortizaciones.plan_pago_id AND p.activo = true").
		Where("amortizaciones.estado = ?", model.AmortizacionPendiente).
		Where("amortizaciones.fecha_vencimiento + p.dias_gracia * INTERVAL '1 day' < ?", hoy).
		Order("amortizaciones.fecha_vencimiento ASC").
		Find(&rows).Error
	return rows, err
}

func (r *amortizacionRepo) DeleteByPlanTx(tx *gorm.DB, planID uuid.UUID) error {
	return tx.Where("plan_pago_id = ?", planID).Delete(&model.Amortizacion{}).Error
}
