package repository

import (
	"context"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]model.Pago, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	// SumDelMes totals applied payments for the month containing fecha.
	SumDelMes(ctx context.Context, fecha time.Time) (int64, decimal.Decimal, error)
	DB() *gorm.DB
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) DB() *gorm.DB { return r.db }

func (r *pagoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *pagoRepo) List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error) {
	var pagos []model.Pago
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pago{}).Where("activo = true")
	if filter.PlanPagoID != "" {
		q = q.Where("plan_pago_id = ?", filter.PlanPagoID)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Desde != "" {
		q = q.Where("fecha_pago >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha_pago <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha_pago DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&pagos).Error
	return pagos, total, err
}

func (r *pagoRepo) ListByPlan(ctx context.Context, planID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("plan_pago_id = ? AND activo = true", planID).
		Order("fecha_pago ASC, created_at ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Pago{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *pagoRepo) SumDelMes(ctx context.Context, fecha time.Time) (int64, decimal.Decimal, error) {
	inicio := time.Date(fecha.Year(), fecha.Month(), 1, 0, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 1, 0)

	var res struct {
		N     int64
		Monto decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Select("COUNT(*) AS n, COALESCE(SUM(monto_pagado), 0) AS monto").
		Where("estado = ? AND activo = true AND fecha_pago >= ? AND fecha_pago < ?",
			model.PagoAplicado, inicio, fin).
		Scan(&res).Error
	return res.N, res.Monto, err
}
