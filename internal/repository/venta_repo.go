package repository

import (
	"context"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Terreno").Preload("Terreno.Proyecto").
		Preload("Cliente").
		Preload("PlanPago").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{}).Where("ventas.activo = true")
	if filter.ProyectoID != "" {
		q = q.Joins("JOIN terrenos ON terrenos.id = ventas.terreno_id").
			Where("terrenos.proyecto_id = ?", filter.ProyectoID)
	}
	if filter.ClienteID != "" {
		q = q.Where("ventas.cliente_id = ?", filter.ClienteID)
	}
	if filter.Estado != "" {
		q = q.Where("ventas.estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("ventas.fecha_venta >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("ventas.fecha_venta <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Terreno").Preload("Cliente").Preload("PlanPago").
		Order("ventas.fecha_venta DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}
