package repository

import (
	"context"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioStats are the dashboard's inventory counters.
type InventarioStats struct {
	TotalProyectos      int64
	TotalTerrenos       int64
	TerrenosDisponibles int64
	TerrenosApartados   int64
	TerrenosVendidos    int64
}

// CarteraStats summarize the receivables position.
type CarteraStats struct {
	PlanesActivos     int64
	PlanesConVencidas int64
	CarteraVencida    decimal.Decimal
	CarteraPorCobrar  decimal.Decimal
}

// VentaReporteRow is one line of the sales export.
type VentaReporteRow struct {
	FechaVenta  time.Time
	Proyecto    string
	Manzana     *string
	NumeroLote  string
	Cliente     string
	PrecioVenta decimal.Decimal
	Enganche    decimal.Decimal
	Estado      string
	TipoPlan    *string
}

// ReporteRepository runs the aggregate queries behind the dashboard and
// exports. Read-only.
type ReporteRepository interface {
	Inventario(ctx context.Context) (InventarioStats, error)
	VentasDelMes(ctx context.Context, fecha time.Time) (int64, decimal.Decimal, error)
	Cartera(ctx context.Context, hoy time.Time) (CarteraStats, error)
	VentasParaExport(ctx context.Context, filter dto.ReporteVentasFilter) ([]VentaReporteRow, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) Inventario(ctx context.Context) (InventarioStats, error) {
	var s InventarioStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Proyecto{}).Where("activo = true").Count(&s.TotalProyectos).Error; err != nil {
		return s, err
	}

	type fila struct {
		Estado string
		N      int64
	}
	var filas []fila
	err := db.Model(&model.Terreno{}).
		Select("estado, COUNT(*) AS n").
		Where("activo = true").
		Group("estado").
		Scan(&filas).Error
	if err != nil {
		return s, err
	}
	for _, f := range filas {
		s.TotalTerrenos += f.N
		switch f.Estado {
		case model.TerrenoDisponible:
			s.TerrenosDisponibles = f.N
		case model.TerrenoApartado:
			s.TerrenosApartados = f.N
		case model.TerrenoVendido:
			s.TerrenosVendidos = f.N
		}
	}
	return s, nil
}

func (r *reporteRepo) VentasDelMes(ctx context.Context, fecha time.Time) (int64, decimal.Decimal, error) {
	inicio := time.Date(fecha.Year(), fecha.Month(), 1, 0, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 1, 0)

	var res struct {
		N     int64
		Monto decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COUNT(*) AS n, COALESCE(SUM(precio_venta), 0) AS monto").
		Where("activo = true AND estado NOT IN ? AND fecha_venta >= ? AND fecha_venta < ?",
			[]string{model.VentaCancelada, model.VentaAnulada}, inicio, fin).
		Scan(&res).Error
	return res.N, res.Monto, err
}

func (r *reporteRepo) Cartera(ctx context.Context, hoy time.Time) (CarteraStats, error) {
	var s CarteraStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.PlanPago{}).Where("activo = true").Count(&s.PlanesActivos).Error; err != nil {
		return s, err
	}

	vencidaCond := `amortizaciones.estado = 'PENDIENTE'
		AND amortizaciones.fecha_vencimiento + planes_pago.dias_gracia * INTERVAL '1 day' < ?`

	err := db.Model(&model.PlanPago{}).
		Where("activo = true").
		Where(`EXISTS (SELECT 1 FROM amortizaciones
			WHERE amortizaciones.plan_pago_id = planes_pago.id
			AND `+vencidaCond+`)`, hoy).
		Count(&s.PlanesConVencidas).Error
	if err != nil {
		return s, err
	}

	var vencida struct{ Monto decimal.Decimal }
	err = db.Model(&model.Amortizacion{}).
		Select("COALESCE(SUM(amortizaciones.saldo_pendiente), 0) AS monto").
		Joins("JOIN planes_pago ON planes_pago.id = amortizaciones.plan_pago_id AND planes_pago.activo = true").
		Where(vencidaCond, hoy).
		Scan(&vencida).Error
	if err != nil {
		return s, err
	}
	s.CarteraVencida = vencida.Monto

	var porCobrar struct{ Monto decimal.Decimal }
	err = db.Model(&model.PlanPago{}).
		Select("COALESCE(SUM(total_pendiente), 0) AS monto").
		Where("activo = true").
		Scan(&porCobrar).Error
	if err != nil {
		return s, err
	}
	s.CarteraPorCobrar = porCobrar.Monto
	return s, nil
}

func (r *reporteRepo) VentasParaExport(ctx context.Context, filter dto.ReporteVentasFilter) ([]VentaReporteRow, error) {
	var rows []VentaReporteRow
	q := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select(`ventas.fecha_venta,
			proyectos.nombre AS proyecto,
			terrenos.manzana,
			terrenos.numero_lote,
			clientes.nombre || ' ' || clientes.apellido AS cliente,
			ventas.precio_venta,
			ventas.enganche,
			ventas.estado,
			planes_pago.tipo_plan`).
		Joins("JOIN terrenos ON terrenos.id = ventas.terreno_id").
		Joins("JOIN proyectos ON proyectos.id = terrenos.proyecto_id").
		Joins("JOIN clientes ON clientes.id = ventas.cliente_id").
		Joins("LEFT JOIN planes_pago ON planes_pago.venta_id = ventas.id").
		Where("ventas.activo = true")

	if filter.ProyectoID != "" {
		q = q.Where("proyectos.id = ?", filter.ProyectoID)
	}
	if filter.Desde != "" {
		q = q.Where("ventas.fecha_venta >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("ventas.fecha_venta <= ?", filter.Hasta)
	}

	err := q.Order("ventas.fecha_venta ASC").Scan(&rows).Error
	return rows, err
}
