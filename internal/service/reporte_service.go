package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/finanzas"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	dashboardCacheKey = "cache:dashboard"
	dashboardCacheTTL = 60 * time.Second
)

type ReporteService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	CuotasVencidas(ctx context.Context) (*dto.CuotasVencidasResponse, error)
	ExportVentasExcel(ctx context.Context, filter dto.ReporteVentasFilter) ([]byte, string, error)
}

type reporteService struct {
	repo           repository.ReporteRepository
	pagoRepo       repository.PagoRepository
	apartadoRepo   repository.ApartadoRepository
	cotizacionRepo repository.CotizacionRepository
	amortRepo      repository.AmortizacionRepository
	planRepo       repository.PlanPagoRepository
	ventaRepo      repository.VentaRepository
	rdb            *redis.Client
}

func NewReporteService(
	repo repository.ReporteRepository,
	pagoRepo repository.PagoRepository,
	apartadoRepo repository.ApartadoRepository,
	cotizacionRepo repository.CotizacionRepository,
	amortRepo repository.AmortizacionRepository,
	planRepo repository.PlanPagoRepository,
	ventaRepo repository.VentaRepository,
	rdb *redis.Client,
) ReporteService {
	return &reporteService{
		repo:           repo,
		pagoRepo:       pagoRepo,
		apartadoRepo:   apartadoRepo,
		cotizacionRepo: cotizacionRepo,
		amortRepo:      amortRepo,
		planRepo:       planRepo,
		ventaRepo:      ventaRepo,
		rdb:            rdb,
	}
}

// Dashboard aggregates inventory, sales and receivables. The result is
// cached in Redis for a minute; every query behind it is a full scan of
// its table and the board refreshes this screen constantly.
func (s *reporteService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	hoy := time.Now().UTC()
	inv, err := s.repo.Inventario(ctx)
	if err != nil {
		return nil, err
	}
	nVentas, montoVentas, err := s.repo.VentasDelMes(ctx, hoy)
	if err != nil {
		return nil, err
	}
	nPagos, montoPagos, err := s.pagoRepo.SumDelMes(ctx, hoy)
	if err != nil {
		return nil, err
	}
	cartera, err := s.repo.Cartera(ctx, hoy)
	if err != nil {
		return nil, err
	}
	apartados, err := s.apartadoRepo.CountVigentes(ctx, hoy)
	if err != nil {
		return nil, err
	}
	cotizaciones, err := s.cotizacionRepo.CountVigentes(ctx, hoy)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalProyectos:       inv.TotalProyectos,
		TotalTerrenos:        inv.TotalTerrenos,
		TerrenosDisponibles:  inv.TerrenosDisponibles,
		TerrenosApartados:    inv.TerrenosApartados,
		TerrenosVendidos:     inv.TerrenosVendidos,
		VentasDelMes:         nVentas,
		MontoVentasDelMes:    montoVentas,
		PagosDelMes:          nPagos,
		MontoPagosDelMes:     montoPagos,
		PlanesActivos:        cartera.PlanesActivos,
		PlanesConVencidas:    cartera.PlanesConVencidas,
		CarteraVencida:       cartera.CarteraVencida,
		CarteraPorCobrar:     cartera.CarteraPorCobrar,
		ApartadosVigentes:    apartados,
		CotizacionesVigentes: cotizaciones,
		GeneradoEn:           hoy.Format("2006-01-02T15:04:05Z"),
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el dashboard")
			}
		}
	}
	return resp, nil
}

// CuotasVencidas is the collections worklist: every open installment past
// due plus grace, with live mora, labeled with cliente and lote.
func (s *reporteService) CuotasVencidas(ctx context.Context) (*dto.CuotasVencidasResponse, error) {
	hoy := time.Now().UTC()
	rows, err := s.amortRepo.ListVencidas(ctx, hoy)
	if err != nil {
		return nil, err
	}

	type planInfo struct {
		plan    *model.PlanPago
		cliente string
		terreno string
	}
	planes := make(map[uuid.UUID]*planInfo)

	resp := &dto.CuotasVencidasResponse{
		Data:       []dto.CuotaVencidaItem{},
		TotalSaldo: decimal.Zero,
		TotalMora:  decimal.Zero,
	}
	for i := range rows {
		a := &rows[i]
		info, ok := planes[a.PlanPagoID]
		if !ok {
			plan, err := s.planRepo.FindByID(ctx, a.PlanPagoID)
			if err != nil {
				continue
			}
			info = &planInfo{plan: plan}
			if venta, err := s.ventaRepo.FindByID(ctx, plan.VentaID); err == nil {
				if venta.Cliente != nil {
					info.cliente = venta.Cliente.NombreCompleto()
				}
				if venta.Terreno != nil {
					info.terreno = codigoLote(venta.Terreno)
				}
			}
			planes[a.PlanPagoID] = info
		}

		dias := finanzas.DiasAtraso(a, info.plan.DiasGracia, hoy)
		mora := finanzas.Mora(a.SaldoPendiente, info.plan.TasaMoraMensual, dias)
		resp.Data = append(resp.Data, dto.CuotaVencidaItem{
			PlanPagoID:         a.PlanPagoID.String(),
			Cliente:            info.cliente,
			Terreno:            info.terreno,
			NumeroAmortizacion: a.NumeroAmortizacion,
			FechaVencimiento:   a.FechaVencimiento.Format(fechaISO),
			SaldoPendiente:     a.SaldoPendiente,
			MoraAcumulada:      mora,
			DiasAtraso:         dias,
		})
		resp.TotalSaldo = resp.TotalSaldo.Add(a.SaldoPendiente)
		resp.TotalMora = resp.TotalMora.Add(mora)
	}
	return resp, nil
}

// ExportVentasExcel renders the filtered sales as an xlsx workbook and
// returns its bytes with a suggested filename.
func (s *reporteService) ExportVentasExcel(ctx context.Context, filter dto.ReporteVentasFilter) ([]byte, string, error) {
	rows, err := s.repo.VentasParaExport(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Ventas"
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"Fecha", "Proyecto", "Manzana", "Lote", "Cliente", "Precio", "Enganche", "Estado", "Tipo de plan"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, h); err != nil {
			return nil, "", err
		}
	}

	for i, r := range rows {
		manzana := ""
		if r.Manzana != nil {
			manzana = *r.Manzana
		}
		tipoPlan := "CONTADO"
		if r.TipoPlan != nil {
			tipoPlan = *r.TipoPlan
		}
		precio, _ := r.PrecioVenta.Float64()
		enganche, _ := r.Enganche.Float64()
		valores := []interface{}{
			r.FechaVenta.Format(fechaISO),
			r.Proyecto,
			manzana,
			r.NumeroLote,
			r.Cliente,
			precio,
			enganche,
			r.Estado,
			tipoPlan,
		}
		for j, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(hoja, celda, v); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	nombre := fmt.Sprintf("ventas_%s.xlsx", time.Now().UTC().Format("20060102"))
	return buf.Bytes(), nombre, nil
}
