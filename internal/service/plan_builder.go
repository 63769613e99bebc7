package service

import (
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/dto"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/finanzas"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// construirPlan builds the PlanPago aggregate and its amortization table
// from the financing terms of a new venta. Nothing is persisted here; the
// caller creates both inside its transaction.
func construirPlan(ventaID uuid.UUID, clienteID uuid.UUID, precioVenta, enganche decimal.Decimal, fechaVenta time.Time, terms *dto.CrearPlanPagoTerminos) (*model.PlanPago, []model.Amortizacion, error) {
	fechaPrimerPago, err := time.Parse(fechaISO, terms.FechaPrimerPago)
	if err != nil {
		return nil, nil, fmt.Errorf("fecha_primer_pago invalida: %w", err)
	}

	montoFinanciado := precioVenta.Sub(enganche)
	if montoFinanciado.IsNegative() {
		return nil, nil, fmt.Errorf("%w: enganche mayor al precio de venta", finanzas.ErrTerminosInvalidos)
	}

	tasaMensual := decimal.Zero
	if terms.AplicaInteres {
		tasaMensual = finanzas.TasaMensualDesdeAnual(terms.TasaInteresAnual)
	}

	cid := clienteID
	plan := &model.PlanPago{
		VentaID:            ventaID,
		ClienteID:          &cid,
		TipoPlan:           terms.TipoPlan,
		FrecuenciaPago:     terms.FrecuenciaPago,
		MontoTotal:         precioVenta,
		Enganche:           enganche,
		MontoFinanciado:    montoFinanciado,
		AplicaInteres:      terms.AplicaInteres,
		TasaInteresAnual:   terms.TasaInteresAnual,
		TasaInteresMensual: tasaMensual,
		TasaMoraMensual:    terms.TasaMoraMensual,
		DiasGracia:         terms.DiasGracia,
		NumeroPagos:        terms.NumeroPagos,
		PlazoMeses:         finanzas.PlazoMeses(terms.NumeroPagos, terms.FrecuenciaPago),
		FechaInicio:        fechaVenta,
		FechaPrimerPago:    fechaPrimerPago,
		FechaUltimoPago:    finanzas.FechaUltimoPago(fechaPrimerPago, terms.NumeroPagos, terms.FrecuenciaPago),
		Notas:              terms.Notas,
		TotalPendiente:     montoFinanciado,
		Activo:             true,
	}
	plan.AmortizacionesPendientes = terms.NumeroPagos

	tabla, err := finanzas.GenerarTabla(plan)
	if err != nil {
		return nil, nil, err
	}
	return plan, tabla, nil
}

func planToResponse(p *model.PlanPago, rows []*model.Amortizacion, hoy time.Time) *dto.PlanPagoResponse {
	var clienteID *string
	if p.ClienteID != nil {
		s := p.ClienteID.String()
		clienteID = &s
	}
	resp := &dto.PlanPagoResponse{
		ID:                       p.ID.String(),
		VentaID:                  p.VentaID.String(),
		ClienteID:                clienteID,
		TipoPlan:                 p.TipoPlan,
		FrecuenciaPago:           p.FrecuenciaPago,
		MontoTotal:               p.MontoTotal,
		Enganche:                 p.Enganche,
		MontoFinanciado:          p.MontoFinanciado,
		AplicaInteres:            p.AplicaInteres,
		TasaInteresAnual:         p.TasaInteresAnual,
		TasaInteresMensual:       p.TasaInteresMensual,
		TasaMoraMensual:          p.TasaMoraMensual,
		DiasGracia:               p.DiasGracia,
		NumeroPagos:              p.NumeroPagos,
		PlazoMeses:               p.PlazoMeses,
		FechaInicio:              p.FechaInicio.Format(fechaISO),
		FechaPrimerPago:          p.FechaPrimerPago.Format(fechaISO),
		FechaUltimoPago:          p.FechaUltimoPago.Format(fechaISO),
		TotalPagado:              p.TotalPagado,
		TotalPendiente:           p.TotalPendiente,
		AmortizacionesPagadas:    p.AmortizacionesPagadas,
		AmortizacionesPendientes: p.AmortizacionesPendientes,
		AmortizacionesVencidas:   p.AmortizacionesVencidas,
		PorcentajeAvance:         p.PorcentajeAvance,
		Notas:                    p.Notas,
		CreatedAt:                p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, a := range rows {
		resp.Tabla = append(resp.Tabla, *amortizacionToResponse(a, p.DiasGracia, hoy))
	}
	return resp
}

func amortizacionToResponse(a *model.Amortizacion, diasGracia int, hoy time.Time) *dto.AmortizacionResponse {
	var fechaPago *string
	if a.FechaPago != nil {
		s := a.FechaPago.Format(fechaISO)
		fechaPago = &s
	}
	return &dto.AmortizacionResponse{
		ID:                 a.ID.String(),
		NumeroAmortizacion: a.NumeroAmortizacion,
		FechaVencimiento:   a.FechaVencimiento.Format(fechaISO),
		MontoCapital:       a.MontoCapital,
		MontoInteres:       a.MontoInteres,
		MontoTotal:         a.MontoTotal,
		MontoPagado:        a.MontoPagado,
		SaldoPendiente:     a.SaldoPendiente,
		SaldoRestante:      a.SaldoRestante,
		MoraAcumulada:      a.MoraAcumulada,
		DiasAtraso:         finanzas.DiasAtraso(a, diasGracia, hoy),
		FechaPago:          fechaPago,
		Estado:             finanzas.EstadoActual(a, diasGracia, hoy),
		Notas:              a.Notas,
	}
}
