package worker

// recordatorio_cron.go
// Background goroutine that ticks hourly to run the two date-driven
// housekeeping tasks: reminder emails for installments about to fall due
// and the sweep that expires overdue apartados. A Redis SETNX key keeps
// each reminder to one email per installment per day.

import (
	"context"
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/infra"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const recordatorioTickInterval = time.Hour

// ApartadoSweeper expires overdue reservations. Implemented by the
// apartado service; declared here to keep the dependency pointing inward.
type ApartadoSweeper interface {
	CancelarVencidos(ctx context.Context) (int, error)
}

// RecordatorioCronConfig holds all dependencies for the cron goroutine.
type RecordatorioCronConfig struct {
	AmortizacionRepo repository.AmortizacionRepository
	PlanRepo         repository.PlanPagoRepository
	VentaRepo        repository.VentaRepository
	Apartados        ApartadoSweeper
	Dispatcher       *Dispatcher
	CB               *infra.CircuitBreaker
	RDB              *redis.Client
	RecordatorioDias int
	EmpresaNombre    string
}

// StartRecordatorioCron launches the hourly housekeeping goroutine. It
// respects the context for graceful shutdown.
func StartRecordatorioCron(ctx context.Context, cfg RecordatorioCronConfig) {
	go func() {
		ticker := time.NewTicker(recordatorioTickInterval)
		defer ticker.Stop()

		log.Info().Msg("recordatorio_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recordatorio_cron: shutting down")
				return
			case <-ticker.C:
				runTick(ctx, cfg)
			}
		}
	}()
}

func runTick(ctx context.Context, cfg RecordatorioCronConfig) {
	if n, err := cfg.Apartados.CancelarVencidos(ctx); err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: apartado sweep failed")
	} else if n > 0 {
		log.Info().Int("count", n).Msg("recordatorio_cron: apartados vencidos cancelados")
	}

	enviarRecordatorios(ctx, cfg)
}

func enviarRecordatorios(ctx context.Context, cfg RecordatorioCronConfig) {
	// If the SMTP breaker is open there is no point queueing more email.
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("recordatorio_cron: circuit breaker is open, skipping reminders")
		return
	}

	hoy := time.Now().UTC()
	hasta := hoy.AddDate(0, 0, cfg.RecordatorioDias)
	rows, err := cfg.AmortizacionRepo.ListPorVencer(ctx, hoy, hasta)
	if err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: failed to query upcoming installments")
		return
	}
	if len(rows) == 0 {
		return
	}

	for i := range rows {
		a := &rows[i]

		// One reminder per installment per day.
		key := fmt.Sprintf("recordatorio:%s:%s", a.ID, hoy.Format("2006-01-02"))
		ok, err := cfg.RDB.SetNX(ctx, key, 1, 26*time.Hour).Result()
		if err != nil || !ok {
			continue
		}

		plan, err := cfg.PlanRepo.FindByID(ctx, a.PlanPagoID)
		if err != nil || !plan.Activo {
			continue
		}
		venta, err := cfg.VentaRepo.FindByID(ctx, plan.VentaID)
		if err != nil || venta.Cliente == nil || venta.Cliente.Email == nil || *venta.Cliente.Email == "" {
			continue
		}

		emailJob := EmailJobPayload{
			ToEmail: *venta.Cliente.Email,
			Subject: fmt.Sprintf("%s — Recordatorio de pago", cfg.EmpresaNombre),
			Body: fmt.Sprintf("Estimado/a %s:\n\nLe recordamos que su cuota %d por $%s vence el %s.\n\nSaludos.",
				venta.Cliente.NombreCompleto(), a.NumeroAmortizacion,
				a.SaldoPendiente.StringFixed(2), a.FechaVencimiento.Format("02/01/2006")),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("amortizacion_id", a.ID.String()).Msg("recordatorio_cron: failed to enqueue reminder")
			continue
		}
		log.Info().
			Str("email", *venta.Cliente.Email).
			Int("cuota", a.NumeroAmortizacion).
			Msg("recordatorio_cron: reminder enqueued")
	}
}
