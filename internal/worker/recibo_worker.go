package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibos: renders the payment receipt
// PDF and, when the cliente has an email on file, enqueues the email job
// that delivers it.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/infra"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	PagoID string `json:"pago_id"`
}

type ReciboWorker struct {
	pagoRepo       repository.PagoRepository
	planRepo       repository.PlanPagoRepository
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	empresaNombre  string
}

func NewReciboWorker(
	pagoRepo repository.PagoRepository,
	planRepo repository.PlanPagoRepository,
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	empresaNombre string,
) *ReciboWorker {
	return &ReciboWorker{
		pagoRepo:       pagoRepo,
		planRepo:       planRepo,
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		empresaNombre:  empresaNombre,
	}
}

// Process renders the receipt and hands delivery to the email queue.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}
	pagoID, err := uuid.Parse(payload.PagoID)
	if err != nil {
		log.Error().Str("pago_id", payload.PagoID).Msg("recibo_worker: invalid pago_id")
		return
	}

	pago, err := w.pagoRepo.FindByID(ctx, pagoID)
	if err != nil {
		log.Error().Err(err).Str("pago_id", payload.PagoID).Msg("recibo_worker: pago not found")
		return
	}
	plan, err := w.planRepo.FindByID(ctx, pago.PlanPagoID)
	if err != nil {
		log.Error().Err(err).Str("pago_id", payload.PagoID).Msg("recibo_worker: plan not found")
		return
	}

	datos := infra.ReciboDatos{
		Empresa:        w.empresaNombre,
		SaldoPendiente: plan.TotalPendiente.StringFixed(2),
	}
	var clienteEmail *string
	if venta, err := w.ventaRepo.FindByID(ctx, plan.VentaID); err == nil {
		if venta.Cliente != nil {
			datos.Cliente = venta.Cliente.NombreCompleto()
			clienteEmail = venta.Cliente.Email
		}
		if venta.Terreno != nil {
			datos.Terreno = venta.Terreno.NumeroLote
			if venta.Terreno.Manzana != nil {
				datos.Terreno = fmt.Sprintf("M%s-L%s", *venta.Terreno.Manzana, venta.Terreno.NumeroLote)
			}
			if venta.Terreno.Proyecto != nil {
				datos.Proyecto = venta.Terreno.Proyecto.Nombre
			}
		}
	}

	pdfPath, err := infra.GenerateReciboPDF(pago, datos, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("pago_id", payload.PagoID).Msg("recibo_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("pago_id", payload.PagoID).Msg("recibo_worker: PDF generated")

	if clienteEmail == nil || *clienteEmail == "" {
		log.Debug().Str("pago_id", payload.PagoID).Msg("recibo_worker: cliente has no email, skipping delivery")
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: *clienteEmail,
		Subject: fmt.Sprintf("%s — Recibo de pago %s", w.empresaNombre, pago.FechaPago.Format("02/01/2006")),
		Body: fmt.Sprintf("Estimado/a %s:\n\nAdjunto encontrara el recibo de su pago por $%s.\nSaldo pendiente del plan: $%s.\n\nGracias por su pago.",
			datos.Cliente, pago.MontoPagado.StringFixed(2), plan.TotalPendiente.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *clienteEmail).Msg("recibo_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", *clienteEmail).Msg("recibo_worker: email job enqueued")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
