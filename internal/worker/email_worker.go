package worker

// email_worker.go
// Processes email jobs from QueueEmail. Delivery goes through the SMTP
// circuit breaker with exponential backoff; jobs that exhaust their
// retries land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const emailMaxAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

// Process sends one email, PDF attached when present.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return
	}

	sendErr := withRetry(ctx, emailMaxAttempts, func(attempt int) error {
		err := w.cb.Execute(func() error {
			return w.mailer.SendDocumento(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		})
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.ToEmail).
				Msg("email_worker: send attempt failed")
		}
		return err
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Msg("email_worker: failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", emailMaxAttempts, sendErr),
			emailMaxAttempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent successfully")
}
