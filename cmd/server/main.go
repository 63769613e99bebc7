package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/config"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/infra"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/router"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker pool and crons are wired here (composition root) so that the
	// background goroutines share the same infrastructure as the API.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	pagoRepo := repository.NewPagoRepository(db)
	planRepo := repository.NewPlanPagoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	amortRepo := repository.NewAmortizacionRepository(db)

	handlers := map[string]worker.JobHandler{
		"recibo": worker.NewReciboWorker(pagoRepo, planRepo, ventaRepo, dispatcher, cfg.PDFStoragePath, cfg.EmpresaNombre),
		"email":  worker.NewEmailWorker(mailer, smtpCB, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	r, deps := router.New(cfg, db, rdb, dispatcher)

	worker.StartRecordatorioCron(ctx, worker.RecordatorioCronConfig{
		AmortizacionRepo: amortRepo,
		PlanRepo:         planRepo,
		VentaRepo:        ventaRepo,
		Apartados:        deps.ApartadoSvc,
		Dispatcher:       dispatcher,
		CB:               smtpCB,
		RDB:              rdb,
		RecordatorioDias: cfg.RecordatorioDias,
		EmpresaNombre:    cfg.EmpresaNombre,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
