package infra

import (
	"fmt"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create or update all tables, then applies the idempotent SQL patches
// that GORM cannot express (partial indexes mainly).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Proyecto{},
		&model.Terreno{},
		&model.Cliente{},
		&model.Cotizacion{},
		&model.Apartado{},
		&model.Venta{},
		&model.PlanPago{},
		&model.Amortizacion{},
		&model.Pago{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the overdue-installment scans. Only open rows
		// matter there and they are a shrinking minority of the table.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_amortizaciones_pendientes') THEN
		    CREATE INDEX idx_amortizaciones_pendientes
		        ON amortizaciones (fecha_vencimiento)
		        WHERE estado = 'PENDIENTE';
		  END IF;
		END $$`,
		// One vigente apartado per terreno at a time.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_apartados_terreno_vigente') THEN
		    CREATE UNIQUE INDEX idx_apartados_terreno_vigente
		        ON apartados (terreno_id)
		        WHERE estado = 'VIGENTE';
		  END IF;
		END $$`,
		// One active plan per venta.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_planes_pago_venta_activo') THEN
		    CREATE UNIQUE INDEX idx_planes_pago_venta_activo
		        ON planes_pago (venta_id)
		        WHERE activo = true;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the schema for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Proyecto{},
		&model.Terreno{},
		&model.Cliente{},
		&model.Cotizacion{},
		&model.Apartado{},
		&model.Venta{},
		&model.PlanPago{},
		&model.Amortizacion{},
		&model.Pago{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
