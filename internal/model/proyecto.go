package model

import (
	"time"

	"github.com/google/uuid"
)

// Proyecto is a land development holding sellable terrenos.
// Estado: "ACTIVO" | "PAUSADO" | "TERMINADO"
type Proyecto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"type:varchar(150);not null"`
	Descripcion  *string   `gorm:"type:text"`
	Direccion    *string   `gorm:"type:varchar(250)"`
	Ciudad       *string   `gorm:"type:varchar(100)"`
	Estado       string    `gorm:"type:varchar(20);not null;default:'ACTIVO'"`
	CodigoPostal *string   `gorm:"type:varchar(10)"`

	// Cached counters, refreshed whenever a terreno changes state.
	TotalTerrenos       int `gorm:"not null;default:0"`
	TerrenosDisponibles int `gorm:"not null;default:0"`
	TerrenosApartados   int `gorm:"not null;default:0"`
	TerrenosVendidos    int `gorm:"not null;default:0"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Proyecto) TableName() string { return "proyectos" }
