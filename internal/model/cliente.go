package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente estados
const (
	ClienteProspecto = "PROSPECTO"
	ClienteActivo    = "ACTIVO"
	ClienteInactivo  = "INACTIVO"
)

type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"type:varchar(100);not null"`
	Apellido      string    `gorm:"type:varchar(100);not null"`
	Email         *string   `gorm:"type:varchar(120)"`
	Telefono      *string   `gorm:"type:varchar(20)"`
	Direccion     *string   `gorm:"type:varchar(250)"`
	Ciudad        *string   `gorm:"type:varchar(100)"`
	RFC           *string   `gorm:"type:varchar(15);column:rfc"`
	EstadoCliente string    `gorm:"type:varchar(20);not null;default:'PROSPECTO'"`
	Notas         *string   `gorm:"type:text"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }

// NombreCompleto returns "Nombre Apellido" for display and documents.
func (c *Cliente) NombreCompleto() string {
	return c.Nombre + " " + c.Apellido
}
