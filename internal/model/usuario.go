package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "vendedor" | "supervisor" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Nombre       string    `gorm:"type:varchar(120);not null"`
	Email        *string   `gorm:"type:varchar(120)"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	Rol          string    `gorm:"type:varchar(20);not null"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
