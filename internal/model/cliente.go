package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a registered buyer, identified by their national document.
// Nombre/apellidos are filled from the RENIEC lookup when TipoDocumento is DNI.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DNI           string    `gorm:"uniqueIndex;not null;column:dni"`
	TipoDocumento string    `gorm:"not null;default:'DNI'"`
	Nombre        string    `gorm:"not null"`
	ApellidoPat   string    `gorm:"not null"`
	ApellidoMat   string
	Telefono      *string
	Direccion     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
