package model

import (
	"time"

	"github.com/google/uuid"
)

// Compra is a purchase header. CodCompra is generated server-side, unique and
// immutable after creation; the unique index is the correctness backstop for
// the code generator.
type Compra struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CodCompra   string    `gorm:"uniqueIndex;not null"`
	ClienteID   uuid.UUID `gorm:"type:uuid;index;not null"`
	FechaCompra time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente  *Cliente        `gorm:"foreignKey:ClienteID"`
	Detalles []CompraDetalle `gorm:"foreignKey:CompraID"`
}

// CompraDetalle is one product+quantity line of a purchase. Lines are created
// only inside their parent's transaction; a Compra with zero lines is never
// persisted. NumeroLinea preserves submission order for deterministic reports.
type CompraDetalle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompraID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Cantidad    int       `gorm:"not null"`
	NumeroLinea int       `gorm:"not null"`
	CreatedAt   time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
