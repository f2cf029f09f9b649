package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. CategoryID es la referencia
// autoritativa de la relación producto↔categoría (nil = sin categoría).
// Version es el contador de bloqueo optimista: inicia en 0 y cada escritura
// exitosa lo incrementa en exactamente 1.
type Product struct {
	ID          string
	Name        string          `validate:"required"`
	Description string          `validate:"required"`
	Price       decimal.Decimal `validate:"gte=0"`
	Quantity    int             `validate:"gte=0"`
	CategoryID  *string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
