package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest datos para crear un producto. CategoryID es opcional:
// un producto puede nacer sin categoría.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  *string         `json:"categoryId"`
}

// UpdateProductRequest datos para actualizar un producto. Los campos escalares
// sobrescriben; CategoryID es estructuralmente requerido en la actualización
// (su ausencia es un error, no un "dejar igual").
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  *string         `json:"categoryId"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductPageResponse página de productos.
type ProductPageResponse struct {
	Content []ProductResponse `json:"content"`
	Page    PageResponse      `json:"page"`
}
