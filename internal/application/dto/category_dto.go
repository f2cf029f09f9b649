package dto

import "time"

// CreateCategoryRequest datos para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest datos para actualizar una categoría. Si ProductIDs
// viene no vacío, la membresía de la categoría se reemplaza por exactamente
// ese conjunto (reasignación destructiva, no incremental).
type UpdateCategoryRequest struct {
	Name       string   `json:"name"`
	ProductIDs []string `json:"productIds"`
}

// CategoryResponse representación de salida de una categoría. Products se
// reconstruye en cada lectura desde la referencia autoritativa de cada producto.
type CategoryResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Products  []ProductResponse `json:"products"`
	Version   int64             `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CategoryPageResponse página de categorías.
type CategoryPageResponse struct {
	Content []CategoryResponse `json:"content"`
	Page    PageResponse       `json:"page"`
}
