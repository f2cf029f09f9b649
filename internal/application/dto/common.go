package dto

import "time"

// PageResponse metadatos de una página de resultados. TotalElements es el
// conteo de filas que satisfacen el filtro, independiente del tamaño pedido.
type PageResponse struct {
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPageResponse calcula los metadatos de página a partir del total filtrado.
func NewPageResponse(number, size int, total int64) PageResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse{
		PageNumber:    number,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// ErrorResponse cuerpo de error uniforme de la API.
type ErrorResponse struct {
	Path      string    `json:"path"`
	Message   string    `json:"message"`
	Error     string    `json:"error"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
