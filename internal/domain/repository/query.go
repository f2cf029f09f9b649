package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/pt-labs/product-inventory-api/internal/domain"
)

// SortDirection dirección de ordenamiento para consultas paginadas.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ProductFilter filtros opcionales para la búsqueda paginada de productos.
// Un campo nil/vacío no aplica; los presentes se combinan con AND lógico.
// Name es coincidencia por substring (sensible a mayúsculas); los precios
// son cotas inclusivas.
type ProductFilter struct {
	Name     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// PageQuery describe la página solicitada: número base cero, tamaño >= 1,
// un único campo de orden y su dirección.
type PageQuery struct {
	Number  int
	Size    int
	SortBy  string
	SortDir SortDirection
}

// Offset filas a saltar al inicio del resultado.
func (q PageQuery) Offset() int {
	return q.Number * q.Size
}

// Columnas permitidas como criterio de orden por entidad. La validación ocurre
// antes de tocar el almacenamiento: un campo desconocido es ErrInvalidParameter.
var (
	productSortColumns = map[string]string{
		"id":          "id",
		"name":        "name",
		"description": "description",
		"price":       "price",
		"quantity":    "quantity",
		"version":     "version",
	}
	categorySortColumns = map[string]string{
		"id":      "id",
		"name":    "name",
		"version": "version",
	}
)

// ProductSortColumn traduce el campo de orden solicitado a columna permitida.
func ProductSortColumn(field string) (string, error) {
	col, ok := productSortColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: campo de orden desconocido para product: %s", domain.ErrInvalidParameter, field)
	}
	return col, nil
}

// CategorySortColumn traduce el campo de orden solicitado a columna permitida.
func CategorySortColumn(field string) (string, error) {
	col, ok := categorySortColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: campo de orden desconocido para category: %s", domain.ErrInvalidParameter, field)
	}
	return col, nil
}
