package repository

import "github.com/pt-labs/product-inventory-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create asigna versión 1; Update es compare-and-swap sobre Version y retorna
// domain.ErrConflict si otro escritor ganó, domain.ErrNotFound si la fila ya
// no existe. GetBy* retornan (nil, nil) cuando no hay fila; el caso de uso
// decide si eso es un ErrNotFound.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	List() ([]*entity.Product, error)
	ListPaged(filter ProductFilter, page PageQuery) ([]*entity.Product, int64, error)
	ListByCategory(categoryID string) ([]*entity.Product, error)
	ListByIDs(ids []string) ([]*entity.Product, error)
	Delete(id string) error
	DeleteByCategory(categoryID string) error
}
