package repository

import "github.com/pt-labs/product-inventory-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Mismas convenciones que ProductRepository: versión optimista en Update,
// (nil, nil) cuando no hay fila. Name tiene unicidad dura: Create/Update
// retornan domain.ErrDuplicate ante un nombre repetido.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List() ([]*entity.Category, error)
	ListPaged(page PageQuery) ([]*entity.Category, int64, error)
	Delete(id string) error
}
