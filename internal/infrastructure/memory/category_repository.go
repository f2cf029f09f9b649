package memory

import (
	"fmt"
	"sort"

	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository. Dentro de una
// transacción lleva la bitácora de deshacer; fuera de ella journal es nil.
type CategoryRepo struct {
	store   *Store
	journal *txJournal
}

// NewCategoryRepository construye el adaptador sobre el almacén compartido.
func NewCategoryRepository(store *Store) *CategoryRepo {
	return &CategoryRepo{store: store}
}

// record anota el estado previo de la fila si hay transacción en curso.
// El llamador sostiene store.mu en escritura.
func (r *CategoryRepo) record(id string) {
	if r.journal != nil {
		r.journal.recordCategory(r.store, id)
	}
}

// Create persiste una nueva categoría con versión 1. El nombre es único.
func (r *CategoryRepo) Create(category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range r.store.categories {
		if c.Name == category.Name {
			return fmt.Errorf("%w: category con nombre %q", domain.ErrDuplicate, category.Name)
		}
	}
	category.Version = 1
	r.record(category.ID)
	r.store.categories[category.ID] = *category
	return nil
}

// GetByID obtiene una categoría por ID. Retorna (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

// GetByName obtiene una categoría por nombre exacto. Retorna (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.categories {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

// Update aplica compare-and-swap sobre Version, con unicidad de nombre.
func (r *CategoryRepo) Update(category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.categories[category.ID]
	if !ok {
		return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, category.ID)
	}
	if stored.Version != category.Version {
		return domain.ErrConflict
	}
	for id, c := range r.store.categories {
		if id != category.ID && c.Name == category.Name {
			return fmt.Errorf("%w: category con nombre %q", domain.ErrDuplicate, category.Name)
		}
	}
	category.Version++
	r.record(category.ID)
	r.store.categories[category.ID] = *category
	return nil
}

// List lista todas las categorías.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		out := c
		list = append(list, &out)
	}
	return list, nil
}

// ListPaged lista categorías ordenadas y paginadas, junto al total de filas.
func (r *CategoryRepo) ListPaged(page repository.PageQuery) ([]*entity.Category, int64, error) {
	if _, err := repository.CategorySortColumn(page.SortBy); err != nil {
		return nil, 0, err
	}

	r.store.mu.RLock()
	matched := make([]entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		matched = append(matched, c)
	}
	r.store.mu.RUnlock()

	less := func(i, j int) bool {
		switch page.SortBy {
		case "id":
			return matched[i].ID < matched[j].ID
		case "version":
			return matched[i].Version < matched[j].Version
		default:
			return matched[i].Name < matched[j].Name
		}
	}
	if page.SortDir == repository.SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(matched, less)

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]*entity.Category, 0, end-start)
	for i := start; i < end; i++ {
		c := matched[i]
		out = append(out, &c)
	}
	return out, total, nil
}

// Delete elimina la fila de la categoría; la cascada la orquesta el caso de uso.
func (r *CategoryRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.record(id)
	delete(r.store.categories, id)
	return nil
}
