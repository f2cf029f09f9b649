package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository. Dentro de una
// transacción lleva la bitácora de deshacer; fuera de ella journal es nil.
type ProductRepo struct {
	store   *Store
	journal *txJournal
}

// NewProductRepository construye el adaptador sobre el almacén compartido.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// record anota el estado previo de la fila si hay transacción en curso.
// El llamador sostiene store.mu en escritura.
func (r *ProductRepo) record(id string) {
	if r.journal != nil {
		r.journal.recordProduct(r.store, id)
	}
}

// Create persiste un nuevo producto con versión 1. La referencia a categoría
// debe resolver, igual que la llave foránea del driver PostgreSQL.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if product.CategoryID != nil {
		if _, ok := r.store.categories[*product.CategoryID]; !ok {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, *product.CategoryID)
		}
	}
	product.Version = 1
	r.record(product.ID)
	r.store.products[product.ID] = cloneProduct(*product)
	return nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	out := cloneProduct(p)
	return &out, nil
}

// GetByName obtiene un producto por nombre exacto. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.Name == name {
			out := cloneProduct(p)
			return &out, nil
		}
	}
	return nil, nil
}

// Update aplica compare-and-swap sobre Version: domain.ErrConflict si la
// versión almacenada ya no es la observada, domain.ErrNotFound si la fila no existe.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.products[product.ID]
	if !ok {
		return fmt.Errorf("%w: product con id %s", domain.ErrNotFound, product.ID)
	}
	if stored.Version != product.Version {
		return domain.ErrConflict
	}
	if product.CategoryID != nil {
		if _, ok := r.store.categories[*product.CategoryID]; !ok {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, *product.CategoryID)
		}
	}
	product.Version++
	r.record(product.ID)
	r.store.products[product.ID] = cloneProduct(*product)
	return nil
}

// List lista todos los productos.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out := cloneProduct(p)
		list = append(list, &out)
	}
	return list, nil
}

// ListPaged aplica la conjunción de filtros presentes, ordena por el único
// campo permitido y recorta la página. El total refleja el MISMO predicado.
func (r *ProductRepo) ListPaged(filter repository.ProductFilter, page repository.PageQuery) ([]*entity.Product, int64, error) {
	if _, err := repository.ProductSortColumn(page.SortBy); err != nil {
		return nil, 0, err
	}

	r.store.mu.RLock()
	matched := make([]entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if filter.Name != "" && !strings.Contains(p.Name, filter.Name) {
			continue
		}
		if filter.MinPrice != nil && p.Price.Cmp(*filter.MinPrice) < 0 {
			continue
		}
		if filter.MaxPrice != nil && p.Price.Cmp(*filter.MaxPrice) > 0 {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	r.store.mu.RUnlock()

	sortProducts(matched, page.SortBy, page.SortDir)

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]*entity.Product, 0, end-start)
	for i := start; i < end; i++ {
		p := matched[i]
		out = append(out, &p)
	}
	return out, total, nil
}

// ListByCategory lista los productos de una categoría, ordenados por nombre.
func (r *ProductRepo) ListByCategory(categoryID string) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var list []*entity.Product
	for _, p := range r.store.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out := cloneProduct(p)
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ListByIDs lista los productos cuyos IDs estén en el conjunto dado.
func (r *ProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var list []*entity.Product
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out := cloneProduct(p)
			list = append(list, &out)
		}
	}
	return list, nil
}

// Delete elimina un producto por ID. Eliminar un ID inexistente no es error.
func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.record(id)
	delete(r.store.products, id)
	return nil
}

// DeleteByCategory elimina los productos de una categoría.
func (r *ProductRepo) DeleteByCategory(categoryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, p := range r.store.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			r.record(id)
			delete(r.store.products, id)
		}
	}
	return nil
}

func sortProducts(list []entity.Product, sortBy string, dir repository.SortDirection) {
	less := func(i, j int) bool {
		switch sortBy {
		case "id":
			return list[i].ID < list[j].ID
		case "description":
			return list[i].Description < list[j].Description
		case "price":
			return list[i].Price.Cmp(list[j].Price) < 0
		case "quantity":
			return list[i].Quantity < list[j].Quantity
		case "version":
			return list[i].Version < list[j].Version
		default:
			return list[i].Name < list[j].Name
		}
	}
	if dir == repository.SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(list, less)
}
