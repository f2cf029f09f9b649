package memory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
	"github.com/pt-labs/product-inventory-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newProduct(name string, price float64, quantity int) *entity.Product {
	return &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: "descripción de " + name,
		Price:       decimal.NewFromFloat(price),
		Quantity:    quantity,
	}
}

func defaultPage() repository.PageQuery {
	return repository.PageQuery{Number: 0, Size: 10, SortBy: "name", SortDir: repository.SortAsc}
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip y versión optimista
// ──────────────────────────────────────────────────────────────────────────────

// Guardar y leer por ID devuelve los mismos campos, con la versión incrementada
// en exactamente 1 respecto al valor previo (0 antes del primer insert).
func TestProductRepo_RoundTripIncrementaVersion(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	p := newProduct("Apple", 25.99, 15)
	require.Equal(t, int64(0), p.Version, "antes del primer insert la versión debe ser 0")
	require.NoError(t, repo.Create(p))
	assert.Equal(t, int64(1), p.Version, "el insert debe dejar la versión en 1")

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Description, got.Description)
	assert.True(t, p.Price.Equal(got.Price), "el precio debe conservarse")
	assert.Equal(t, p.Quantity, got.Quantity)
	assert.Equal(t, int64(1), got.Version)
}

// Cada actualización exitosa incrementa la versión en exactamente 1.
func TestProductRepo_UpdateIncrementaVersion(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	p := newProduct("Pear", 35.00, 10)
	require.NoError(t, repo.Create(p))

	p.Quantity = 7
	require.NoError(t, repo.Update(p))
	assert.Equal(t, int64(2), p.Version)

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, int64(2), got.Version)
}

// Si otro escritor comprometió un cambio entre la carga y el guardado, la
// escritura con versión vieja falla con ErrConflict y no pisa la fila.
func TestProductRepo_EscrituraConVersionViejaFallaConflict(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	p := newProduct("Apple", 25.99, 15)
	require.NoError(t, repo.Create(p))

	// Dos editores cargan la misma fila (versión 1).
	editorA, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	editorB, err := repo.GetByID(p.ID)
	require.NoError(t, err)

	// El editor B gana la carrera.
	editorB.Quantity = 99
	require.NoError(t, repo.Update(editorB))

	// El editor A llega con la versión observada desactualizada.
	editorA.Quantity = 1
	err = repo.Update(editorA)
	require.ErrorIs(t, err, domain.ErrConflict)

	// La fila conserva el resultado del escritor concurrente.
	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, got.Quantity)
	assert.Equal(t, int64(2), got.Version)
}

// Actualizar una fila inexistente es ErrNotFound, no ErrConflict.
func TestProductRepo_UpdateFilaInexistente(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	ghost := newProduct("Ghost", 1.00, 1)
	ghost.Version = 1
	assert.ErrorIs(t, repo.Update(ghost), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un ID inexistente no es error y no altera ninguna fila almacenada.
func TestProductRepo_DeleteInexistenteEsNoOp(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	p := newProduct("Apple", 25.99, 15)
	require.NoError(t, repo.Create(p))

	require.NoError(t, repo.Delete("no-existe"))

	list, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, list, 1, "la fila existente no debe alterarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro, orden y paginación
// ──────────────────────────────────────────────────────────────────────────────

// Con precios [25.99, 35.00, 49.99] y minPrice=30, maxPrice=50 la página trae
// exactamente los dos productos en rango y el total filtrado es 2, sin
// importar el tamaño de página pedido.
func TestProductRepo_FiltroPorRangoDePrecio(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.Create(newProduct("Apple", 25.99, 15)))
	require.NoError(t, repo.Create(newProduct("Pear", 35.00, 10)))
	require.NoError(t, repo.Create(newProduct("Wireless Headphones", 49.99, 1)))

	minPrice := decimal.NewFromFloat(30)
	maxPrice := decimal.NewFromFloat(50)
	filter := repository.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}

	for _, pageSize := range []int{1, 2, 100} {
		page := repository.PageQuery{Number: 0, Size: pageSize, SortBy: "price", SortDir: repository.SortAsc}
		list, total, err := repo.ListPaged(filter, page)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total, "el total debe reflejar el mismo predicado del filtro")
		if pageSize >= 2 {
			require.Len(t, list, 2)
			assert.Equal(t, "Pear", list[0].Name)
			assert.Equal(t, "Wireless Headphones", list[1].Name)
		}
	}
}

// Las cotas de precio son inclusivas.
func TestProductRepo_FiltroCotasInclusivas(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.Create(newProduct("Pear", 35.00, 10)))

	exact := decimal.NewFromFloat(35.00)
	list, total, err := repo.ListPaged(
		repository.ProductFilter{MinPrice: &exact, MaxPrice: &exact},
		defaultPage(),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Pear", list[0].Name)
}

// El filtro por nombre es substring sensible a mayúsculas; un filtro vacío
// equivale a "sin predicado", no a "no coincidir con nada".
func TestProductRepo_FiltroPorNombre(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.Create(newProduct("Apple", 25.99, 15)))
	require.NoError(t, repo.Create(newProduct("Pineapple", 30.00, 5)))
	require.NoError(t, repo.Create(newProduct("Pear", 35.00, 10)))

	_, total, err := repo.ListPaged(repository.ProductFilter{Name: "apple"}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "la coincidencia es sensible a mayúsculas")

	_, total, err = repo.ListPaged(repository.ProductFilter{Name: "pple"}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.ListPaged(repository.ProductFilter{}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "sin filtros se empareja todo")
}

// Un número de página más allá del final produce página vacía, no error, y el
// total sigue siendo el del predicado.
func TestProductRepo_PaginaFueraDeRango(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.Create(newProduct("Apple", 25.99, 15)))
	require.NoError(t, repo.Create(newProduct("Pear", 35.00, 10)))

	page := repository.PageQuery{Number: 5, Size: 10, SortBy: "name", SortDir: repository.SortAsc}
	list, total, err := repo.ListPaged(repository.ProductFilter{}, page)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(2), total)
}

// Un campo de orden desconocido falla con ErrInvalidParameter sin leer filas.
func TestProductRepo_CampoDeOrdenDesconocido(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	page := repository.PageQuery{Number: 0, Size: 10, SortBy: "nonexistentField", SortDir: repository.SortAsc}
	_, _, err := repo.ListPaged(repository.ProductFilter{}, page)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

// Orden descendente por precio.
func TestProductRepo_OrdenDescendente(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.Create(newProduct("Apple", 25.99, 15)))
	require.NoError(t, repo.Create(newProduct("Pear", 35.00, 10)))
	require.NoError(t, repo.Create(newProduct("Wireless Headphones", 49.99, 1)))

	page := repository.PageQuery{Number: 0, Size: 10, SortBy: "price", SortDir: repository.SortDesc}
	list, _, err := repo.ListPaged(repository.ProductFilter{}, page)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Wireless Headphones", list[0].Name)
	assert.Equal(t, "Apple", list[2].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Referencia a categoría
// ──────────────────────────────────────────────────────────────────────────────

// Crear un producto con categoría inexistente viola la integridad referencial.
func TestProductRepo_CreateConCategoriaInexistente(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	p := newProduct("Apple", 25.99, 15)
	ghost := uuid.New().String()
	p.CategoryID = &ghost
	assert.ErrorIs(t, repo.Create(p), domain.ErrNotFound)
}
