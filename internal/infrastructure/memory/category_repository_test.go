package memory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
	"github.com/pt-labs/product-inventory-api/internal/infrastructure/memory"
)

func newCategory(name string) *entity.Category {
	return &entity.Category{ID: uuid.New().String(), Name: name}
}

func TestCategoryRepo_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewCategoryRepository(store)

	c := newCategory("fruit")
	require.NoError(t, repo.Create(c))
	assert.Equal(t, int64(1), c.Version)

	got, err := repo.GetByName("fruit")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	missing, err := repo.GetByName("vegetables")
	require.NoError(t, err)
	assert.Nil(t, missing, "un nombre no almacenado devuelve (nil, nil)")
}

// El nombre de categoría es único: un duplicado falla con ErrDuplicate.
func TestCategoryRepo_NombreDuplicado(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewCategoryRepository(store)

	require.NoError(t, repo.Create(newCategory("fruit")))
	assert.ErrorIs(t, repo.Create(newCategory("fruit")), domain.ErrDuplicate)

	other := newCategory("hardware")
	require.NoError(t, repo.Create(other))
	other.Name = "fruit"
	assert.ErrorIs(t, repo.Update(other), domain.ErrDuplicate)
}

// Mismo protocolo optimista que los productos.
func TestCategoryRepo_ConflictoDeVersion(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewCategoryRepository(store)

	c := newCategory("fruit")
	require.NoError(t, repo.Create(c))

	stale, err := repo.GetByID(c.ID)
	require.NoError(t, err)

	c.Name = "fresh fruit"
	require.NoError(t, repo.Update(c))

	stale.Name = "old fruit"
	assert.ErrorIs(t, repo.Update(stale), domain.ErrConflict)
}

func TestCategoryRepo_ListPagedOrdenYTotal(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewCategoryRepository(store)

	for _, name := range []string{"fruit", "hardware", "books"} {
		require.NoError(t, repo.Create(newCategory(name)))
	}

	page := repository.PageQuery{Number: 0, Size: 2, SortBy: "name", SortDir: repository.SortAsc}
	list, total, err := repo.ListPaged(page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "books", list[0].Name)
	assert.Equal(t, "fruit", list[1].Name)

	_, _, err = repo.ListPaged(repository.PageQuery{Number: 0, Size: 2, SortBy: "price"})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter, "price no es campo de orden de category")
}
