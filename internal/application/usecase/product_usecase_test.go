package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt-labs/product-inventory-api/internal/application/dto"
	"github.com/pt-labs/product-inventory-api/internal/application/usecase"
	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
	"github.com/pt-labs/product-inventory-api/internal/infrastructure/memory"
	"github.com/pt-labs/product-inventory-api/internal/validator"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	productUC  *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
	store      *memory.Store
}

func newFixture() *fixture {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	categories := memory.NewCategoryRepository(store)
	tx := memory.NewTxRunner(store)
	v := validator.New()
	log := zerolog.Nop()

	return &fixture{
		productUC:  usecase.NewProductUseCase(products, categories, tx, v, log),
		categoryUC: usecase.NewCategoryUseCase(categories, products, tx, v, log),
		store:      store,
	}
}

func (f *fixture) mustCreateCategory(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	out, err := f.categoryUC.Create(dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return out
}

func (f *fixture) mustCreateProduct(t *testing.T, name string, price float64, quantity int, categoryID *string) *dto.ProductResponse {
	t.Helper()
	out, err := f.productUC.Create(dto.CreateProductRequest{
		Name:        name,
		Description: "descripción de " + name,
		Price:       decimal.NewFromFloat(price),
		Quantity:    quantity,
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return out
}

func productNames(items []dto.ProductResponse) []string {
	names := make([]string, 0, len(items))
	for _, p := range items {
		names = append(names, p.Name)
	}
	return names
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario extremo a extremo e invariante bidireccional
// ──────────────────────────────────────────────────────────────────────────────

// Crear categoría "fruit", crear "Apple" sin categoría, asociarlos: buscar
// "fruit" por nombre debe incluir "Apple", y "Apple" por ID debe reportar
// categoría "fruit".
func TestProductUseCase_EscenarioAsociacionCompleto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fruit := f.mustCreateCategory(t, "fruit")
	apple := f.mustCreateProduct(t, "Apple", 25.99, 15, nil)
	assert.Nil(t, apple.CategoryID, "el producto nace sin categoría")

	require.NoError(t, f.productUC.AddCategoryToProduct(ctx, fruit.ID, apple.ID))

	gotCategory, err := f.categoryUC.FindByName("fruit")
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple"}, productNames(gotCategory.Products))

	gotProduct, err := f.productUC.FindByID(apple.ID)
	require.NoError(t, err)
	require.NotNil(t, gotProduct.CategoryID)
	assert.Equal(t, fruit.ID, *gotProduct.CategoryID)
	assert.Equal(t, "fruit", gotProduct.CategoryName)
}

// Tras desasociar, ningún lado conserva la relación.
func TestProductUseCase_RemoveCategoryRestableceAmbosLados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fruit := f.mustCreateCategory(t, "fruit")
	apple := f.mustCreateProduct(t, "Apple", 25.99, 15, &fruit.ID)

	require.NoError(t, f.productUC.RemoveCategoryFromProduct(ctx, fruit.ID, apple.ID))

	gotCategory, err := f.categoryUC.FindByID(fruit.ID)
	require.NoError(t, err)
	assert.Empty(t, gotCategory.Products)

	gotProduct, err := f.productUC.FindByID(apple.ID)
	require.NoError(t, err)
	assert.Nil(t, gotProduct.CategoryID)
	assert.Empty(t, gotProduct.CategoryName)
}

// Cualquier ID que no resuelva falla la operación completa con NotFound.
func TestProductUseCase_AsociacionConIDsInexistentes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fruit := f.mustCreateCategory(t, "fruit")
	apple := f.mustCreateProduct(t, "Apple", 25.99, 15, nil)

	assert.ErrorIs(t, f.productUC.AddCategoryToProduct(ctx, "no-existe", apple.ID), domain.ErrNotFound)
	assert.ErrorIs(t, f.productUC.AddCategoryToProduct(ctx, fruit.ID, "no-existe"), domain.ErrNotFound)
	assert.ErrorIs(t, f.productUC.RemoveCategoryFromProduct(ctx, "no-existe", apple.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// La actualización sin categoryId se rechaza: un producto solo puede quedar
// sin categoría en la creación o vía la desasociación explícita.
func TestProductUseCase_UpdateSinCategoriaEsError(t *testing.T) {
	f := newFixture()

	fruit := f.mustCreateCategory(t, "fruit")
	apple := f.mustCreateProduct(t, "Apple", 25.99, 15, &fruit.ID)

	_, err := f.productUC.Update(context.Background(), apple.ID, dto.UpdateProductRequest{
		Name:        "Apple",
		Description: "actualizada",
		Price:       decimal.NewFromFloat(26.50),
		Quantity:    12,
		CategoryID:  nil,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Mover un producto a otra categoría preserva el invariante en ambos lados.
func TestProductUseCase_UpdateMueveDeCategoria(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fruit := f.mustCreateCategory(t, "fruit")
	hardware := f.mustCreateCategory(t, "hardware")
	apple := f.mustCreateProduct(t, "Apple", 25.99, 15, &fruit.ID)

	out, err := f.productUC.Update(ctx, apple.ID, dto.UpdateProductRequest{
		Name:        "Apple",
		Description: "reclasificada",
		Price:       decimal.NewFromFloat(25.99),
		Quantity:    15,
		CategoryID:  &hardware.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "hardware", out.CategoryName)
	assert.Equal(t, int64(2), out.Version, "la escritura debe incrementar la versión en 1")

	gotFruit, err := f.categoryUC.FindByID(fruit.ID)
	require.NoError(t, err)
	assert.Empty(t, gotFruit.Products)

	gotHardware, err := f.categoryUC.FindByID(hardware.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple"}, productNames(gotHardware.Products))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación, búsqueda y borrado
// ──────────────────────────────────────────────────────────────────────────────

// La validación acumula todas las violaciones, no solo la primera.
func TestProductUseCase_CreateInvalidoReportaTodasLasViolaciones(t *testing.T) {
	f := newFixture()

	_, err := f.productUC.Create(dto.CreateProductRequest{
		Name:        "",
		Description: "",
		Price:       decimal.NewFromFloat(-1),
		Quantity:    -5,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 4, "name, description, price y quantity violados a la vez")
}

// Un nombre en blanco en la búsqueda es un parámetro ilegal, no un NotFound.
func TestProductUseCase_FindByNameBlanco(t *testing.T) {
	f := newFixture()

	_, err := f.productUC.FindByName("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = f.productUC.FindByName("Unicornio")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Eliminar un producto inexistente es un no-op.
func TestProductUseCase_DeleteInexistenteNoEsError(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.productUC.Delete("no-existe"))
}

// La búsqueda paginada valida el campo de orden antes de tocar el almacenamiento
// y propaga el total filtrado.
func TestProductUseCase_FindAllPagedFiltroYOrden(t *testing.T) {
	f := newFixture()

	f.mustCreateProduct(t, "Apple", 25.99, 15, nil)
	f.mustCreateProduct(t, "Pear", 35.00, 10, nil)
	f.mustCreateProduct(t, "Wireless Headphones", 49.99, 1, nil)

	_, err := f.productUC.FindAllPaged(repository.ProductFilter{}, repository.PageQuery{
		Number: 0, Size: 10, SortBy: "nonexistentField", SortDir: repository.SortAsc,
	})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	minPrice := decimal.NewFromFloat(30)
	maxPrice := decimal.NewFromFloat(50)
	out, err := f.productUC.FindAllPaged(
		repository.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice},
		repository.PageQuery{Number: 0, Size: 1, SortBy: "price", SortDir: repository.SortAsc},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Page.TotalElements)
	assert.Equal(t, 2, out.Page.TotalPages)
	require.Len(t, out.Content, 1)
	assert.Equal(t, "Pear", out.Content[0].Name)
}
