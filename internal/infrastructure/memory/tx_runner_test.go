package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
	"github.com/pt-labs/product-inventory-api/internal/infrastructure/memory"
)

var errTxAbortada = errors.New("tx abortada")

// ──────────────────────────────────────────────────────────────────────────────
// Rollback selectivo: sólo las filas tocadas por la transacción se revierten
// ──────────────────────────────────────────────────────────────────────────────

// Una fila comprometida por un escritor ajeno a la transacción mientras ésta
// corre debe sobrevivir al rollback: revertir no puede perder esa escritura.
func TestTxRunner_RollbackPreservaEscrituraConcurrente(t *testing.T) {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	outside := memory.NewProductRepository(store)

	concurrent := newProduct("Pear", 35.00, 10)
	err := tx.Run(context.Background(), func(products repository.ProductRepository, _ repository.CategoryRepository) error {
		require.NoError(t, products.Create(newProduct("Apple", 25.99, 15)))
		// Escritor concurrente sobre otra fila, fuera de la transacción.
		require.NoError(t, outside.Create(concurrent))
		return errTxAbortada
	})
	require.ErrorIs(t, err, errTxAbortada)

	got, err := outside.GetByID(concurrent.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "el rollback no debe borrar la fila comprometida por el escritor concurrente")
	assert.Equal(t, "Pear", got.Name)
}

// Las escrituras propias de la transacción sí se revierten: inserciones
// desaparecen y las filas modificadas o borradas vuelven a su estado previo.
func TestTxRunner_RollbackRevierteSoloLoTocado(t *testing.T) {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	products := memory.NewProductRepository(store)
	categories := memory.NewCategoryRepository(store)

	existing := newProduct("Apple", 25.99, 15)
	require.NoError(t, products.Create(existing))
	fruit := newCategory("fruit")
	require.NoError(t, categories.Create(fruit))

	var insertedID string
	err := tx.Run(context.Background(), func(txProducts repository.ProductRepository, txCategories repository.CategoryRepository) error {
		inserted := newProduct("Pear", 35.00, 10)
		insertedID = inserted.ID
		require.NoError(t, txProducts.Create(inserted))

		existing.Quantity = 99
		require.NoError(t, txProducts.Update(existing))
		require.NoError(t, txCategories.Delete(fruit.ID))
		return errTxAbortada
	})
	require.ErrorIs(t, err, errTxAbortada)

	ghost, err := products.GetByID(insertedID)
	require.NoError(t, err)
	assert.Nil(t, ghost, "la inserción de la transacción no debe sobrevivir al rollback")

	restored, err := products.GetByID(existing.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, 15, restored.Quantity)
	assert.Equal(t, int64(1), restored.Version)

	back, err := categories.GetByID(fruit.ID)
	require.NoError(t, err)
	require.NotNil(t, back, "la fila borrada por la transacción debe restaurarse")
}

// Sin error la transacción compromete sus escrituras tal cual.
func TestTxRunner_CommitPersisteEscrituras(t *testing.T) {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	outside := memory.NewProductRepository(store)

	p := newProduct("Apple", 25.99, 15)
	err := tx.Run(context.Background(), func(products repository.ProductRepository, _ repository.CategoryRepository) error {
		return products.Create(p)
	})
	require.NoError(t, err)

	got, err := outside.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Version)
}
