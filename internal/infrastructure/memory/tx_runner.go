package memory

import (
	"context"

	"github.com/pt-labs/product-inventory-api/internal/application/usecase"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner emula la transacción con una bitácora de deshacer: los repos
// atados a fn anotan el estado previo de cada fila que tocan y, si fn falla,
// sólo esas filas se revierten. Las escrituras concurrentes de repos ajenos a
// la transacción sobre otras filas sobreviven al rollback. Las transacciones
// se serializan entre sí con txMu.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos que anotan en la bitácora; revierte ante error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	journal := newTxJournal()
	products := &ProductRepo{store: r.store, journal: journal}
	categories := &CategoryRepo{store: r.store, journal: journal}
	if err := fn(products, categories); err != nil {
		journal.rollback(r.store)
		return err
	}
	return nil
}
