package usecase

import (
	"context"

	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma transacción.
// Toda mutación que toque más de una entidad corre dentro de Run: o se
// confirma completa o se revierte completa, de modo que el invariante
// producto↔categoría nunca queda visible a medio aplicar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		categories repository.CategoryRepository,
	) error) error
}
