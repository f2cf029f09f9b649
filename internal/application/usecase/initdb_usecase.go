package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

// InitDbUseCase carga los datos semilla del catálogo. Es una rutina explícita
// e idempotente invocada una vez al arranque, no un efecto implícito.
type InitDbUseCase struct {
	categories repository.CategoryRepository
	tx         TxRunner
	log        zerolog.Logger
}

// NewInitDbUseCase construye el caso de uso.
func NewInitDbUseCase(categories repository.CategoryRepository, tx TxRunner, log zerolog.Logger) *InitDbUseCase {
	return &InitDbUseCase{categories: categories, tx: tx, log: log}
}

// Seed crea las categorías fruit y hardware con sus productos si aún no
// existen. Una segunda invocación no hace nada.
func (uc *InitDbUseCase) Seed(ctx context.Context) error {
	existing, err := uc.categories.GetByName("fruit")
	if err != nil {
		return err
	}
	if existing != nil {
		uc.log.Debug().Msg("datos semilla ya presentes, seed omitido")
		return nil
	}

	return uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		now := time.Now()

		fruit := &entity.Category{ID: uuid.New().String(), Name: "fruit", CreatedAt: now, UpdatedAt: now}
		if err := categories.Create(fruit); err != nil {
			return err
		}
		hardware := &entity.Category{ID: uuid.New().String(), Name: "hardware", CreatedAt: now, UpdatedAt: now}
		if err := categories.Create(hardware); err != nil {
			return err
		}

		seed := []*entity.Product{
			{
				ID:          uuid.New().String(),
				Name:        "Apple",
				Description: "This is a non GMO apple!",
				Price:       decimal.NewFromFloat(25.99),
				Quantity:    15,
				CategoryID:  &fruit.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			{
				ID:          uuid.New().String(),
				Name:        "Pear",
				Description: "This is a non GMO pear!",
				Price:       decimal.NewFromFloat(35.00),
				Quantity:    10,
				CategoryID:  &fruit.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			{
				ID:          uuid.New().String(),
				Name:        "Wireless Headphones",
				Description: "Bluetooth wireless headphones!",
				Price:       decimal.NewFromFloat(49.99),
				Quantity:    1,
				CategoryID:  &hardware.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		}
		for _, p := range seed {
			if err := products.Create(p); err != nil {
				return err
			}
		}
		uc.log.Info().Int("categorias", 2).Int("productos", len(seed)).Msg("datos semilla cargados")
		return nil
	})
}
