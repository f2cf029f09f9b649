package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/pt-labs/product-inventory-api/internal/application/dto"
	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
	"github.com/pt-labs/product-inventory-api/internal/validator"
)

// CategoryUseCase casos de uso CRUD para categorías. Category es la raíz de
// agregado para el borrado en cascada; su lista de productos se reconstruye en
// cada lectura desde la referencia autoritativa Product.CategoryID.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	tx         TxRunner
	validator  *validator.Service
	log        zerolog.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	tx TxRunner,
	v *validator.Service,
	log zerolog.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products, tx: tx, validator: v, log: log}
}

// Create crea una categoría. El nombre es único: un duplicado falla.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	uc.log.Debug().Str("name", in.Name).Msg("CategoryUseCase.Create")

	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.validator.Validate(category); err != nil {
		return nil, err
	}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, nil), nil
}

// FindAll lista todas las categorías con sus productos.
func (uc *CategoryUseCase) FindAll() ([]dto.CategoryResponse, error) {
	uc.log.Debug().Msg("CategoryUseCase.FindAll")

	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp, err := uc.withProducts(c)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

// FindAllPaged lista categorías ordenadas y paginadas. El campo de orden se
// valida contra el conjunto permitido antes de tocar el almacenamiento.
func (uc *CategoryUseCase) FindAllPaged(page repository.PageQuery) (*dto.CategoryPageResponse, error) {
	uc.log.Debug().Int("pageNumber", page.Number).Int("pageSize", page.Size).Msg("CategoryUseCase.FindAllPaged")

	if _, err := repository.CategorySortColumn(page.SortBy); err != nil {
		return nil, err
	}
	list, total, err := uc.categories.ListPaged(page)
	if err != nil {
		return nil, err
	}
	content := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp, err := uc.withProducts(c)
		if err != nil {
			return nil, err
		}
		content = append(content, *resp)
	}
	return &dto.CategoryPageResponse{
		Content: content,
		Page:    dto.NewPageResponse(page.Number, page.Size, total),
	}, nil
}

// FindByID obtiene una categoría por ID con su membresía reconstruida.
func (uc *CategoryUseCase) FindByID(id string) (*dto.CategoryResponse, error) {
	uc.log.Debug().Str("id", id).Msg("CategoryUseCase.FindByID")

	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category con id %s", domain.ErrNotFound, id)
	}
	return uc.withProducts(category)
}

// FindByName busca una categoría por nombre exacto. Un nombre en blanco es un
// parámetro ilegal.
func (uc *CategoryUseCase) FindByName(name string) (*dto.CategoryResponse, error) {
	uc.log.Debug().Str("name", name).Msg("CategoryUseCase.FindByName")

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: el nombre no puede estar en blanco", domain.ErrInvalidParameter)
	}
	category, err := uc.categories.GetByName(name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category con nombre %q", domain.ErrNotFound, name)
	}
	return uc.withProducts(category)
}

// Update renombra la categoría y, si ProductIDs viene no vacío, reemplaza su
// membresía por exactamente ese conjunto: los productos nombrados se reasignan
// a esta categoría (pisando la que tuvieran) y los miembros actuales que no
// estén en el conjunto quedan sin categoría. Cualquier ID que no resuelva
// falla la operación completa sin persistir asociación parcial.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	uc.log.Debug().Str("id", id).Msg("CategoryUseCase.Update")

	var out *dto.CategoryResponse
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		category, err := categories.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, id)
		}

		category.Name = in.Name
		category.UpdatedAt = time.Now()
		if err := uc.validator.Validate(category); err != nil {
			return err
		}

		if len(in.ProductIDs) > 0 {
			wanted := make(map[string]bool, len(in.ProductIDs))
			for _, pid := range in.ProductIDs {
				wanted[pid] = true
			}

			listed, err := products.ListByIDs(in.ProductIDs)
			if err != nil {
				return err
			}
			if len(listed) != len(wanted) {
				resolved := make(map[string]bool, len(listed))
				for _, p := range listed {
					resolved[p.ID] = true
				}
				for pid := range wanted {
					if !resolved[pid] {
						return fmt.Errorf("%w: product con id %s", domain.ErrNotFound, pid)
					}
				}
			}

			// Miembros actuales fuera del nuevo conjunto quedan sin categoría.
			members, err := products.ListByCategory(category.ID)
			if err != nil {
				return err
			}
			for _, p := range members {
				if wanted[p.ID] {
					continue
				}
				p.CategoryID = nil
				p.UpdatedAt = time.Now()
				if err := products.Update(p); err != nil {
					return err
				}
			}
			for _, p := range listed {
				p.CategoryID = &category.ID
				p.UpdatedAt = time.Now()
				if err := products.Update(p); err != nil {
					return err
				}
			}
		}

		if err := categories.Update(category); err != nil {
			return err
		}

		members, err := products.ListByCategory(category.ID)
		if err != nil {
			return err
		}
		out = toCategoryResponse(category, members)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina la categoría y, en cascada, todos sus productos. El ID debe
// resolver: el contrato de cascada exige cargar el agregado primero.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	uc.log.Debug().Str("id", id).Msg("CategoryUseCase.Delete")

	return uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		category, err := categories.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, id)
		}
		if err := products.DeleteByCategory(category.ID); err != nil {
			return err
		}
		if err := categories.Delete(category.ID); err != nil {
			return err
		}
		uc.log.Info().Str("id", id).Msg("categoría eliminada con sus productos")
		return nil
	})
}

func (uc *CategoryUseCase) withProducts(category *entity.Category) (*dto.CategoryResponse, error) {
	members, err := uc.products.ListByCategory(category.ID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, members), nil
}

func toCategoryResponse(c *entity.Category, members []*entity.Product) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	products := make([]dto.ProductResponse, 0, len(members))
	for _, p := range members {
		products = append(products, *toProductResponse(p, c.Name))
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Products:  products,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
