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

// ProductUseCase casos de uso CRUD y de asociación para productos. Es el único
// componente que toca la relación producto↔categoría, siempre dentro de una
// transacción del TxRunner cuando la mutación involucra ambas entidades.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tx         TxRunner
	validator  *validator.Service
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	tx TxRunner,
	v *validator.Service,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, tx: tx, validator: v, log: log}
}

// Create crea un producto. La categoría es opcional en la creación; si viene,
// debe resolver a una categoría existente.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uc.log.Debug().Str("name", in.Name).Msg("ProductUseCase.Create")

	var categoryName string
	if in.CategoryID != nil {
		category, err := uc.categories.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category con id %s", domain.ErrNotFound, *in.CategoryID)
		}
		categoryName = category.Name
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.validator.Validate(product); err != nil {
		return nil, err
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, categoryName), nil
}

// FindAll lista todos los productos (sin paginar, full scan).
func (uc *ProductUseCase) FindAll() ([]dto.ProductResponse, error) {
	uc.log.Debug().Msg("ProductUseCase.FindAll")

	list, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, names.lookup(p.CategoryID)))
	}
	return items, nil
}

// FindAllPaged ejecuta la búsqueda filtrada, ordenada y paginada. El campo de
// orden se valida contra el conjunto permitido ANTES de tocar el almacenamiento.
func (uc *ProductUseCase) FindAllPaged(filter repository.ProductFilter, page repository.PageQuery) (*dto.ProductPageResponse, error) {
	uc.log.Debug().Int("pageNumber", page.Number).Int("pageSize", page.Size).Msg("ProductUseCase.FindAllPaged")

	if _, err := repository.ProductSortColumn(page.SortBy); err != nil {
		return nil, err
	}
	list, total, err := uc.products.ListPaged(filter, page)
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames()
	if err != nil {
		return nil, err
	}
	content := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		content = append(content, *toProductResponse(p, names.lookup(p.CategoryID)))
	}
	return &dto.ProductPageResponse{
		Content: content,
		Page:    dto.NewPageResponse(page.Number, page.Size, total),
	}, nil
}

// FindByID obtiene un producto por ID, con el nombre de su categoría si la tiene.
func (uc *ProductUseCase) FindByID(id string) (*dto.ProductResponse, error) {
	uc.log.Debug().Str("id", id).Msg("ProductUseCase.FindByID")

	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product con id %s", domain.ErrNotFound, id)
	}
	return uc.withCategoryName(product)
}

// FindByName busca un producto por nombre exacto. Un nombre en blanco es un
// parámetro ilegal, no un "no encontrado".
func (uc *ProductUseCase) FindByName(name string) (*dto.ProductResponse, error) {
	uc.log.Debug().Str("name", name).Msg("ProductUseCase.FindByName")

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: el nombre no puede estar en blanco", domain.ErrInvalidParameter)
	}
	product, err := uc.products.GetByName(name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product con nombre %q", domain.ErrNotFound, name)
	}
	return uc.withCategoryName(product)
}

// Update sobrescribe los campos del producto. La categoría es estructuralmente
// requerida aquí: su ausencia falla, porque un producto solo puede quedar sin
// categoría en la creación o vía RemoveCategoryFromProduct.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	uc.log.Debug().Str("id", id).Msg("ProductUseCase.Update")

	if in.CategoryID == nil {
		return nil, fmt.Errorf("%w: category con id <nil>", domain.ErrNotFound)
	}

	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		product, err := products.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: product con id %s", domain.ErrNotFound, id)
		}
		category, err := categories.GetByID(*in.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, *in.CategoryID)
		}

		product.Name = in.Name
		product.Description = in.Description
		product.Price = in.Price
		product.Quantity = in.Quantity
		product.CategoryID = &category.ID
		product.UpdatedAt = time.Now()

		if err := uc.validator.Validate(product); err != nil {
			return err
		}
		if err := products.Update(product); err != nil {
			return err
		}
		out = toProductResponse(product, category.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un producto por ID. Un ID inexistente es un no-op registrado,
// no un error. No hay cascada hacia la categoría.
func (uc *ProductUseCase) Delete(id string) error {
	uc.log.Debug().Str("id", id).Msg("ProductUseCase.Delete")

	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		uc.log.Info().Str("id", id).Msg("eliminación omitida: producto no encontrado")
		return nil
	}
	return uc.products.Delete(product.ID)
}

// AddCategoryToProduct asocia el producto a la categoría. La referencia
// autoritativa es Product.CategoryID; la lista de la categoría se deriva de
// ella en cada lectura, así que persistir el producto restablece el invariante.
func (uc *ProductUseCase) AddCategoryToProduct(ctx context.Context, categoryID, productID string) error {
	uc.log.Debug().Str("categoryId", categoryID).Str("productId", productID).Msg("ProductUseCase.AddCategoryToProduct")

	return uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		category, err := categories.GetByID(categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, categoryID)
		}
		product, err := products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: product con id %s", domain.ErrNotFound, productID)
		}

		product.CategoryID = &category.ID
		product.UpdatedAt = time.Now()
		return products.Update(product)
	})
}

// RemoveCategoryFromProduct desasocia el producto de la categoría, dejándolo
// sin categoría. Ambos IDs deben resolver.
func (uc *ProductUseCase) RemoveCategoryFromProduct(ctx context.Context, categoryID, productID string) error {
	uc.log.Debug().Str("categoryId", categoryID).Str("productId", productID).Msg("ProductUseCase.RemoveCategoryFromProduct")

	return uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		category, err := categories.GetByID(categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, categoryID)
		}
		product, err := products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: product con id %s", domain.ErrNotFound, productID)
		}

		product.CategoryID = nil
		product.UpdatedAt = time.Now()
		return products.Update(product)
	})
}

func (uc *ProductUseCase) withCategoryName(product *entity.Product) (*dto.ProductResponse, error) {
	categoryName := ""
	if product.CategoryID != nil {
		category, err := uc.categories.GetByID(*product.CategoryID)
		if err != nil {
			return nil, err
		}
		if category != nil {
			categoryName = category.Name
		}
	}
	return toProductResponse(product, categoryName), nil
}

type categoryNameIndex map[string]string

func (idx categoryNameIndex) lookup(id *string) string {
	if id == nil {
		return ""
	}
	return idx[*id]
}

func (uc *ProductUseCase) categoryNames() (categoryNameIndex, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	idx := make(categoryNameIndex, len(list))
	for _, c := range list {
		idx[c.ID] = c.Name
	}
	return idx, nil
}

func toProductResponse(p *entity.Product, categoryName string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
