package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/pt-labs/product-inventory-api/internal/application/dto"
	"github.com/pt-labs/product-inventory-api/internal/application/usecase"
	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FindAll godoc
// @Summary      Listar todos los productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) FindAll(c *fiber.Ctx) error {
	out, err := h.uc.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindAllPaged godoc
// @Summary      Listar productos paginados con filtros
// @Tags         products
// @Produce      json
// @Param        pageNum        query  int     false  "Página (base cero)"     default(0)
// @Param        pageSize       query  int     false  "Tamaño de página"       default(10)
// @Param        sortBy         query  string  false  "Campo de orden"         default(name)
// @Param        sortDirection  query  string  false  "ASC o DESC"             default(ASC)
// @Param        name           query  string  false  "Substring del nombre"
// @Param        minPrice       query  number  false  "Precio mínimo (inclusivo)"
// @Param        maxPrice       query  number  false  "Precio máximo (inclusivo)"
// @Success      200  {object}  dto.ProductPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/products/paginated [get]
func (h *ProductHandler) FindAllPaged(c *fiber.Ctx) error {
	page, err := pageQueryFromCtx(c)
	if err != nil {
		return respondError(c, err)
	}
	filter, err := productFilterFromCtx(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.FindAllPaged(filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) FindByID(c *fiber.Ctx) error {
	out, err := h.uc.FindByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindByName godoc
// @Summary      Buscar producto por nombre exacto
// @Tags         products
// @Produce      json
// @Param        name  query  string  true  "Nombre del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/search [get]
func (h *ProductHandler) FindByName(c *fiber.Ctx) error {
	out, err := h.uc.FindByName(c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto por ID
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto por ID
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      200
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// AddCategory godoc
// @Summary      Asociar categoría a producto
// @Tags         products
// @Param        productId   path  string  true  "ID del producto"
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{productId}/category/{categoryId} [post]
func (h *ProductHandler) AddCategory(c *fiber.Ctx) error {
	if err := h.uc.AddCategoryToProduct(c.UserContext(), c.Params("categoryId"), c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveCategory godoc
// @Summary      Desasociar categoría de producto
// @Tags         products
// @Param        productId   path  string  true  "ID del producto"
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{productId}/category/{categoryId} [delete]
func (h *ProductHandler) RemoveCategory(c *fiber.Ctx) error {
	if err := h.uc.RemoveCategoryFromProduct(c.UserContext(), c.Params("categoryId"), c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// productFilterFromCtx arma el filtro opcional de productos; un precio no
// numérico es un parámetro ilegal.
func productFilterFromCtx(c *fiber.Ctx) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{Name: c.Query("name")}
	if raw := c.Query("minPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: minPrice no es numérico: %s", domain.ErrInvalidParameter, raw)
		}
		filter.MinPrice = &d
	}
	if raw := c.Query("maxPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: maxPrice no es numérico: %s", domain.ErrInvalidParameter, raw)
		}
		filter.MaxPrice = &d
	}
	return filter, nil
}
