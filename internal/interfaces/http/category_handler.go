package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pt-labs/product-inventory-api/internal/application/dto"
	"github.com/pt-labs/product-inventory-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/category [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
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
// @Summary      Listar todas las categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/v1/category [get]
func (h *CategoryHandler) FindAll(c *fiber.Ctx) error {
	out, err := h.uc.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindAllPaged godoc
// @Summary      Listar categorías paginadas
// @Tags         categories
// @Produce      json
// @Param        pageNum        query  int     false  "Página (base cero)"  default(0)
// @Param        pageSize       query  int     false  "Tamaño de página"    default(10)
// @Param        sortBy         query  string  false  "Campo de orden"      default(name)
// @Param        sortDirection  query  string  false  "ASC o DESC"          default(ASC)
// @Success      200  {object}  dto.CategoryPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/category/paginated [get]
func (h *CategoryHandler) FindAllPaged(c *fiber.Ctx) error {
	page, err := pageQueryFromCtx(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.FindAllPaged(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/category/{id} [get]
func (h *CategoryHandler) FindByID(c *fiber.Ctx) error {
	out, err := h.uc.FindByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindByName godoc
// @Summary      Buscar categoría por nombre exacto
// @Tags         categories
// @Produce      json
// @Param        name  query  string  true  "Nombre de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/category/search [get]
func (h *CategoryHandler) FindByName(c *fiber.Ctx) error {
	out, err := h.uc.FindByName(c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría por ID
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/category/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
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
// @Summary      Eliminar categoría por ID (cascada sobre sus productos)
// @Tags         categories
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/category/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
