package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pt-labs/product-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.FindAll)
	products.Get("/paginated", productHandler.FindAllPaged)
	products.Get("/search", productHandler.FindByName)
	products.Get("/:id", productHandler.FindByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:productId/category/:categoryId", productHandler.AddCategory)
	products.Delete("/:productId/category/:categoryId", productHandler.RemoveCategory)

	categories := api.Group("/category")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.FindAll)
	categories.Get("/paginated", categoryHandler.FindAllPaged)
	categories.Get("/search", categoryHandler.FindByName)
	categories.Get("/:id", categoryHandler.FindByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
}
