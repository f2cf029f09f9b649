package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

// intQuery parsea un query param entero. Un valor no numérico es parámetro
// ilegal, no un default silencioso.
func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser un entero", domain.ErrInvalidParameter, key)
	}
	return v, nil
}

// pageQueryFromCtx arma el PageQuery desde los query params con los defaults
// del contrato: pageNum=0, pageSize=10, sortBy=name, sortDirection=ASC.
func pageQueryFromCtx(c *fiber.Ctx) (repository.PageQuery, error) {
	var page repository.PageQuery
	var err error

	if page.Number, err = intQuery(c, "pageNum", 0); err != nil {
		return page, err
	}
	if page.Size, err = intQuery(c, "pageSize", 10); err != nil {
		return page, err
	}
	page.SortBy = c.Query("sortBy", "name")

	if page.Number < 0 {
		return page, fmt.Errorf("%w: pageNum debe ser >= 0", domain.ErrInvalidParameter)
	}
	if page.Size < 1 {
		return page, fmt.Errorf("%w: pageSize debe ser >= 1", domain.ErrInvalidParameter)
	}

	switch strings.ToUpper(c.Query("sortDirection", "ASC")) {
	case "ASC":
		page.SortDir = repository.SortAsc
	case "DESC":
		page.SortDir = repository.SortDesc
	default:
		return page, fmt.Errorf("%w: sortDirection debe ser ASC o DESC", domain.ErrInvalidParameter)
	}
	return page, nil
}
