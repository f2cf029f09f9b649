package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, version, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). Solo persiste la fila de la categoría: la lista de
// productos se reconstruye en el caso de uso desde products.category_id.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría con versión 1. El nombre es único.
func (r *CategoryRepo) Create(category *entity.Category) error {
	category.Version = 1
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Version, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category con nombre %q", domain.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Retorna (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.q.QueryRow(context.Background(), query, id), "get category")
}

// GetByName obtiene una categoría por nombre exacto. Retorna (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	return scanCategory(r.q.QueryRow(context.Background(), query, name), "get category by name")
}

// Update actualiza con bloqueo optimista (misma semántica que ProductRepo.Update).
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4`
	cmd, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.UpdatedAt, category.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category con nombre %q", domain.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, category.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check category existence: %w", err)
		}
		if exists {
			return domain.ErrConflict
		}
		return fmt.Errorf("%w: category con id %s", domain.ErrNotFound, category.ID)
	}
	category.Version++
	return nil
}

// List lista todas las categorías (full scan, sin orden garantizado).
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), `SELECT `+categoryColumns+` FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// ListPaged lista categorías ordenadas y paginadas, junto al total de filas.
func (r *CategoryRepo) ListPaged(page repository.PageQuery) ([]*entity.Category, int64, error) {
	col, err := repository.CategorySortColumn(page.SortBy)
	if err != nil {
		return nil, 0, err
	}
	dir := "ASC"
	if page.SortDir == repository.SortDesc {
		dir = "DESC"
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+categoryColumns+` FROM categories ORDER BY %s %s LIMIT $1 OFFSET $2`, col, dir)
	rows, err := r.q.Query(context.Background(), query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list categories paged: %w", err)
	}
	defer rows.Close()
	list, err := scanCategories(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete elimina la fila de la categoría. La cascada sobre productos la
// orquesta el caso de uso dentro de la misma transacción.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func scanCategory(row pgx.Row, op string) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
