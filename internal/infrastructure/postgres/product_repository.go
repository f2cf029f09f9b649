package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pt-labs/product-inventory-api/internal/domain"
	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, quantity, category_id, version, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con versión 1.
func (r *ProductRepo) Create(product *entity.Product) error {
	product.Version = 1
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Quantity,
		product.CategoryID, product.Version, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category con id %v", domain.ErrNotFound, product.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByName obtiene un producto por nombre exacto. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get product by name")
}

// Update actualiza con bloqueo optimista: la escritura solo procede si la
// versión almacenada es la que el llamador observó. Si otra escritura ganó,
// retorna domain.ErrConflict; si la fila desapareció, domain.ErrNotFound.
// En éxito, la versión del entity queda incrementada en 1.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, quantity = $5, category_id = $6,
		    version = version + 1, updated_at = $7
		WHERE id = $1 AND version = $8`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Quantity,
		product.CategoryID, product.UpdatedAt, product.Version,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category con id %v", domain.ErrNotFound, product.CategoryID)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, product.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check product existence: %w", err)
		}
		if exists {
			return domain.ErrConflict
		}
		return fmt.Errorf("%w: product con id %s", domain.ErrNotFound, product.ID)
	}
	product.Version++
	return nil
}

// List lista todos los productos (full scan, sin orden garantizado).
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListPaged ejecuta la búsqueda filtrada y paginada. Los filtros presentes se
// pliegan en una sola conjunción que gobierna tanto el conteo total como la
// página devuelta; un número de página fuera de rango produce página vacía.
func (r *ProductRepo) ListPaged(filter repository.ProductFilter, page repository.PageQuery) ([]*entity.Product, int64, error) {
	col, err := repository.ProductSortColumn(page.SortBy)
	if err != nil {
		return nil, 0, err
	}
	dir := "ASC"
	if page.SortDir == repository.SortDesc {
		dir = "DESC"
	}

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Name != "" {
		args = append(args, "%"+escapeLike(filter.Name)+"%")
		where = append(where, fmt.Sprintf(`name LIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := `SELECT count(*) FROM products` + clause
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, page.Size, page.Offset())
	pageQuery := fmt.Sprintf(`SELECT `+productColumns+` FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		clause, col, dir, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products paged: %w", err)
	}
	defer rows.Close()
	list, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByCategory lista los productos cuya referencia autoritativa apunta a la categoría.
func (r *ProductRepo) ListByCategory(categoryID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByIDs lista los productos cuyos IDs estén en el conjunto dado.
func (r *ProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Delete elimina un producto por ID. Eliminar un ID inexistente no es error.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteByCategory elimina todos los productos de una categoría (cascada del agregado Category).
func (r *ProductRepo) DeleteByCategory(categoryID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete products by category: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.CategoryID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity,
			&p.CategoryID, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
