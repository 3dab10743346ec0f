package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.name, p.stock, p.price, p.category_id, p.thru_date, p.created_at, p.updated_at`

// productWithCategory columnas de producto más las de su categoría (LEFT JOIN, pueden venir nulas).
const productWithCategory = `
	SELECT ` + productColumns + `, c.id, c.description, c.parent_id
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, stock, price, category_id, thru_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Stock, product.Price, product.CategoryID,
		product.ThruDate, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return translateError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto con su categoría. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProductWithCategory(r.q.QueryRow(ctx, productWithCategory+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE). No trae la categoría.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Stock, &p.Price, &p.CategoryID, &p.ThruDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return &p, nil
}

// Update actualiza todos los campos persistidos del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, stock = $3, price = $4, category_id = $5, thru_date = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Stock, product.Price, product.CategoryID, product.ThruDate, product.UpdatedAt,
	)
	if err != nil {
		return translateError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	return nil
}

// UpdateStock fija el stock (usado por el libro de historial).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return translateError("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListActive productos vigentes con categoría, por precio ascendente.
func (r *ProductRepo) ListActive(ctx context.Context, now time.Time) ([]*entity.Product, error) {
	return r.Search(ctx, repository.ProductFilter{ActiveAt: now})
}

// Search arma el WHERE según los filtros presentes.
func (r *ProductRepo) Search(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query, args := buildProductSearch(filter)
	return r.list(ctx, "search products", query, args...)
}

// ListLowStock productos vigentes con stock < threshold, del menor stock al mayor.
func (r *ProductRepo) ListLowStock(ctx context.Context, now time.Time, threshold int) ([]*entity.Product, error) {
	query := productWithCategory + `
		WHERE (p.thru_date IS NULL OR p.thru_date > $1) AND p.stock < $2
		ORDER BY p.stock ASC, p.name ASC`
	return r.list(ctx, "list low stock", query, now, threshold)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func buildProductSearch(filter repository.ProductFilter) (string, []any) {
	var args argList
	conds := []string{fmt.Sprintf("(p.thru_date IS NULL OR p.thru_date > %s)", args.add(filter.ActiveAt))}
	if filter.Name != "" {
		conds = append(conds, fmt.Sprintf(`p.name ILIKE '%%' || %s || '%%' ESCAPE '\'`, args.add(escapeLike(filter.Name))))
	}
	if len(filter.CategoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.category_id = ANY(%s)", args.add(filter.CategoryIDs)))
	}
	if filter.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price >= %s", args.add(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price <= %s", args.add(*filter.MaxPrice)))
	}
	if filter.Available != nil {
		if *filter.Available {
			conds = append(conds, "p.stock > 0")
		} else {
			conds = append(conds, "p.stock <= 0")
		}
	}
	return productWithCategory + whereClause(conds) + ` ORDER BY p.price ASC, p.name ASC, p.id ASC`, args
}

// escapeLike hace que %, _ y \ del texto buscado coincidan literalmente.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanProductWithCategory(row pgx.Row) (*entity.Product, error) {
	var (
		p           entity.Product
		catID       *string
		catDesc     *string
		catParentID *string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Stock, &p.Price, &p.CategoryID, &p.ThruDate, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catDesc, &catParentID,
	); err != nil {
		return nil, err
	}
	if catID != nil {
		p.Category = &entity.Category{ID: *catID, ParentID: catParentID}
		if catDesc != nil {
			p.Category.Description = *catDesc
		}
	}
	return &p, nil
}
