package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)
)

const productColumns = `id, sku, name, tax_category, unit, price, cost, stock, min_stock, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Un SKU repetido devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.TaxCategory, p.Unit, p.Price, p.Cost, p.Stock,
		p.MinStock, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpdateStock escribe el contador corriente.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`, id, stock, at)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdateCost escribe el costo promedio.
func (r *ProductRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET cost = $2, updated_at = $3 WHERE id = $1`, id, cost, at)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	return nil
}

// List devuelve el catálogo ordenado por SKU.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.TaxCategory, &p.Unit, &p.Price, &p.Cost,
		&p.Stock, &p.MinStock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Contrapartes ─────────────────────────────────────────────────────────────

const counterpartyColumns = `id, kind, name, tax_id, email, phone, payment_term_days, created_at, updated_at`

// CounterpartyRepo clientes y proveedores.
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

func (r *CounterpartyRepo) Create(ctx context.Context, c *entity.Counterparty) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO counterparties (`+counterpartyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Kind, c.Name, c.TaxID, c.Email, c.Phone, c.PaymentTermDays, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert counterparty: %w", err)
	}
	return nil
}

func (r *CounterpartyRepo) GetByID(ctx context.Context, id string) (*entity.Counterparty, error) {
	return r.get(ctx, `SELECT `+counterpartyColumns+` FROM counterparties WHERE id = $1`, id)
}

func (r *CounterpartyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Counterparty, error) {
	return r.get(ctx, `SELECT `+counterpartyColumns+` FROM counterparties WHERE id = $1 FOR UPDATE`, id)
}

func (r *CounterpartyRepo) get(ctx context.Context, query, id string) (*entity.Counterparty, error) {
	var c entity.Counterparty
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Kind, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.PaymentTermDays, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get counterparty: %w", err)
	}
	return &c, nil
}
