// Package catalog administra productos y contrapartes (clientes y proveedores).
package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

// UseCase orquesta el catálogo. El stock inicial entra por el libro de inventario.
type UseCase struct {
	tx     repository.TxRunner
	reads  repository.Repos
	ledger *inventory.Ledger
	clock  clock.Clock
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(tx repository.TxRunner, reads repository.Repos, ledger *inventory.Ledger, clk clock.Clock) *UseCase {
	return &UseCase{tx: tx, reads: reads, ledger: ledger, clock: clk}
}

// CreateProduct crea el producto con stock cero y, si InitialStock > 0, registra un movimiento INITIAL.
func (uc *UseCase) CreateProduct(ctx context.Context, actor entity.ActorContext, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.Validation("sku y nombre son obligatorios")
	}
	category := strings.ToUpper(strings.TrimSpace(in.TaxCategory))
	if category == "" {
		category = entity.TaxCategoryITBIS18
	}
	if _, ok := entity.TaxRateFor(category); !ok {
		return nil, domain.Validation("categoría de impuesto inválida: %s", in.TaxCategory)
	}
	for field, v := range map[string]decimal.Decimal{
		"precio": in.Price, "costo": in.Cost, "stock mínimo": in.MinStock, "stock inicial": in.InitialStock,
	} {
		if v.IsNegative() {
			return nil, domain.Validation("%s no puede ser negativo", field)
		}
	}

	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		now := uc.clock.Now()
		product = &entity.Product{
			ID:          uuid.New().String(),
			SKU:         sku,
			Name:        name,
			TaxCategory: category,
			Unit:        strings.TrimSpace(in.Unit),
			Price:       in.Price,
			Cost:        in.Cost,
			Stock:       decimal.Zero,
			MinStock:    in.MinStock,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock.IsPositive() {
			m, err := uc.ledger.RecordInTx(ctx, repos, actor, inventory.MovementInput{
				ProductID: product.ID,
				Kind:      entity.MovementInitial,
				Quantity:  in.InitialStock,
				Cause:     entity.CauseRef{Kind: entity.CauseInitial, ID: product.ID},
				UnitCost:  in.Cost,
			})
			if err != nil {
				return err
			}
			product.Stock = m.StockAfter
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityProduct, product.ID, entity.AuditCreated, nil, dto.FromProduct(product), now))
	})
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// GetProduct devuelve un producto.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.reads.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto")
	}
	return dto.FromProduct(p), nil
}

// ListProducts lista el catálogo.
func (uc *UseCase) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	ps, err := uc.reads.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// LowStock productos en o por debajo del mínimo.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	return inventory.LowStock(ctx, uc.reads.Products)
}

// CreateCounterparty crea un cliente o proveedor. Si trae RNC/cédula se valida su dígito verificador.
func (uc *UseCase) CreateCounterparty(ctx context.Context, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	kind := strings.ToUpper(strings.TrimSpace(in.Kind))
	if kind != entity.CounterpartyCustomer && kind != entity.CounterpartySupplier {
		return nil, domain.Validation("tipo inválido: use CUSTOMER o SUPPLIER")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("el nombre es obligatorio")
	}
	if in.PaymentTermDays < 0 {
		return nil, domain.Validation("el plazo de pago no puede ser negativo")
	}
	taxID := strings.TrimSpace(in.TaxID)
	if taxID != "" {
		if err := dgii.ValidateTaxID(taxID); err != nil {
			return nil, domain.Validation("RNC/cédula inválido: %s", taxID)
		}
	}

	now := uc.clock.Now()
	c := &entity.Counterparty{
		ID:              uuid.New().String(),
		Kind:            kind,
		Name:            name,
		TaxID:           taxID,
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		PaymentTermDays: in.PaymentTermDays,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		return repos.Counterparties.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return dto.FromCounterparty(c), nil
}

// GetCounterparty devuelve un cliente o proveedor.
func (uc *UseCase) GetCounterparty(ctx context.Context, id string) (*dto.CounterpartyResponse, error) {
	c, err := uc.reads.Counterparties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("contraparte")
	}
	return dto.FromCounterparty(c), nil
}
