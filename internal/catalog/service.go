package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
)

// Service exposes catalog product management and stock reconciliation. Every
// id-addressed operation is scoped to the caller's store; a product owned by
// another store is indistinguishable from a missing one.
type Service interface {
	AddProduct(ctx context.Context, storeID uuid.UUID, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	AdjustStock(ctx context.Context, storeID uuid.UUID, adjustments []StockAdjustment) ([]uuid.UUID, error)
	LowStockItems(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	TotalInventoryValue(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error)
}

// ProductInput holds the full set of mutable product fields. Both create and
// update validate the whole payload; there is no partial product write.
type ProductInput struct {
	Name      string
	Category  string
	Barcode   string
	Supplier  string
	Price     decimal.Decimal
	CostPrice decimal.Decimal
	Stock     int
	MinStock  int
}

// StockAdjustment subtracts QuantityDelta from the product's stock. A sale of
// two units is expressed as QuantityDelta=2; restocking uses a negative delta.
type StockAdjustment struct {
	ProductID     uuid.UUID
	QuantityDelta int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) AddProduct(ctx context.Context, storeID uuid.UUID, input ProductInput) (*models.Product, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:   storeID,
		Name:      strings.TrimSpace(input.Name),
		Category:  strings.TrimSpace(input.Category),
		Barcode:   strings.TrimSpace(input.Barcode),
		Supplier:  strings.TrimSpace(input.Supplier),
		Price:     input.Price,
		CostPrice: input.CostPrice,
		Stock:     input.Stock,
		MinStock:  input.MinStock,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_store_barcode") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "barcode already exists in this store").
				WithDetails(map[string]string{"barcode": "already exists in this store"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	// id and store scoping are immutable; everything else is replaced.
	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.Barcode = strings.TrimSpace(input.Barcode)
	product.Supplier = strings.TrimSpace(input.Supplier)
	product.Price = input.Price
	product.CostPrice = input.CostPrice
	product.Stock = input.Stock
	product.MinStock = input.MinStock

	if err := s.repo.Save(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_store_barcode") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "barcode already exists in this store").
				WithDetails(map[string]string{"barcode": "already exists in this store"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, storeID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

// AdjustStock applies each adjustment best-effort: a product missing from the
// store is skipped, not fatal, and the resulting stock is clamped at zero. The
// returned ids are the products that were actually updated. All applied
// entries commit in one transaction.
func (s *service) AdjustStock(ctx context.Context, storeID uuid.UUID, adjustments []StockAdjustment) ([]uuid.UUID, error) {
	if len(adjustments) == 0 {
		return nil, nil
	}

	applied := make([]uuid.UUID, 0, len(adjustments))
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, adj := range adjustments {
			ok, err := repo.AdjustStockClamped(ctx, storeID, adj.ProductID, -adj.QuantityDelta)
			if err != nil {
				return err
			}
			if ok {
				applied = append(applied, adj.ProductID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
	}
	return applied, nil
}

func (s *service) LowStockItems(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.ListLowStock(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock items")
	}
	return products, nil
}

// TotalInventoryValue sums stock × costPrice over the store's products. The
// sum is order-independent.
func (s *service) TotalInventoryValue(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error) {
	products, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total, nil
}

func validateProductInput(input ProductInput) error {
	details := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if strings.TrimSpace(input.Barcode) == "" {
		details["barcode"] = "is required"
	}
	if strings.TrimSpace(input.Supplier) == "" {
		details["supplier"] = "is required"
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		details["price"] = "must be greater than zero"
	}
	if input.CostPrice.LessThanOrEqual(decimal.Zero) {
		details["cost_price"] = "must be greater than zero"
	}
	if input.Stock < 0 {
		details["stock"] = "must not be negative"
	}
	if input.MinStock < 0 {
		details["min_stock"] = "must not be negative"
	}
	if _, priced := details["price"]; !priced {
		if _, costed := details["cost_price"]; !costed && input.CostPrice.GreaterThanOrEqual(input.Price) {
			details["cost_price"] = "must be below selling price"
		}
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product input").WithDetails(details)
	}
	return nil
}
