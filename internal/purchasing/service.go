package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/internal/catalog"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	"github.com/dukahub/dukapos-backend/pkg/enums"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
)

// Service manages supplier purchase orders and their status lifecycle.
// Receiving an order restocks the catalog inside the same transaction.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, input CreateOrderInput) (*models.PurchaseOrder, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.PurchaseOrder, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, storeID, id uuid.UUID, status enums.PurchaseOrderStatus) (*models.PurchaseOrder, error)
}

// CreateOrderInput is the payload for a new purchase order.
type CreateOrderInput struct {
	Supplier string
	Items    []OrderItemInput
}

// OrderItemInput is one requested line.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	CostPrice decimal.Decimal
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
	dbClient    *db.Client
}

// NewService constructs a purchasing service instance.
func NewService(repo *Repository, catalogRepo *catalog.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchasing repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, catalogRepo: catalogRepo, dbClient: dbClient}, nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, input CreateOrderInput) (*models.PurchaseOrder, error) {
	details := map[string]string{}
	if storeID == uuid.Nil {
		details["store_id"] = "is required"
	}
	if input.Supplier == "" {
		details["supplier"] = "is required"
	}
	if len(input.Items) == 0 {
		details["items"] = "at least one item is required"
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			details[fmt.Sprintf("items[%d].quantity", i)] = "must be greater than zero"
		}
		if item.CostPrice.LessThanOrEqual(decimal.Zero) {
			details[fmt.Sprintf("items[%d].cost_price", i)] = "must be greater than zero"
		}
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase order input").WithDetails(details)
	}

	total := decimal.Zero
	items := make([]models.PurchaseOrderItem, 0, len(input.Items))
	for i, item := range input.Items {
		product, err := s.catalogRepo.FindByID(ctx, storeID, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("product %s not found", item.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		items = append(items, models.PurchaseOrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			CostPrice: item.CostPrice,
			Position:  i,
		})
		total = total.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &models.PurchaseOrder{
		StoreID:   storeID,
		Supplier:  input.Supplier,
		Status:    enums.PurchaseOrderStatusPending,
		OrderedAt: time.Now(),
		Total:     total,
		Items:     items,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase order")
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]models.PurchaseOrder, error) {
	orders, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}
	return orders, nil
}

// UpdateStatus transitions a pending order to received or cancelled. Received
// and cancelled are terminal; any further transition is rejected. Receiving
// restocks the ordered quantities atomically with the status change.
func (s *service) UpdateStatus(ctx context.Context, storeID, id uuid.UUID, status enums.PurchaseOrderStatus) (*models.PurchaseOrder, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase order status").
			WithDetails(map[string]string{"status": "is invalid"})
	}
	if status == enums.PurchaseOrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "purchase orders cannot return to pending")
	}

	var updated *models.PurchaseOrder
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, storeID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("purchase order is already %s", order.Status)).
				WithDetails(map[string]string{"status": order.Status.String()})
		}

		if status == enums.PurchaseOrderStatusReceived {
			catalogRepo := s.catalogRepo.WithTx(tx)
			for _, item := range order.Items {
				// restock; missing products are skipped the same way stock
				// adjustments skip them
				if _, err := catalogRepo.AdjustStockClamped(ctx, order.StoreID, item.ProductID, item.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock received items")
				}
			}
		}

		if err := repo.UpdateStatus(ctx, storeID, id, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase order status")
		}

		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
