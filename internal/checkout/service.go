package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/internal/cart"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	"github.com/dukahub/dukapos-backend/internal/sales"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
)

// cartProvider is the slice of the cart registry checkout needs.
type cartProvider interface {
	Snapshot(operatorID uuid.UUID) cart.View
	Reset(operatorID uuid.UUID)
}

// Receipt summarizes a committed sale for the operator's receipt screen.
type Receipt struct {
	Sale    *models.Sale    `json:"sale"`
	Payment decimal.Decimal `json:"payment"`
	Change  decimal.Decimal `json:"change"`
}

// Service commits the operator's draft cart as a sale. Stock decrements and
// the sale record land in a single transaction; any line without enough stock
// aborts the whole commit and leaves both cart and inventory untouched.
type Service interface {
	Commit(ctx context.Context, operatorID, storeID uuid.UUID, cashier string) (*Receipt, error)
}

type service struct {
	carts       cartProvider
	catalogRepo *catalog.Repository
	salesRepo   *sales.Repository
	dbClient    *db.Client
	now         func() time.Time
}

// NewService constructs a checkout service instance.
func NewService(carts cartProvider, catalogRepo *catalog.Repository, salesRepo *sales.Repository, dbClient *db.Client) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart registry required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if salesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		carts:       carts,
		catalogRepo: catalogRepo,
		salesRepo:   salesRepo,
		dbClient:    dbClient,
		now:         time.Now,
	}, nil
}

func (s *service) Commit(ctx context.Context, operatorID, storeID uuid.UUID, cashier string) (*Receipt, error) {
	view := s.carts.Snapshot(operatorID)
	if !view.CanCommit {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart is not ready for checkout").
			WithDetails(map[string]any{
				"empty":           view.ItemCount == 0,
				"payment_entered": view.PaymentEntered,
				"change":          view.Change,
			})
	}

	sale := &models.Sale{
		StoreID:    storeID,
		OccurredAt: s.now(),
		Cashier:    cashier,
		Total:      view.Total,
		Items:      make([]models.SaleItem, 0, len(view.Lines)),
	}
	for i, line := range view.Lines {
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Position:  i,
		})
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		for _, line := range view.Lines {
			// the store-scoped decrement also rejects lines whose product
			// belongs to another store
			ok, err := catalogRepo.DecrementStock(ctx, storeID, line.ProductID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict,
					fmt.Sprintf("insufficient stock for %s", line.Name)).
					WithDetails(map[string]any{
						"product_id": line.ProductID,
						"requested":  line.Quantity,
					})
			}
		}
		if err := s.salesRepo.WithTx(tx).Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// the draft is only discarded once the sale is durable
	s.carts.Reset(operatorID)

	return &Receipt{Sale: sale, Payment: view.Payment, Change: view.Change}, nil
}
