package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
)

// Service exposes read access to the sales history. Sales are only ever
// created by checkout, inside its transaction.
type Service interface {
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Sale, error)
	TodayTotal(ctx context.Context, storeID uuid.UUID, now time.Time) (decimal.Decimal, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a sales service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]models.Sale, error) {
	sales, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return sales, nil
}

// TodayTotal sums the totals of all sales whose occurred_at falls on the same
// calendar day as now, in the operator's local timezone.
func (s *service) TodayTotal(ctx context.Context, storeID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	sales, err := s.repo.ListBetween(ctx, storeID, start, end)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list today sales")
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return total, nil
}
