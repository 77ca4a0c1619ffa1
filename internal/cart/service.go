package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
)

// View is an immutable snapshot of a cart handed to callers and responses.
type View struct {
	Lines          []Line          `json:"lines"`
	ItemCount      int             `json:"item_count"`
	Total          decimal.Decimal `json:"total"`
	PaymentEntered bool            `json:"payment_entered"`
	Payment        decimal.Decimal `json:"payment"`
	Change         decimal.Decimal `json:"change"`
	CanCommit      bool            `json:"can_commit"`
}

// Service keeps one draft cart per operator. Carts live only in memory; an
// operator walking away simply abandons the draft.
type Service struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

// NewService builds an empty cart registry.
func NewService() *Service {
	return &Service{carts: map[uuid.UUID]*Cart{}}
}

func (s *Service) cartFor(operatorID uuid.UUID) *Cart {
	c, ok := s.carts[operatorID]
	if !ok {
		c = New()
		s.carts[operatorID] = c
	}
	return c
}

// Add puts quantity units of the product into the operator's cart. The request
// is rejected when the cumulative draft quantity would exceed the product's
// available stock, so a cart can never promise more than the shelf holds.
func (s *Service) Add(operatorID uuid.UUID, product *models.Product, quantity int) (View, error) {
	if product == nil {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(operatorID)
	if c.QuantityOf(product.ID)+quantity > product.Stock {
		return snapshot(c), pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("insufficient stock for %s", product.Name)).
			WithDetails(map[string]any{
				"product_id": product.ID,
				"available":  product.Stock,
				"requested":  c.QuantityOf(product.ID) + quantity,
			})
	}
	c.Add(product, quantity)
	return snapshot(c), nil
}

// UpdateQuantity overwrites a line's quantity; zero or below removes the line.
func (s *Service) UpdateQuantity(operatorID, productID uuid.UUID, quantity int) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(operatorID)
	c.UpdateQuantity(productID, quantity)
	return snapshot(c)
}

// Remove deletes a line; removing an absent product is a no-op.
func (s *Service) Remove(operatorID, productID uuid.UUID) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(operatorID)
	c.Remove(productID)
	return snapshot(c)
}

// SetPayment records the tendered amount as typed by the operator.
func (s *Service) SetPayment(operatorID uuid.UUID, raw string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(operatorID)
	c.SetPayment(raw)
	return snapshot(c)
}

// Clear empties the operator's cart and resets the payment entry.
func (s *Service) Clear(operatorID uuid.UUID) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(operatorID)
	c.Clear()
	return snapshot(c)
}

// Snapshot returns the operator's current cart state.
func (s *Service) Snapshot(operatorID uuid.UUID) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cartFor(operatorID))
}

// Reset drops the operator's cart after a committed checkout.
func (s *Service) Reset(operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, operatorID)
}

func snapshot(c *Cart) View {
	return View{
		Lines:          c.Lines(),
		ItemCount:      c.ItemCount(),
		Total:          c.Total(),
		PaymentEntered: c.PaymentEntered(),
		Payment:        c.Payment(),
		Change:         c.Change(),
		CanCommit:      c.CanCommit(),
	}
}
