package cart

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
)

// Line is one draft cart entry. It snapshots the product's display fields at
// add time so a later catalog edit never changes a sale in progress.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns unit price × quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the draft transaction of a single operator. It is not safe for
// concurrent use; the Service serializes access.
type Cart struct {
	lines      []Line
	rawPayment string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges quantity into an existing line for the product or appends a new
// snapshot line. A non-positive quantity defaults to one.
func (c *Cart) Add(product *models.Product, quantity int) {
	if product == nil {
		return
	}
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Barcode:   product.Barcode,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
}

// UpdateQuantity overwrites the line's quantity; a value of zero or below
// removes the line. Unknown products are a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the matching line. Removing an absent product is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and resets the payment entry.
func (c *Cart) Clear() {
	c.lines = nil
	c.rawPayment = ""
}

// Lines returns a copy of the current draft lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// QuantityOf returns the draft quantity already held for a product.
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// SetPayment records the operator's tendered amount as entered.
func (c *Cart) SetPayment(raw string) {
	c.rawPayment = strings.TrimSpace(raw)
}

// PaymentEntered reports whether the operator has typed a payment at all.
func (c *Cart) PaymentEntered() bool {
	return c.rawPayment != ""
}

// Payment parses the tendered amount; empty or invalid input counts as zero.
func (c *Cart) Payment() decimal.Decimal {
	if c.rawPayment == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(c.rawPayment)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Total sums unit price × quantity over the current lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Change is the tendered payment minus the total. Negative change means the
// payment does not cover the sale.
func (c *Cart) Change() decimal.Decimal {
	return c.Payment().Sub(c.Total())
}

// CanCommit is the single checkout precondition: a non-empty cart, an entered
// payment, and non-negative change.
func (c *Cart) CanCommit() bool {
	return !c.IsEmpty() && c.PaymentEntered() && c.Change().GreaterThanOrEqual(decimal.Zero)
}
