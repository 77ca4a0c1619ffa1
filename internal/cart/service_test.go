package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
)

func TestServiceAddRejectsOverStock(t *testing.T) {
	t.Parallel()

	svc := NewService()
	operator := uuid.New()
	bread := product("Bread", "65", 8)

	view, err := svc.Add(operator, bread, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, view.ItemCount)

	// cumulative draft quantity may never exceed the shelf
	_, err = svc.Add(operator, bread, 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	view = svc.Snapshot(operator)
	assert.Equal(t, 8, view.ItemCount)
}

func TestServiceCartsAreIsolatedPerOperator(t *testing.T) {
	t.Parallel()

	svc := NewService()
	alice := uuid.New()
	bob := uuid.New()
	coke := product("Coca Cola 500ml", "80", 120)

	_, err := svc.Add(alice, coke, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Snapshot(bob).ItemCount)
	assert.Equal(t, 2, svc.Snapshot(alice).ItemCount)
}

func TestServiceReset(t *testing.T) {
	t.Parallel()

	svc := NewService()
	operator := uuid.New()

	_, err := svc.Add(operator, product("Rice 2kg", "280", 45), 1)
	require.NoError(t, err)
	svc.SetPayment(operator, "300")

	svc.Reset(operator)

	view := svc.Snapshot(operator)
	assert.Equal(t, 0, view.ItemCount)
	assert.False(t, view.PaymentEntered)
	assert.False(t, view.CanCommit)
}

func TestServiceSnapshotFields(t *testing.T) {
	t.Parallel()

	svc := NewService()
	operator := uuid.New()

	_, err := svc.Add(operator, product("Rice 2kg", "280", 45), 1)
	require.NoError(t, err)
	view := svc.SetPayment(operator, "500")

	assert.True(t, view.Total.Equal(decimal.RequireFromString("280")))
	assert.True(t, view.Payment.Equal(decimal.RequireFromString("500")))
	assert.True(t, view.Change.Equal(decimal.RequireFromString("220")))
	assert.True(t, view.CanCommit)
}

func TestServiceAddNilProduct(t *testing.T) {
	t.Parallel()

	svc := NewService()
	_, err := svc.Add(uuid.New(), nil, 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
