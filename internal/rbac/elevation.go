package rbac

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/redis"
	"github.com/dukahub/dukapos-backend/pkg/security"
)

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Elevation implements step-up authorization for destructive actions. A user
// re-enters their password and receives a short-lived elevation token; the
// token must accompany the destructive request. Admins are exempt at the
// middleware level.
type Elevation struct {
	users userLoader
	kv    redis.KV
	ttl   time.Duration
}

// NewElevation builds the step-up service.
func NewElevation(users userLoader, kv redis.KV, ttl time.Duration) (*Elevation, error) {
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if kv == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Elevation{users: users, kv: kv, ttl: ttl}, nil
}

// TTL reports how long a minted token stays valid.
func (e *Elevation) TTL() time.Duration {
	return e.ttl
}

// Elevate verifies the operator's own credential and mints an elevation token.
// Any failure leaves no pending state behind.
func (e *Elevation) Elevate(ctx context.Context, userID uuid.UUID, password string) (string, error) {
	if password == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "password is required").
			WithDetails(map[string]string{"password": "is required"})
	}

	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token := uuid.NewString()
	if err := e.kv.Set(ctx, redis.ElevationKey(userID.String()), token, e.ttl); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store elevation token")
	}
	return token, nil
}

// Verify reports whether the presented token matches the live elevation grant.
func (e *Elevation) Verify(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	stored, found, err := e.kv.Get(ctx, redis.ElevationKey(userID.String()))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load elevation token")
	}
	if !found {
		return false, nil
	}
	return stored == token, nil
}

// Revoke drops any live elevation grant for the user, e.g. on logout.
func (e *Elevation) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := e.kv.Del(ctx, redis.ElevationKey(userID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke elevation token")
	}
	return nil
}
