package rbac

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	"github.com/dukahub/dukapos-backend/pkg/enums"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/redis"
	"github.com/dukahub/dukapos-backend/pkg/security"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

var _ redis.KV = (*memoryKV)(nil)

type stubUserLoader struct {
	user *models.User
}

func (s *stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	return &models.User{
		ID:           uuid.New(),
		Name:         "Grace Njeri",
		Email:        "grace@naivas.com",
		PasswordHash: hash,
		Role:         enums.RoleManager,
	}
}

func TestElevateAndVerify(t *testing.T) {
	t.Parallel()

	user := testUser(t, "duka1234")
	kv := newMemoryKV()
	elev, err := NewElevation(&stubUserLoader{user: user}, kv, time.Minute)
	require.NoError(t, err)

	token, err := elev.Elevate(context.Background(), user.ID, "duka1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := elev.Verify(context.Background(), user.ID, token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = elev.Verify(context.Background(), user.ID, "forged")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestElevateWrongPassword(t *testing.T) {
	t.Parallel()

	user := testUser(t, "duka1234")
	elev, err := NewElevation(&stubUserLoader{user: user}, newMemoryKV(), time.Minute)
	require.NoError(t, err)

	_, err = elev.Elevate(context.Background(), user.ID, "wrong")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestElevateUnknownUser(t *testing.T) {
	t.Parallel()

	elev, err := NewElevation(&stubUserLoader{}, newMemoryKV(), time.Minute)
	require.NoError(t, err)

	_, err = elev.Elevate(context.Background(), uuid.New(), "duka1234")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestElevateEmptyPassword(t *testing.T) {
	t.Parallel()

	user := testUser(t, "duka1234")
	elev, err := NewElevation(&stubUserLoader{user: user}, newMemoryKV(), time.Minute)
	require.NoError(t, err)

	_, err = elev.Elevate(context.Background(), user.ID, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRevokeDropsGrant(t *testing.T) {
	t.Parallel()

	user := testUser(t, "duka1234")
	elev, err := NewElevation(&stubUserLoader{user: user}, newMemoryKV(), time.Minute)
	require.NoError(t, err)

	token, err := elev.Elevate(context.Background(), user.ID, "duka1234")
	require.NoError(t, err)

	require.NoError(t, elev.Revoke(context.Background(), user.ID))

	ok, err := elev.Verify(context.Background(), user.ID, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
