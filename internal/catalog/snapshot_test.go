package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	"github.com/dukahub/dukapos-backend/pkg/redis"
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

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	source := setupTestClient(t, "snapshot_source")
	require.NoError(t, SeedDemo(context.Background(), source, config.PasswordConfig{}, nil))

	sourceSnap, err := NewSnapshot(source, nil)
	require.NoError(t, err)

	data, err := sourceSnap.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Stores, 2)
	require.Len(t, data.Products, 3)
	require.Len(t, data.Sales, 1)
	require.Len(t, data.PurchaseOrders, 1)
	require.Len(t, data.Sales[0].Items, 2)

	target := setupTestClient(t, "snapshot_target")
	targetSnap, err := NewSnapshot(target, nil)
	require.NoError(t, err)

	require.NoError(t, targetSnap.Import(context.Background(), data))

	restored, err := targetSnap.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, restored.Stores, 2)
	assert.Len(t, restored.Products, 3)
	require.Len(t, restored.Sales, 1)
	require.Len(t, restored.Sales[0].Items, 2)

	assert.Equal(t, data.Sales[0].ID, restored.Sales[0].ID)
	assert.Equal(t, "Mary Wanjiku", restored.Sales[0].Cashier)
	assert.True(t, data.Sales[0].Total.Equal(restored.Sales[0].Total))

	// receipt line order survives the trip
	assert.Equal(t, data.Sales[0].Items[0].Name, restored.Sales[0].Items[0].Name)
	assert.Equal(t, data.Sales[0].Items[1].Name, restored.Sales[0].Items[1].Name)
}

func TestSnapshotImportReplacesExisting(t *testing.T) {
	t.Parallel()

	client := setupTestClient(t, "snapshot_replace")
	require.NoError(t, SeedDemo(context.Background(), client, config.PasswordConfig{}, nil))

	snap, err := NewSnapshot(client, nil)
	require.NoError(t, err)

	require.NoError(t, snap.Import(context.Background(), &SnapshotData{}))

	var products int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(0), products)

	var sales int64
	require.NoError(t, client.DB().Model(&models.Sale{}).Count(&sales).Error)
	assert.Equal(t, int64(0), sales)
}

func TestSnapshotPersistRestore(t *testing.T) {
	t.Parallel()

	source := setupTestClient(t, "snapshot_persist")
	require.NoError(t, SeedDemo(context.Background(), source, config.PasswordConfig{}, nil))

	kv := newMemoryKV()
	sourceSnap, err := NewSnapshot(source, kv)
	require.NoError(t, err)
	require.NoError(t, sourceSnap.Persist(context.Background()))

	for _, collection := range []string{
		"inventory_stores",
		"inventory_products",
		"inventory_sales",
		"inventory_purchase_orders",
	} {
		_, found, err := kv.Get(context.Background(), redis.SnapshotKey(collection))
		require.NoError(t, err)
		assert.Truef(t, found, "collection %s not persisted", collection)
	}

	target := setupTestClient(t, "snapshot_restore")
	targetSnap, err := NewSnapshot(target, kv)
	require.NoError(t, err)
	require.NoError(t, targetSnap.Restore(context.Background()))

	var products int64
	require.NoError(t, target.DB().Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(3), products)
}

func TestSnapshotImportNilData(t *testing.T) {
	t.Parallel()

	client := setupTestClient(t, "snapshot_nil")
	snap, err := NewSnapshot(client, nil)
	require.NoError(t, err)

	assert.Error(t, snap.Import(context.Background(), nil))
}
