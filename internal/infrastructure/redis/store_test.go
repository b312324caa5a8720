package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/domain/cart"
	infraredis "github.com/jhoicas/supermall-api/internal/infrastructure/redis"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// ── CartStore ─────────────────────────────────────────────────────────────────

func TestCartStore_GuardaYRehidrata(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	store := infraredis.NewCartStore(client, time.Hour)

	empty, err := store.Load(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", empty.UserID)
	assert.Empty(t, empty.Items)

	c := cart.New("u-1")
	require.NoError(t, c.Add(cart.Item{ProductID: "p-1", VendorID: "v-1", Name: "Masala Tea", UnitPrice: decimal.RequireFromString("120.50")}, 2))
	require.NoError(t, c.Add(cart.Item{ProductID: "p-2", VendorID: "v-1", Name: "Jute Bag", UnitPrice: decimal.RequireFromString("80")}, 1))
	require.NoError(t, c.SaveForLater("p-2"))
	require.NoError(t, store.Save(ctx, c))

	assert.True(t, mr.Exists("cart:u-1"))
	assert.Equal(t, time.Hour, mr.TTL("cart:u-1"))

	got, err := store.Load(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Saved, 1)
	assert.Equal(t, 2, got.TotalItems)
	assert.True(t, decimal.RequireFromString("241").Equal(got.Subtotal))

	// cada escritura renueva la vigencia
	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.Save(ctx, got))
	assert.Equal(t, time.Hour, mr.TTL("cart:u-1"))

	mr.FastForward(2 * time.Hour)
	expired, err := store.Load(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, expired.Items)
}

func TestCartStore_Delete(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	store := infraredis.NewCartStore(client, 0)

	c := cart.New("u-2")
	require.NoError(t, c.Add(cart.Item{ProductID: "p-1", VendorID: "v-1", UnitPrice: decimal.NewFromInt(10)}, 1))
	require.NoError(t, store.Save(ctx, c))
	assert.Equal(t, infraredis.CartTTL, mr.TTL("cart:u-2"))

	require.NoError(t, store.Delete(ctx, "u-2"))
	assert.False(t, mr.Exists("cart:u-2"))
}

func TestCartStore_JSONInvalido(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("cart:u-3", "{no es json"))
	_, err := infraredis.NewCartStore(client, time.Hour).Load(context.Background(), "u-3")
	assert.Error(t, err)
}

// ── IdempotencyStore ──────────────────────────────────────────────────────────

func TestIdempotencyStore_MarcaUnaVezYOlvida(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	store := infraredis.NewIdempotencyStore(client, 0)

	fresh, err := store.MarkProcessed(ctx, "stripe:event:evt_1")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, infraredis.EventTTL, mr.TTL("idempotency:stripe:event:evt_1"))

	fresh, err = store.MarkProcessed(ctx, "stripe:event:evt_1")
	require.NoError(t, err)
	assert.False(t, fresh, "segunda entrega del mismo evento")

	require.NoError(t, store.Forget(ctx, "stripe:event:evt_1"))
	fresh, err = store.MarkProcessed(ctx, "stripe:event:evt_1")
	require.NoError(t, err)
	assert.True(t, fresh, "tras Forget el reintento se procesa")

	mr.FastForward(infraredis.EventTTL + time.Second)
	fresh, err = store.MarkProcessed(ctx, "stripe:event:evt_1")
	require.NoError(t, err)
	assert.True(t, fresh, "la marca expira")
}
