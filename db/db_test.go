package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupcakery/cart"
	"cupcakery/models"
)

// Runs only against a real server: MONGO_TEST_URI=mongodb://localhost:27017 go test ./db
func testPersistence(t *testing.T) *Persistence {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, uri, "cupcakery_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		CartCollection.Database().Drop(context.Background())
		client.Disconnect(context.Background())
	})
	require.NoError(t, EnsureIndexes(ctx, CartCollection, time.Hour))
	return NewPersistence(CartCollection)
}

func TestPersistenceRoundTrip(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	_, ok, err := p.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Set(ctx, "cart", "[]"))
	require.NoError(t, p.Set(ctx, "cart", `[{"id":"a"}]`))
	val, ok, err := p.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, val)

	require.NoError(t, p.Remove(ctx, "cart"))
	_, ok, err = p.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartStoreOnMongo(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()
	kv := cart.Scoped(p, "visitor-1")

	s := cart.NewStore(kv)
	s.Load(ctx)
	s.AddOne(ctx, models.MenuItem{ID: "a", Price: models.NewPrice(300)})
	s.AddOne(ctx, models.MenuItem{ID: "b", Price: models.NewPrice(200)})
	s.RemoveOne(ctx, "a")

	lines := cart.NewStore(kv).Load(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].ID)
}
