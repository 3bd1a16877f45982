package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProductA() Product {
	return Product{ID: 1, Name: "Sofá Monterrey", Price: 10, Stock: 5}
}

func testProductB() Product {
	return Product{ID: 2, Name: "Mesa de Centro", Price: 25, Stock: 3}
}

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store, err := New("42", storage)
	require.NoError(t, err)
	return store, storage
}

func TestAddItemMergesQuantities(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddItem(testProductA(), 3))
	assert.Equal(t, 30.0, store.Total())
	assert.Equal(t, 3, store.ItemCount())

	// Sum would be 6 > stock 5: rejected in full, cart unchanged.
	err := store.AddItem(testProductA(), 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, uint(1), stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	require.NoError(t, store.AddItem(testProductA(), 2))
	assert.Equal(t, 5, store.ItemCount())
}

func TestAddItemRejectsNewLineOverStock(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.AddItem(testProductB(), 4)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Empty(t, store.Lines())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Error(t, store.AddItem(testProductA(), 0))
	assert.Error(t, store.AddItem(testProductA(), -1))
	assert.Empty(t, store.Lines())
}

func TestTotalAndRemove(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddItem(testProductA(), 2))
	require.NoError(t, store.AddItem(testProductB(), 1))
	assert.Equal(t, 45.0, store.Total())
	assert.Equal(t, store.Total(), store.Total(), "repeated calls without mutation must agree")

	require.NoError(t, store.RemoveItem(1))
	assert.Equal(t, 25.0, store.Total())

	// Absent id is a no-op.
	require.NoError(t, store.RemoveItem(99))
	assert.Equal(t, 25.0, store.Total())
}

func TestUpdateQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(testProductA(), 2))

	require.NoError(t, store.UpdateQuantity(1, 5))
	assert.Equal(t, 5, store.ItemCount())

	err := store.UpdateQuantity(1, 6)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 5, store.ItemCount(), "rejected update must not mutate state")
}

func TestUpdateQuantityZeroEquivalentToRemove(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(testProductA(), 2))

	require.NoError(t, store.UpdateQuantity(1, 0))
	assert.Empty(t, store.Lines())

	// Absent id with zero quantity is still a no-op.
	require.NoError(t, store.UpdateQuantity(99, 0))
	assert.Empty(t, store.Lines())
}

func TestClearCart(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(testProductA(), 2))
	require.NoError(t, store.AddItem(testProductB(), 1))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Lines())
	assert.Equal(t, 0.0, store.Total())
	assert.Equal(t, 0, store.ItemCount())
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	store, err := New("42", storage)
	require.NoError(t, err)

	require.NoError(t, store.AddItem(testProductB(), 1))
	require.NoError(t, store.AddItem(testProductA(), 2))
	require.NoError(t, store.UpdateQuantity(1, 4))

	// A new store over the same storage reproduces the collection exactly,
	// including insertion order.
	reloaded, err := New("42", storage)
	require.NoError(t, err)
	assert.Equal(t, store.Lines(), reloaded.Lines())
	assert.Equal(t, store.Total(), reloaded.Total())

	// Different owners do not share carts.
	other, err := New("7", storage)
	require.NoError(t, err)
	assert.Empty(t, other.Lines())
}
