package cart

import (
	"sync"
	"testing"
	"time"

	"herbanusa-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jahe   = product.Product{ID: "1", Name: "Jahe Merah", Price: 35000, Stock: 50}
	kunyit = product.Product{ID: "2", Name: "Kunyit", Price: 15000, Stock: 30}
)

func TestCart_AddItem(t *testing.T) {
	c := New()
	c.AddItem(jahe)
	c.AddItem(kunyit)
	c.AddItem(jahe)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "2", items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("Replace", func(t *testing.T) {
		c := New()
		c.AddItem(jahe)
		require.NoError(t, c.SetQuantity("1", 7))
		assert.Equal(t, 7, c.Quantity("1"))
	})

	t.Run("ZeroRemoves", func(t *testing.T) {
		c := New()
		c.AddItem(jahe)
		c.AddItem(kunyit)
		require.NoError(t, c.SetQuantity("1", 0))
		assert.Equal(t, 0, c.Quantity("1"))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("AbsentIsNoop", func(t *testing.T) {
		c := New()
		c.AddItem(jahe)
		require.NoError(t, c.SetQuantity("9", 3))
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 1, c.ItemCount())
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		c := New()
		c.AddItem(jahe)
		assert.ErrorIs(t, c.SetQuantity("1", -1), ErrInvalidQuantity)
		assert.Equal(t, 1, c.Quantity("1"))
	})
}

func TestCart_Invariants(t *testing.T) {
	c := New()
	ops := []func(){
		func() { c.AddItem(jahe) },
		func() { c.AddItem(kunyit) },
		func() { _ = c.SetQuantity("1", 4) },
		func() { c.AddItem(jahe) },
		func() { _ = c.SetQuantity("2", 0) },
		func() { c.AddItem(kunyit) },
		func() { _ = c.SetQuantity("3", 2) },
	}

	for _, op := range ops {
		op()

		seen := map[string]bool{}
		var count int
		var subtotal int64
		for _, li := range c.Items() {
			assert.False(t, seen[li.Product.ID], "duplicate line for %s", li.Product.ID)
			seen[li.Product.ID] = true
			assert.GreaterOrEqual(t, li.Quantity, 1)
			count += li.Quantity
			subtotal += li.Product.Price * int64(li.Quantity)
		}
		assert.Equal(t, count, c.ItemCount())
		assert.Equal(t, subtotal, c.Subtotal())
	}
}

func TestCart_Clear(t *testing.T) {
	c := New()
	assert.False(t, c.Clear())

	c.AddItem(jahe)
	assert.True(t, c.Clear())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Subtotal())
}

func TestCart_DrainAndRestore(t *testing.T) {
	c := New()
	c.AddItem(jahe)
	c.AddItem(jahe)

	drained := c.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, 2, drained[0].Quantity)
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Drain())

	c.AddItem(kunyit)
	c.AddItem(jahe)
	c.Restore(drained)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Product.ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "2", items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCart_Summary(t *testing.T) {
	c := New()
	empty := c.Summary()
	assert.Equal(t, int64(0), empty.Shipping)
	assert.Equal(t, int64(0), empty.Total)

	c.AddItem(jahe)
	c.AddItem(kunyit)
	c.AddItem(kunyit)
	s := c.Summary()
	assert.Equal(t, 3, s.ItemCount)
	assert.Equal(t, int64(65000), s.Subtotal)
	assert.Equal(t, ShippingPreview, s.Shipping)
	assert.Equal(t, int64(80000), s.Total)
}

func TestCart_SnapshotIsCopy(t *testing.T) {
	c := New()
	c.AddItem(jahe)

	snap := c.Snapshot()
	snap[0].Quantity = 99
	assert.Equal(t, 1, c.Quantity("1"))
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddItem(jahe)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 50, c.ItemCount())
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		in    int
		want  int
	}{
		{"WithinRange", 10, 3, 3},
		{"BelowOne", 10, 0, 1},
		{"AboveStock", 10, 25, 10},
		{"NoStock", 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampQuantity(product.Product{Stock: tt.stock}, tt.in))
		})
	}
}

func TestStore(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	a := s.Get("a")
	a.AddItem(jahe)
	assert.Same(t, a, s.Get("a"))
	s.Get("b")
	assert.Equal(t, 2, s.Len())

	now = now.Add(30 * time.Second)
	s.Get("a")
	now = now.Add(45 * time.Second)

	assert.Equal(t, []string{"b"}, s.Sweep())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.Get("a").ItemCount())

	s.Drop("a")
	assert.Equal(t, 0, s.Len())
}

func TestStore_NoTTL(t *testing.T) {
	s := NewStore(0)
	s.Get("a")
	assert.Empty(t, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestCart_AddItems(t *testing.T) {
	c := New()
	assert.Equal(t, 3, c.AddItems(jahe, 3))
	assert.Equal(t, 1, c.AddItems(kunyit, 0))
	assert.Equal(t, 0, c.AddItems(product.Product{ID: "x", Price: 1}, 2))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.ItemCount())
}
