package cart_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/cart"
)

func item(id, vendor string, price int64) cart.Item {
	return cart.Item{ProductID: id, VendorID: vendor, Name: "producto " + id, UnitPrice: decimal.NewFromInt(price)}
}

// expectedTotals recalcula desde cero: Σ price × quantity.
func expectedTotals(c *cart.Cart) (int, decimal.Decimal) {
	n, sum := 0, decimal.Zero
	for _, it := range c.Items {
		n += it.Quantity
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return n, sum
}

func TestAdd_FusionaLineas(t *testing.T) {
	c := cart.New("u1")
	require.NoError(t, c.Add(item("p1", "v1", 100), 2))
	require.NoError(t, c.Add(item("p1", "v1", 100), 3))
	require.NoError(t, c.Add(item("p2", "v1", 50), 1))

	require.Len(t, c.Items, 2)
	assert.Equal(t, 5, c.Quantity("p1"))
	assert.Equal(t, 6, c.TotalItems)
	assert.True(t, decimal.NewFromInt(550).Equal(c.Subtotal))
}

func TestAdd_CantidadInvalida(t *testing.T) {
	c := cart.New("u1")
	err := c.Add(item("p1", "v1", 100), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity_CeroElimina(t *testing.T) {
	c := cart.New("u1")
	require.NoError(t, c.Add(item("p1", "v1", 100), 2))
	require.NoError(t, c.UpdateQuantity("p1", 0))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems)
	assert.True(t, c.Subtotal.IsZero())

	assert.ErrorIs(t, c.UpdateQuantity("nope", 1), domain.ErrNotFound)
}

func TestSaveForLater_YMoveToCart(t *testing.T) {
	c := cart.New("u1")
	require.NoError(t, c.Add(item("p1", "v1", 100), 2))
	require.NoError(t, c.Add(item("p2", "v2", 10), 1))

	require.NoError(t, c.SaveForLater("p1"))
	assert.Len(t, c.Saved, 1)
	assert.Equal(t, 1, c.TotalItems)
	assert.True(t, decimal.NewFromInt(10).Equal(c.Subtotal), "los guardados no suman al total")

	// Volver a agregar p1 mientras está guardado: se retira de guardados.
	require.NoError(t, c.Add(item("p1", "v1", 100), 1))
	assert.Empty(t, c.Saved)
	assert.Equal(t, 1, c.Quantity("p1"))

	require.NoError(t, c.SaveForLater("p1"))
	require.NoError(t, c.MoveToCart("p1"))
	assert.Equal(t, 1, c.Quantity("p1"))
	assert.ErrorIs(t, c.MoveToCart("p1"), domain.ErrNotFound)
}

func TestMoveToCart_FusionaConLineaExistente(t *testing.T) {
	// Estado rehidratado donde el producto está en ambas listas.
	c := &cart.Cart{
		UserID: "u1",
		Items:  []cart.Item{{ProductID: "p1", VendorID: "v1", UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
		Saved:  []cart.Item{{ProductID: "p1", VendorID: "v1", UnitPrice: decimal.NewFromInt(10), Quantity: 2}},
	}
	c.Normalize()
	require.NoError(t, c.MoveToCart("p1"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Quantity("p1"))
	assert.Empty(t, c.Saved)
	assert.True(t, decimal.NewFromInt(30).Equal(c.Subtotal))
}

func TestRemoveVendor_YByVendor(t *testing.T) {
	c := cart.New("u1")
	require.NoError(t, c.Add(item("p1", "v1", 100), 1))
	require.NoError(t, c.Add(item("p2", "v2", 20), 2))
	require.NoError(t, c.Add(item("p3", "v1", 30), 1))

	ids, groups := c.ByVendor()
	assert.Equal(t, []string{"v1", "v2"}, ids)
	assert.Len(t, groups["v1"], 2)

	c.RemoveVendor("v1")
	assert.Equal(t, 2, c.TotalItems)
	assert.True(t, decimal.NewFromInt(40).Equal(c.Subtotal))
}

func TestReprice(t *testing.T) {
	c := cart.New("u1")
	require.NoError(t, c.Add(item("p1", "v1", 100), 3))
	c.Reprice("p1", decimal.NewFromInt(90))
	assert.True(t, decimal.NewFromInt(270).Equal(c.Subtotal))
}

// Propiedad: después de cualquier secuencia de operaciones, los totales son Σ price × quantity.
func TestTotales_SecuenciaAleatoria(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	ids := []string{"p1", "p2", "p3", "p4"}
	prices := map[string]int64{"p1": 120, "p2": 35, "p3": 999, "p4": 1}

	c := cart.New("u1")
	for step := 0; step < 2000; step++ {
		id := ids[rng.IntN(len(ids))]
		switch rng.IntN(7) {
		case 0, 1:
			_ = c.Add(item(id, "v"+id, prices[id]), rng.IntN(4)+1)
		case 2:
			c.Remove(id)
		case 3:
			_ = c.UpdateQuantity(id, rng.IntN(5))
		case 4:
			_ = c.SaveForLater(id)
		case 5:
			_ = c.MoveToCart(id)
		case 6:
			if rng.IntN(20) == 0 {
				c.Clear()
			}
		}
		n, sum := expectedTotals(c)
		require.Equal(t, n, c.TotalItems, "paso %d", step)
		require.True(t, sum.Equal(c.Subtotal), "paso %d: %s != %s", step, sum, c.Subtotal)
		for _, it := range c.Items {
			require.Positive(t, it.Quantity)
		}
	}
}
