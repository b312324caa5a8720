// Package cart implementa el estado del carrito como un reductor puro: cada operación
// transforma la lista de líneas y recalcula los totales derivados.
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item línea del carrito. UnitPrice se refresca desde el catálogo al leer el carrito.
type Item struct {
	ProductID string          `json:"product_id"`
	VendorID  string          `json:"vendor_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal UnitPrice × Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart estado persistido por usuario. TotalItems y Subtotal nunca se editan a mano.
type Cart struct {
	UserID     string          `json:"user_id"`
	Items      []Item          `json:"items"`
	Saved      []Item          `json:"saved"` // guardados para después, no suman al total
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// New crea un carrito vacío.
func New(userID string) *Cart {
	return &Cart{UserID: userID, Items: []Item{}, Saved: []Item{}, Subtotal: decimal.Zero}
}

// Add agrega qty unidades; si el producto ya está en el carrito suma la cantidad.
// Si estaba guardado para después, lo saca de esa lista.
func (c *Cart) Add(item Item, qty int) error {
	if item.ProductID == "" || qty <= 0 {
		return ErrInvalidQuantity
	}
	c.Saved = without(c.Saved, item.ProductID)
	if i := indexOf(c.Items, item.ProductID); i >= 0 {
		c.Items[i].Quantity += qty
		c.Items[i].UnitPrice = item.UnitPrice
	} else {
		item.Quantity = qty
		c.Items = append(c.Items, item)
	}
	c.recalculate()
	return nil
}

// Remove quita la línea del producto (no falla si no existe).
func (c *Cart) Remove(productID string) {
	c.Items = without(c.Items, productID)
	c.recalculate()
}

// UpdateQuantity fija la cantidad de una línea; qty <= 0 elimina la línea.
func (c *Cart) UpdateQuantity(productID string, qty int) error {
	i := indexOf(c.Items, productID)
	if i < 0 {
		return ErrItemNotFound
	}
	if qty <= 0 {
		c.Items = without(c.Items, productID)
	} else {
		c.Items[i].Quantity = qty
	}
	c.recalculate()
	return nil
}

// SaveForLater mueve una línea del carrito a la lista de guardados.
func (c *Cart) SaveForLater(productID string) error {
	i := indexOf(c.Items, productID)
	if i < 0 {
		return ErrItemNotFound
	}
	item := c.Items[i]
	c.Items = without(c.Items, productID)
	if j := indexOf(c.Saved, productID); j >= 0 {
		c.Saved[j].Quantity += item.Quantity
	} else {
		c.Saved = append(c.Saved, item)
	}
	c.recalculate()
	return nil
}

// MoveToCart devuelve un guardado al carrito, fusionando con una línea existente.
func (c *Cart) MoveToCart(productID string) error {
	j := indexOf(c.Saved, productID)
	if j < 0 {
		return ErrItemNotFound
	}
	item := c.Saved[j]
	c.Saved = without(c.Saved, productID)
	if i := indexOf(c.Items, productID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}
	c.recalculate()
	return nil
}

// Discard quita el producto del carrito y de guardados (ya no existe en el catálogo).
func (c *Cart) Discard(productID string) {
	c.Items = without(c.Items, productID)
	c.Saved = without(c.Saved, productID)
	c.recalculate()
}

// Clear vacía el carrito conservando los guardados.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.recalculate()
}

// RemoveVendor quita las líneas de una tienda (después de un checkout parcial).
func (c *Cart) RemoveVendor(vendorID string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.VendorID != vendorID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	c.recalculate()
}

// Reprice actualiza el precio de una línea (en carrito o guardados) y recalcula.
func (c *Cart) Reprice(productID string, price decimal.Decimal) {
	if i := indexOf(c.Items, productID); i >= 0 {
		c.Items[i].UnitPrice = price
	}
	if j := indexOf(c.Saved, productID); j >= 0 {
		c.Saved[j].UnitPrice = price
	}
	c.recalculate()
}

// Quantity cantidad actual de un producto en el carrito (0 si no está).
func (c *Cart) Quantity(productID string) int {
	if i := indexOf(c.Items, productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// ByVendor agrupa las líneas por tienda, en orden de primera aparición.
func (c *Cart) ByVendor() (vendorIDs []string, groups map[string][]Item) {
	groups = make(map[string][]Item)
	for _, it := range c.Items {
		if _, ok := groups[it.VendorID]; !ok {
			vendorIDs = append(vendorIDs, it.VendorID)
		}
		groups[it.VendorID] = append(groups[it.VendorID], it)
	}
	return vendorIDs, groups
}

// IsEmpty indica si no hay líneas para comprar.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) recalculate() {
	total := 0
	sum := decimal.Zero
	for _, it := range c.Items {
		total += it.Quantity
		sum = sum.Add(it.Subtotal())
	}
	c.TotalItems = total
	c.Subtotal = sum
	if c.Items == nil {
		c.Items = []Item{}
	}
	if c.Saved == nil {
		c.Saved = []Item{}
	}
}

// Normalize recalcula totales de un carrito recién deserializado.
func (c *Cart) Normalize() {
	c.recalculate()
}

func indexOf(items []Item, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func without(items []Item, productID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
