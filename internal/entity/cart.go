package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// LineItemID derives the identity of a cart line from the unit and its chosen
// modifiers. The same product with a different variant or modifier set is a
// different line. Modifier order does not matter.
func LineItemID(productID, variantID string, modifierIDs []string) string {
	ids := append([]string(nil), modifierIDs...)
	sort.Strings(ids)
	h := fnv.New64a()
	_, _ = h.Write([]byte(productID + "|" + variantID + "|" + strings.Join(ids, ",")))
	return fmt.Sprintf("li_%016x", h.Sum64())
}

// LineItem is one distinct entry in a cart.
type LineItem struct {
	ID                     string     `json:"id"`
	BusinessID             string     `json:"businessId"`
	ProductID              string     `json:"productId"`
	VariantID              string     `json:"variantId,omitempty"`
	Modifiers              []Modifier `json:"modifiers,omitempty"`
	Quantity               int        `json:"quantity"`
	UnitPriceCents         int64      `json:"unitPriceCents"`
	UnitOriginalPriceCents int64      `json:"unitOriginalPriceCents,omitempty"`
}

// UnitTotalCents is the price of one unit of this line including modifiers.
func (li LineItem) UnitTotalCents() int64 {
	total := li.UnitPriceCents
	for _, m := range li.Modifiers {
		total += m.PriceCents
	}
	return total
}

// TotalCents is the line total: (unit price + modifiers) * quantity.
func (li LineItem) TotalCents() int64 {
	return li.UnitTotalCents() * int64(li.Quantity)
}

// Cart is the ordered line-item collection for exactly one tenant. Insertion
// order is preserved so the storefront renders lines in the order they were
// added.
type Cart struct {
	BusinessID string     `json:"businessId"`
	Items      []LineItem `json:"items"`
}

// Find returns a pointer to the line with the given identity, or nil.
func (c *Cart) Find(lineItemID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ID == lineItemID {
			return &c.Items[i]
		}
	}
	return nil
}

// Quantity returns the quantity already in the cart for a line identity.
func (c *Cart) Quantity(lineItemID string) int {
	if li := c.Find(lineItemID); li != nil {
		return li.Quantity
	}
	return 0
}

// Upsert appends the line or replaces the existing one with the same identity.
func (c *Cart) Upsert(li LineItem) {
	if existing := c.Find(li.ID); existing != nil {
		*existing = li
		return
	}
	c.Items = append(c.Items, li)
}

// Remove drops the line with the given identity, preserving order.
func (c *Cart) Remove(lineItemID string) {
	for i := range c.Items {
		if c.Items[i].ID == lineItemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SubtotalCents sums every line total.
func (c *Cart) SubtotalCents() int64 {
	var sum int64
	for _, li := range c.Items {
		sum += li.TotalCents()
	}
	return sum
}

// UnitCount sums line quantities (the badge number on the cart icon).
func (c *Cart) UnitCount() int {
	var n int
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.Items) == 0 }
