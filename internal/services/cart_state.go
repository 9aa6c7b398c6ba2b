package service

import (
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
)

// CartState holds one session's cart lines, the checkout selection and
// per-line quantities. It is not safe for concurrent use; the owning
// Session serialises access.
type CartState struct {
	lines     []models.CartLine
	selected  map[string]struct{}
	listeners []func()
}

func NewCartState(lines []models.CartLine) *CartState {
	return &CartState{
		lines:    append([]models.CartLine(nil), lines...),
		selected: make(map[string]struct{}),
	}
}

// OnChange registers fn to run after every successful mutation.
func (c *CartState) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *CartState) changed() {
	for _, fn := range c.listeners {
		fn()
	}
}

func (c *CartState) indexOf(cartID string) int {
	for i := range c.lines {
		if c.lines[i].CartID == cartID {
			return i
		}
	}

	return -1
}

func (c *CartState) Lines() []models.CartLine {
	return append([]models.CartLine(nil), c.lines...)
}

func (c *CartState) Line(cartID string) (models.CartLine, bool) {
	i := c.indexOf(cartID)
	if i < 0 {
		return models.CartLine{}, false
	}

	return c.lines[i], true
}

func (c *CartState) Len() int {
	return len(c.lines)
}

// CheckQuantity reports the error SetQuantity would return, without mutating.
func (c *CartState) CheckQuantity(cartID string, quantity int) error {
	i := c.indexOf(cartID)
	if i < 0 {
		return errors.LineNotFoundError(cartID)
	}

	line := c.lines[i]

	if !line.IsActive {
		return errors.ProductInactiveError(cartID)
	}

	if quantity < 1 {
		return errors.QuantityOutOfRangeError(quantity)
	}

	if quantity > line.Stock {
		return errors.InsufficientStockError(quantity, line.Stock)
	}

	return nil
}

func (c *CartState) SetQuantity(cartID string, quantity int) error {
	if err := c.CheckQuantity(cartID, quantity); err != nil {
		return err
	}

	i := c.indexOf(cartID)
	if c.lines[i].Quantity == quantity {
		return nil
	}

	c.lines[i].Quantity = quantity
	c.changed()

	return nil
}

func (c *CartState) ToggleSelect(cartID string) error {
	i := c.indexOf(cartID)
	if i < 0 {
		return errors.LineNotFoundError(cartID)
	}

	if !c.lines[i].Selectable() {
		return errors.UnselectableError(cartID)
	}

	if _, ok := c.selected[cartID]; ok {
		delete(c.selected, cartID)
	} else {
		c.selected[cartID] = struct{}{}
	}

	c.changed()

	return nil
}

func (c *CartState) SelectAll() {
	for _, line := range c.lines {
		if line.Selectable() {
			c.selected[line.CartID] = struct{}{}
		}
	}

	c.changed()
}

func (c *CartState) ClearAll() {
	clear(c.selected)
	c.changed()
}

// RemoveLine is idempotent: removing an absent line succeeds without signalling.
func (c *CartState) RemoveLine(cartID string) {
	i := c.indexOf(cartID)
	if i < 0 {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.selected, cartID)
	c.changed()
}

func (c *CartState) IsSelected(cartID string) bool {
	_, ok := c.selected[cartID]

	return ok
}

// Selected returns the selected lines in cart order.
func (c *CartState) Selected() []models.CartLine {
	out := make([]models.CartLine, 0, len(c.selected))

	for _, line := range c.lines {
		if _, ok := c.selected[line.CartID]; ok {
			out = append(out, line)
		}
	}

	return out
}

func (c *CartState) SelectedIDs() []string {
	ids := make([]string, 0, len(c.selected))

	for _, line := range c.lines {
		if _, ok := c.selected[line.CartID]; ok {
			ids = append(ids, line.CartID)
		}
	}

	return ids
}

// Restore re-applies a persisted selection, keeping only lines that are still selectable.
func (c *CartState) Restore(cartIDs []string) {
	clear(c.selected)

	for _, id := range cartIDs {
		if line, ok := c.Line(id); ok && line.Selectable() {
			c.selected[id] = struct{}{}
		}
	}

	c.changed()
}

// Reprice sets every line's unit price from price and reports whether any
// changed. Listeners are not signalled; repricing is part of a recompute.
func (c *CartState) Reprice(price func(models.CartLine) money.Money) bool {
	changed := false

	for i := range c.lines {
		if p := price(c.lines[i]); p != c.lines[i].UnitPrice {
			c.lines[i].UnitPrice = p
			changed = true
		}
	}

	return changed
}

// ReplaceLines swaps in freshly fetched line data and drops selections that
// no longer satisfy the selection invariant.
func (c *CartState) ReplaceLines(lines []models.CartLine) {
	c.lines = append([]models.CartLine(nil), lines...)

	for id := range c.selected {
		if line, ok := c.Line(id); !ok || !line.Selectable() {
			delete(c.selected, id)
		}
	}

	c.changed()
}
