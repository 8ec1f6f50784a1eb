// Package cart accumulates the material and container line items of the
// request a station is putting together.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"station-request-api-server/internal/models"
)

var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
)

// Cart holds the material items (insertion order is display order) and the
// container items of the request in progress.
type Cart struct {
	mu                   sync.RWMutex
	items                []models.CartItem
	containers           []models.ContainerCartItem
	returnTrolleyEnabled bool
}

// Snapshot is a point-in-time copy of the cart.
type Snapshot struct {
	Items                []models.CartItem          `json:"cart"`
	Containers           []models.ContainerCartItem `json:"containerCart"`
	ReturnTrolleyEnabled bool                       `json:"returnTrolleyEnabled"`
	TotalUnits           int                        `json:"totalUnits"`
}

func New() *Cart {
	return &Cart{
		items:                []models.CartItem{},
		containers:           []models.ContainerCartItem{},
		returnTrolleyEnabled: true,
	}
}

// Add merges item into the cart. An existing entry for the same sub-SKU type
// gets min(existing+added, existing.MaxQty); otherwise item is appended.
func (c *Cart) Add(item models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SubSKUTypeID == item.SubSKUTypeID {
			c.items[i].Quantity = min(c.items[i].Quantity+item.Quantity, c.items[i].MaxQty)
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQty sets the quantity of an entry. The cart does not clamp: a
// quantity outside [1, MaxQty] is rejected and the entry is left as is.
func (c *Cart) UpdateQty(subSKUTypeID string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SubSKUTypeID != subSKUTypeID {
			continue
		}
		if qty < 1 || qty > c.items[i].MaxQty {
			return fmt.Errorf("%s: %d not in [1, %d]: %w", subSKUTypeID, qty, c.items[i].MaxQty, ErrQuantityOutOfRange)
		}
		c.items[i].Quantity = qty
		return nil
	}
	return fmt.Errorf("%s: %w", subSKUTypeID, ErrItemNotFound)
}

// Step moves an entry's quantity by one through the stepper rule. It
// returns the resulting quantity; a step past a bound is a no-op.
func (c *Cart) Step(subSKUTypeID string, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].SubSKUTypeID != subSKUTypeID {
			continue
		}
		s := Stepper{Max: c.items[i].MaxQty}
		switch {
		case delta > 0:
			c.items[i].Quantity = s.Increment(c.items[i].Quantity)
		case delta < 0:
			c.items[i].Quantity = s.Decrement(c.items[i].Quantity)
		}
		return c.items[i].Quantity, nil
	}
	return 0, fmt.Errorf("%s: %w", subSKUTypeID, ErrItemNotFound)
}

// Remove deletes the entry for subSKUTypeID; absent ids are a no-op.
func (c *Cart) Remove(subSKUTypeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.SubSKUTypeID != subSKUTypeID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []models.CartItem{}
}

// ReplaceFromSelection clears the material cart and adds the given rows, as
// the first step of the request wizard does. Invalid rows abort the whole
// replacement and leave the cart untouched.
func (c *Cart) ReplaceFromSelection(rows []models.CartItem) error {
	next := New()
	for _, r := range rows {
		if r.SubSKUTypeID == "" || r.Quantity == 0 {
			continue
		}
		if err := next.Add(r); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = next.items
	return nil
}

// SetContainers replaces the container cart wholesale.
func (c *Cart) SetContainers(items []models.ContainerCartItem) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.containers = append([]models.ContainerCartItem{}, items...)
	return nil
}

func (c *Cart) ClearContainers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.containers = []models.ContainerCartItem{}
}

func (c *Cart) SetReturnTrolley(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.returnTrolleyEnabled = enabled
}

func (c *Cart) ReturnTrolleyEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.returnTrolleyEnabled
}

// ClearAll empties both collections and resets the return-trolley flag.
func (c *Cart) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []models.CartItem{}
	c.containers = []models.ContainerCartItem{}
	c.returnTrolleyEnabled = true
}

func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.CartItem{}, c.items...)
}

func (c *Cart) Containers() []models.ContainerCartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.ContainerCartItem{}, c.containers...)
}

// Item returns the entry for subSKUTypeID.
func (c *Cart) Item(subSKUTypeID string) (models.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.SubSKUTypeID == subSKUTypeID {
			return it, true
		}
	}
	return models.CartItem{}, false
}

func (c *Cart) TotalUnits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return totalUnits(c.items)
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Items:                append([]models.CartItem{}, c.items...),
		Containers:           append([]models.ContainerCartItem{}, c.containers...),
		ReturnTrolleyEnabled: c.returnTrolleyEnabled,
		TotalUnits:           totalUnits(c.items),
	}
}

func totalUnits(items []models.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
