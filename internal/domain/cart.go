package domain

// LineItem is one product entry in the cart with an associated quantity.
// Title, image, price, and period are copied from the catalog when the item
// is added and are never re-fetched, so the cart keeps the price the shopper
// saw at add time.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Period   string  `json:"period,omitempty"`
	Quantity int     `json:"quantity"`
}

// Cart holds the ordered list of line items for one storefront session.
// Items are unique by ID and insertion order is preserved for display.
// Every stored item has Quantity >= 1; a transition that would drive a
// quantity to zero or below removes the item instead.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Action is a cart state transition. The concrete types below form a closed
// set; Reduce is the only place they are interpreted.
type Action interface {
	isAction()
}

// AddItem merges Item into the cart: if an item with the same ID exists its
// quantity is incremented by Item.Quantity, otherwise Item is appended.
type AddItem struct {
	Item LineItem
}

// RemoveItem deletes the line item with the given ID. Unknown IDs are a no-op.
type RemoveItem struct {
	ID string
}

// SetQuantity replaces the stored quantity for the given ID. A quantity of
// zero or less removes the item. Unknown IDs are a no-op.
type SetQuantity struct {
	ID       string
	Quantity int
}

// Clear empties the cart unconditionally.
type Clear struct{}

// Load replaces the items wholesale with a previously persisted sequence.
type Load struct {
	Items []LineItem
}

func (AddItem) isAction()     {}
func (RemoveItem) isAction()  {}
func (SetQuantity) isAction() {}
func (Clear) isAction()       {}
func (Load) isAction()        {}

// Reduce applies a single action to the cart and returns the resulting state.
// It is a pure function: the input cart is never mutated, and the returned
// cart never shares item storage with it.
func Reduce(c Cart, a Action) Cart {
	switch act := a.(type) {
	case AddItem:
		items := make([]LineItem, len(c.Items))
		copy(items, c.Items)
		for i := range items {
			if items[i].ID == act.Item.ID {
				items[i].Quantity += act.Item.Quantity
				return Cart{Items: items}
			}
		}
		return Cart{Items: append(items, act.Item)}

	case RemoveItem:
		return Cart{Items: withoutItem(c.Items, act.ID)}

	case SetQuantity:
		if act.Quantity <= 0 {
			return Cart{Items: withoutItem(c.Items, act.ID)}
		}
		items := make([]LineItem, len(c.Items))
		copy(items, c.Items)
		for i := range items {
			if items[i].ID == act.ID {
				items[i].Quantity = act.Quantity
				break
			}
		}
		return Cart{Items: items}

	case Clear:
		return Cart{Items: []LineItem{}}

	case Load:
		items := make([]LineItem, len(act.Items))
		copy(items, act.Items)
		return Cart{Items: items}

	default:
		return c
	}
}

// withoutItem returns a copy of items with the entry matching id removed.
func withoutItem(items []LineItem, id string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// ItemCount returns the sum of all line item quantities.
func (c Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Contains reports whether an item with the given ID is in the cart.
func (c Cart) Contains(id string) bool {
	return c.findIndex(id) >= 0
}

// ItemQuantity returns the stored quantity for the given ID, or 0 if absent.
func (c Cart) ItemQuantity(id string) int {
	if i := c.findIndex(id); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// Item returns a copy of the line item with the given ID.
func (c Cart) Item(id string) (LineItem, bool) {
	if i := c.findIndex(id); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// findIndex returns the index of the line item with the given ID, or -1.
func (c Cart) findIndex(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}
