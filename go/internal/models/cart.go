package models

// CartLine is one item in the cart. The item's display fields travel with the
// line so the navigation payload can be rendered without the catalog.
type CartLine struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal returns quantity × unit price, unrounded.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}
