package events

// ScreenMountedPayload is emitted when a session mounts a screen.
type ScreenMountedPayload struct {
	Screen   string `json:"screen"`
	Location string `json:"location"`
}

// ScreenUnmountedPayload is emitted when a screen is torn down, either by
// navigation or by the client going away.
type ScreenUnmountedPayload struct {
	Screen string `json:"screen"`
	Reason string `json:"reason"`
}

// CartUpdatedPayload is emitted after every add or remove.
type CartUpdatedPayload struct {
	Action     string  `json:"action"`
	ItemID     int     `json:"item_id"`
	Delta      int     `json:"delta"`
	TotalCount int     `json:"total_count"`
	TotalPrice float64 `json:"total_price"`
}

// CheckoutUnlockedPayload is emitted when the secret code is entered.
type CheckoutUnlockedPayload struct {
	Location   string `json:"location"`
	TotalCount int    `json:"total_count"`
}

// OrderSubmittedPayload is emitted when the checkout form is submitted.
type OrderSubmittedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	// ChipCount is the count the checkout displayed; CartCount is what the
	// cart actually held.
	ChipCount int `json:"chip_count"`
	CartCount int `json:"cart_count"`
}
