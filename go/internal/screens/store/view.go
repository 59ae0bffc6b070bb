package store

import (
	"github.com/mcdev12/chipstore/go/internal/cart"
	"github.com/mcdev12/chipstore/go/internal/catalog"
	"github.com/mcdev12/chipstore/go/internal/effects"
	"github.com/mcdev12/chipstore/go/internal/gate"
	"github.com/mcdev12/chipstore/go/internal/timers"
)

const (
	Title        = "Single Chip Store"
	TimerLabel   = "Tid"
	EmptyMessage = "Your cart is empty"
	NoticeTitle  = "Added to Cart"
)

type View struct {
	Title      string           `json:"title"`
	TimerLabel string           `json:"timer_label"`
	Timer      string           `json:"timer"`
	Badge      int              `json:"badge"`
	Catalog    []Card           `json:"catalog"`
	Button     effects.Position `json:"button"`
	Cart       CartView         `json:"cart"`
	Notice     NoticeView       `json:"notice"`
	Background string           `json:"background"`
	Location   string           `json:"location"`
}

type Card struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"img"`
}

type CartView struct {
	Empty        bool       `json:"empty"`
	EmptyMessage string     `json:"empty_message,omitempty"`
	Lines        []LineView `json:"lines"`
	Total        string     `json:"total,omitempty"`
	// Code input, present only while the cart has lines.
	CodePlaceholder string `json:"code_placeholder,omitempty"`
	Code            string `json:"code,omitempty"`
}

type LineView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type NoticeView struct {
	Open        bool   `json:"open"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// View snapshots the screen for rendering.
func (s *Screen) View() any {
	var v View
	s.loop.Inspect(func() { v = s.view() })
	return v
}

func (s *Screen) view() View {
	v := View{
		Title:      Title,
		TimerLabel: TimerLabel,
		Timer:      timers.FormatStore(s.countdown.Remaining()),
		Badge:      s.cart.TotalCount(),
		Button:     s.jitter.Position(),
		Background: s.flicker.Color(),
		Location:   s.location,
		Notice: NoticeView{
			Open:  s.notice.Visible(),
			Title: NoticeTitle,
		},
	}

	for _, item := range catalog.Items() {
		v.Catalog = append(v.Catalog, Card{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       cart.FormatPrice(item.Price),
			Image:       item.Image,
		})
	}

	if item, ok := s.notice.Item(); ok {
		v.Notice.Description = "You've added " + item.Name + " to your cart."
	}

	lines := s.cart.Lines()
	v.Cart.Lines = make([]LineView, 0, len(lines))
	if len(lines) == 0 {
		v.Cart.Empty = true
		v.Cart.EmptyMessage = EmptyMessage
		return v
	}
	for _, line := range lines {
		v.Cart.Lines = append(v.Cart.Lines, LineView{
			ID:       line.ID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Subtotal: cart.FormatPrice(line.Subtotal()),
		})
	}
	v.Cart.Total = cart.FormatPrice(s.cart.TotalPrice())
	v.Cart.CodePlaceholder = gate.Placeholder
	v.Cart.Code = s.gate.Value()
	return v
}
