// Package store is the chip store screen: the catalog, the erratic cart and
// the hidden checkout code.
package store

import (
	"fmt"

	"github.com/mcdev12/chipstore/go/internal/cart"
	"github.com/mcdev12/chipstore/go/internal/catalog"
	"github.com/mcdev12/chipstore/go/internal/effects"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/gate"
	"github.com/mcdev12/chipstore/go/internal/models"
	"github.com/mcdev12/chipstore/go/internal/scheduler"
	"github.com/mcdev12/chipstore/go/internal/screens"
	"github.com/mcdev12/chipstore/go/internal/timers"
)

const (
	Name = "store"
	Path = "/"

	CheckoutPath = "/checkout"
)

// Action types understood by the store.
const (
	ActionClickAdd      = "click_add"
	ActionHoverAdd      = "hover_add"
	ActionAdd           = "add"
	ActionRemove        = "remove"
	ActionCheckoutCode  = "checkout_code"
	ActionDismissNotice = "dismiss_notice"
)

// Screen is a mounted store. All state is guarded by its loop.
type Screen struct {
	env  screens.Env
	loop *scheduler.Loop

	cart      *cart.Engine
	countdown *timers.Countdown
	flicker   *effects.Flicker
	jitter    *effects.Jitter
	notice    *effects.Notice
	gate      *gate.Gate

	location string
}

// New mounts a store with an empty cart and starts its countdown.
func New(env screens.Env) *Screen {
	env = env.WithDefaults()
	s := &Screen{
		env:       env,
		loop:      scheduler.NewLoop(Name, env.Clock, scheduler.WithOnChange(env.OnChange)),
		cart:      cart.NewEngine(env.Random),
		countdown: timers.NewCountdown(timers.StoreSeconds),
		flicker:   effects.NewFlicker(env.Random),
		jitter:    effects.NewJitter(env.Random),
		notice:    effects.NewNotice(env.Random),
		gate:      gate.New(),
		location:  Path,
	}
	s.loop.Inspect(func() {
		s.countdown.Start(s.loop)
	})
	return s
}

func (s *Screen) Name() string {
	return Name
}

func (s *Screen) Location() string {
	var loc string
	s.loop.Inspect(func() { loc = s.location })
	return loc
}

func (s *Screen) Handle(action screens.Action) error {
	var err error
	if !s.loop.Dispatch(func() { err = s.handle(action) }) {
		return screens.ErrClosed
	}
	return err
}

func (s *Screen) Close() {
	s.loop.Close()
}

func (s *Screen) handle(action screens.Action) error {
	switch action.Type {
	case ActionClickAdd:
		item, err := catalog.Get(action.ItemID)
		if err != nil {
			return fmt.Errorf("click add: %w", err)
		}
		s.jitter.Click()
		s.add(item)
	case ActionHoverAdd:
		s.jitter.Hover()
	case ActionAdd:
		item, err := catalog.Get(action.ItemID)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		s.add(item)
	case ActionRemove:
		s.remove(action.ItemID)
	case ActionCheckoutCode:
		s.checkoutCode(action.Value)
	case ActionDismissNotice:
		s.notice.Dismiss()
	default:
		return screens.UnknownAction(Name, action)
	}
	return nil
}

func (s *Screen) add(item models.Item) {
	delta := s.cart.Add(item)
	s.notice.Schedule(s.loop, item)
	s.cartChanged(ActionAdd, item.ID, delta)
}

func (s *Screen) remove(itemID int) {
	delta, ok := s.cart.Remove(itemID)
	if !ok {
		return
	}
	s.cartChanged(ActionRemove, itemID, delta)
}

func (s *Screen) cartChanged(action string, itemID, delta int) {
	s.location = cart.Location(Path, s.cart.Payload())
	s.flicker.Sync(s.loop, s.cart.TotalCount())
	s.env.Events.Emit(events.TypeCartUpdated, events.CartUpdatedPayload{
		Action:     action,
		ItemID:     itemID,
		Delta:      delta,
		TotalCount: s.cart.TotalCount(),
		TotalPrice: s.cart.TotalPrice(),
	})
}

// checkoutCode feeds the code field. The field only exists while the cart
// has lines.
func (s *Screen) checkoutCode(value string) {
	if s.cart.Empty() {
		return
	}
	if !s.gate.Input(value) {
		return
	}
	target := cart.Location(CheckoutPath, s.cart.Payload())
	s.env.Events.Emit(events.TypeCheckoutUnlocked, events.CheckoutUnlockedPayload{
		Location:   target,
		TotalCount: s.cart.TotalCount(),
	})
	s.env.Navigator.Navigate(target)
}
