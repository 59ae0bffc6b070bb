package checkout

import (
	"fmt"

	"github.com/mcdev12/chipstore/go/internal/timers"
)

const Title = "Checkout"

type View struct {
	Title        string   `json:"title"`
	TimeLeft     string   `json:"time_left"`
	CountMessage string   `json:"count_message"`
	ChipCount    int      `json:"chip_count"`
	Name         string   `json:"name"`
	Latitude     string   `json:"latitude"`
	Longitude    string   `json:"longitude"`
	Address      string   `json:"address,omitempty"`
	Loading      bool     `json:"loading"`
	DialCodes    []string `json:"dial_codes"`
	Phone        []string `json:"phone"`
	Email        string   `json:"email"`
	EmailEndings []string `json:"email_endings"`
	Missing      []string `json:"missing,omitempty"`
	Location     string   `json:"location"`
}

func (s *Screen) View() any {
	var v View
	s.loop.Inspect(func() {
		v = View{
			Title:        Title,
			TimeLeft:     "Time left: " + timers.FormatCheckout(s.countdown.Remaining()),
			CountMessage: fmt.Sprintf("You have %d chip(s) in your cart.", s.chipCount),
			ChipCount:    s.chipCount,
			Name:         s.name,
			Latitude:     s.latitude,
			Longitude:    s.longitude,
			Address:      s.address,
			Loading:      s.loading,
			DialCodes:    dialCodes(s.countries),
			Phone:        append([]string(nil), s.phone[:]...),
			Email:        s.email,
			EmailEndings: EmailEndings,
			Missing:      append([]string(nil), s.missing...),
			Location:     s.location,
		}
	})
	return v
}
