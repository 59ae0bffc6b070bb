// Package complete is the congratulations screen shown after checkout.
package complete

import (
	"fmt"

	"github.com/mcdev12/chipstore/go/internal/scheduler"
	"github.com/mcdev12/chipstore/go/internal/screens"
)

const (
	Name = "complete"
	Path = "/complete"

	ActionResize = "resize"

	ConfettiPieces = 500
)

type View struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"img"`
	ImageAlt    string   `json:"img_alt"`
	Badge       string   `json:"badge"`
	Price       string   `json:"price"`
	Blurb       string   `json:"blurb"`
	Adventure   Link     `json:"adventure"`
	Confetti    Confetti `json:"confetti"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Confetti covers the viewport and never stops.
type Confetti struct {
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	Pieces  int  `json:"pieces"`
	Recycle bool `json:"recycle"`
}

var page = View{
	Title:       "Congratulations!",
	Description: "You are now the proud owner of a... unique property!",
	Image:       "/trashHouse.jpg?height=300&width=400",
	ImageAlt:    "An old, stinky house",
	Badge:       "SOLD!",
	Price:       "Price: $10,000,000",
	Blurb:       "This charming fixer-upper comes with its own unique aroma and a lifetime supply of surprises!",
	Adventure: Link{
		Label: "Start Your Adventure!",
		URL:   "https://www.nrk.no/norge/leter-trolig-etter-blod-utenfor-hagens-hus-1.15001230",
	},
}

type Screen struct {
	loop   *scheduler.Loop
	width  int
	height int
}

func New(env screens.Env) *Screen {
	env = env.WithDefaults()
	return &Screen{
		loop: scheduler.NewLoop(Name, env.Clock, scheduler.WithOnChange(env.OnChange)),
	}
}

func (s *Screen) Name() string     { return Name }
func (s *Screen) Location() string { return Path }

func (s *Screen) Handle(action screens.Action) error {
	var err error
	if !s.loop.Dispatch(func() {
		if action.Type != ActionResize {
			err = screens.UnknownAction(Name, action)
			return
		}
		if action.Width < 0 || action.Height < 0 {
			err = fmt.Errorf("resize: negative viewport %dx%d", action.Width, action.Height)
			return
		}
		s.width, s.height = action.Width, action.Height
	}) {
		return screens.ErrClosed
	}
	return err
}

func (s *Screen) View() any {
	v := page
	s.loop.Inspect(func() {
		v.Confetti = Confetti{Width: s.width, Height: s.height, Pieces: ConfettiPieces, Recycle: true}
	})
	return v
}

func (s *Screen) Close() {
	s.loop.Close()
}
