// Package checkout is the checkout screen: a form that fights back.
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/mcdev12/chipstore/go/clients/country_codes_client"
	"github.com/mcdev12/chipstore/go/clients/nominatim_client"
	"github.com/mcdev12/chipstore/go/internal/cart"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/models"
	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/mcdev12/chipstore/go/internal/scheduler"
	"github.com/mcdev12/chipstore/go/internal/screens"
	"github.com/mcdev12/chipstore/go/internal/timers"
	"github.com/rs/zerolog/log"
)

const (
	Name = "checkout"
	Path = "/checkout"

	CompletePath = "/complete"

	// PlaceholderAddress is what the address always settles on.
	PlaceholderAddress = "Correct"

	NameLetterDelay = 500 * time.Millisecond
	PhoneSlots      = 9

	maxChipCount        = 50
	defaultFetchTimeout = 10 * time.Second
)

// Action types understood by checkout.
const (
	ActionName        = "name"
	ActionLatitude    = "latitude"
	ActionLongitude   = "longitude"
	ActionGetAddress  = "get_address"
	ActionPhone       = "phone"
	ActionRandomDigit = "random_digit"
	ActionEmail       = "email"
	ActionEmailEnding = "email_ending"
	ActionSubmit      = "submit"
)

// EmailEndings are the only domains the ending selector offers.
var EmailEndings = []string{"@potato.chip", "@crispy.snack", "@salty.crunch", "@flavor.blast", "@chip.muncher"}

type CountryLister interface {
	ListCountryCodes(ctx context.Context) ([]country_codes_client.CountryCode, error)
}

type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude string) (*nominatim_client.Place, error)
}

// Deps are the external lookups checkout calls. Either may be nil.
type Deps struct {
	Countries    CountryLister
	Geocoder     Geocoder
	FetchTimeout time.Duration
}

type Screen struct {
	env      screens.Env
	deps     Deps
	loop     *scheduler.Loop
	location string

	lines     []models.CartLine
	chipCount int
	countdown *timers.Countdown

	name     string
	nameTask *scheduler.Task

	latitude  string
	longitude string
	address   string
	loading   bool

	countries      []country_codes_client.CountryCode
	countriesReady bool
	phone          [PhoneSlots]string

	email   string
	missing []string
}

// New mounts checkout for a location such as /checkout?cart=... A missing or
// malformed cart is treated as empty.
func New(env screens.Env, deps Deps, location *url.URL) *Screen {
	env = env.WithDefaults()
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = defaultFetchTimeout
	}

	lines, err := cart.FromQuery(location.Query())
	if err != nil {
		log.Warn().Err(err).Str("location", location.String()).Msg("checkout received a malformed cart, starting empty")
		lines = nil
	}

	s := &Screen{
		env:       env,
		deps:      deps,
		loop:      scheduler.NewLoop(Name, env.Clock, scheduler.WithOnChange(env.OnChange)),
		location:  location.String(),
		lines:     lines,
		chipCount: random.Between(env.Random, 1, maxChipCount),
		countdown: timers.NewCountdown(timers.CheckoutSeconds),
	}
	s.loop.Inspect(func() {
		s.countdown.Start(s.loop)
	})
	s.fetchCountryCodes()
	return s
}

func (s *Screen) Name() string {
	return Name
}

func (s *Screen) Location() string {
	return s.location
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
	case ActionName:
		s.typeName(action.Value)
	case ActionLatitude:
		s.latitude = action.Value
	case ActionLongitude:
		s.longitude = action.Value
	case ActionGetAddress:
		s.lookupAddress()
	case ActionPhone:
		return s.setPhone(action.Index, action.Value)
	case ActionRandomDigit:
		if action.Index < 1 || action.Index >= PhoneSlots {
			return fmt.Errorf("random digit: phone slot %d out of range", action.Index)
		}
		s.phone[action.Index] = fmt.Sprint(s.env.Random.IntN(10))
	case ActionEmail:
		s.email = action.Value
	case ActionEmailEnding:
		if !slices.Contains(EmailEndings, action.Value) {
			return fmt.Errorf("email ending %q is not offered", action.Value)
		}
		local, _, _ := strings.Cut(s.email, "@")
		s.email = local + action.Value
	case ActionSubmit:
		s.submit()
	default:
		return screens.UnknownAction(Name, action)
	}
	return nil
}

// typeName retypes value into the name field one letter at a time. New input
// cancels a chain that is still typing, so overlapping inputs never
// interleave their letters; only the latest value is typed back.
func (s *Screen) typeName(value string) {
	if s.nameTask != nil {
		s.nameTask.Stop()
		s.nameTask = nil
	}

	letters := []rune(value)
	if len(letters) == 0 {
		return
	}

	typed := 0
	var task *scheduler.Task
	task = s.loop.Every(NameLetterDelay, func() {
		typed++
		s.name = string(letters[:typed])
		if typed == len(letters) {
			task.Stop()
		}
	})
	s.nameTask = task
}

func (s *Screen) setPhone(index int, value string) error {
	switch {
	case index == 0:
		if value != "" && !s.hasDialCode(value) {
			log.Debug().Str("dial_code", value).Msg("ignoring unknown dial code")
			return nil
		}
		s.phone[0] = value
	case index > 0 && index < PhoneSlots:
		// Digit slots hold a single character.
		if r := []rune(value); len(r) > 1 {
			value = string(r[:1])
		}
		s.phone[index] = value
	default:
		return fmt.Errorf("phone slot %d out of range", index)
	}
	return nil
}

func (s *Screen) hasDialCode(code string) bool {
	return slices.ContainsFunc(s.countries, func(c country_codes_client.CountryCode) bool {
		return c.DialCode == code
	})
}

func (s *Screen) submit() {
	s.missing = s.missingFields()
	if len(s.missing) > 0 {
		return
	}

	s.env.Events.Emit(events.TypeOrderSubmitted, events.OrderSubmittedPayload{
		Name:      s.name,
		Email:     s.email,
		Phone:     strings.Join(s.phone[:], ""),
		ChipCount: s.chipCount,
		CartCount: cart.TotalCount(s.lines),
	})
	s.env.Navigator.Navigate(CompletePath)
}

// missingFields lists the required inputs that are still blank. The dial code
// selector is not required.
func (s *Screen) missingFields() []string {
	var missing []string
	required := []struct {
		field, value string
	}{
		{"name", s.name},
		{"latitude", s.latitude},
		{"longitude", s.longitude},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.field)
		}
	}
	for i := 1; i < PhoneSlots; i++ {
		if s.phone[i] == "" {
			missing = append(missing, fmt.Sprintf("phone[%d]", i))
		}
	}
	if s.email == "" {
		missing = append(missing, "email")
	}
	return missing
}

// Lines returns the cart carried over from the store.
func (s *Screen) Lines() []models.CartLine {
	var lines []models.CartLine
	s.loop.Inspect(func() { lines = append(lines, s.lines...) })
	return lines
}
