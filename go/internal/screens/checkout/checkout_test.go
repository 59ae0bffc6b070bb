package checkout

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chipstore/go/clients/country_codes_client"
	"github.com/mcdev12/chipstore/go/clients/nominatim_client"
	"github.com/mcdev12/chipstore/go/internal/cart"
	"github.com/mcdev12/chipstore/go/internal/catalog"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/models"
	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/mcdev12/chipstore/go/internal/screens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCountries struct {
	codes []country_codes_client.CountryCode
	err   error
}

func (f *fakeCountries) ListCountryCodes(ctx context.Context) ([]country_codes_client.CountryCode, error) {
	return f.codes, f.err
}

type fakeGeocoder struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lon string) (*nominatim_client.Place, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &nominatim_client.Place{DisplayName: "Somewhere, " + lat + "," + lon}, nil
}

type harness struct {
	screen *Screen
	clock  *clockwork.FakeClock
	rec    *screens.Recorder
}

func newCheckout(t *testing.T, rnd random.Source, deps Deps, location string) *harness {
	t.Helper()
	u, err := url.Parse(location)
	require.NoError(t, err)

	h := &harness{clock: clockwork.NewFakeClock(), rec: &screens.Recorder{}}
	h.screen = New(screens.Env{
		Clock:     h.clock,
		Random:    rnd,
		Navigator: h.rec,
		Events:    h.rec,
	}, deps, u)
	t.Cleanup(h.screen.Close)
	return h
}

func (h *harness) view() View {
	return h.screen.View().(View)
}

func (h *harness) do(t *testing.T, action screens.Action) {
	t.Helper()
	require.NoError(t, h.screen.Handle(action))
}

func TestCheckout_DecodesCartAndDrawsCount(t *testing.T) {
	salt, _ := catalog.Get(1)
	payload := cart.Encode([]models.CartLine{{Item: salt, Quantity: 7}})
	h := newCheckout(t, random.NewSequence(41), Deps{}, cart.Location(Path, payload))

	require.Len(t, h.screen.Lines(), 1)
	assert.Equal(t, 7, h.screen.Lines()[0].Quantity)

	v := h.view()
	assert.Equal(t, 42, v.ChipCount)
	assert.Equal(t, "You have 42 chip(s) in your cart.", v.CountMessage)
	assert.Equal(t, "Time left: 02:00", v.TimeLeft)
	assert.Len(t, v.Phone, PhoneSlots)
}

func TestCheckout_MalformedCartIsEmpty(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{}, "/checkout?cart=%5Bnope")

	assert.Empty(t, h.screen.Lines())
	assert.Equal(t, 1, h.view().ChipCount)
}

func TestCheckout_CountdownFormat(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{}, Path)

	for i := 0; i < 61; i++ {
		h.clock.Advance(time.Second)
		h.clock.BlockUntil(1)
	}
	assert.Equal(t, "Time left: 00:59", h.view().TimeLeft)
}

func TestCheckout_CountryCodes(t *testing.T) {
	countries := &fakeCountries{codes: []country_codes_client.CountryCode{
		{Name: "Norway", DialCode: "+47", Code: "NO"},
		{Name: "Sweden", DialCode: "+46", Code: "SE"},
	}}
	h := newCheckout(t, random.NewSequence(), Deps{Countries: countries}, Path)

	require.Eventually(t, func() bool { return len(h.screen.DialCodes()) == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"+47", "+46"}, h.view().DialCodes)

	h.do(t, screens.Action{Type: ActionPhone, Index: 0, Value: "+46"})
	assert.Equal(t, "+46", h.view().Phone[0])

	h.do(t, screens.Action{Type: ActionPhone, Index: 0, Value: "+999"})
	assert.Equal(t, "+46", h.view().Phone[0])
}

func TestCheckout_CountryCodesFailureLeavesEmptyList(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{Countries: &fakeCountries{err: errors.New("boom")}}, Path)

	require.Eventually(t, func() bool {
		var ready bool
		h.screen.loop.Inspect(func() { ready = h.screen.countriesReady })
		return ready
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, h.view().DialCodes)
}

func TestCheckout_NameTypesItselfBack(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{}, Path)

	h.do(t, screens.Action{Type: ActionName, Value: "Åse"})
	assert.Equal(t, "", h.view().Name)

	h.clock.Advance(NameLetterDelay)
	h.clock.BlockUntil(2)
	assert.Equal(t, "Å", h.view().Name)

	h.clock.Advance(NameLetterDelay)
	h.clock.BlockUntil(2)
	assert.Equal(t, "Ås", h.view().Name)

	h.clock.Advance(NameLetterDelay)
	require.Eventually(t, func() bool { return h.view().Name == "Åse" }, 2*time.Second, 5*time.Millisecond)
}

func TestCheckout_NewNameInputRestartsTyping(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{}, Path)

	h.do(t, screens.Action{Type: ActionName, Value: "abc"})
	h.clock.Advance(NameLetterDelay)
	h.clock.BlockUntil(2)
	assert.Equal(t, "a", h.view().Name)

	h.do(t, screens.Action{Type: ActionName, Value: "xy"})
	require.Eventually(t, func() bool { return h.screen.loop.Pending() == 2 }, 2*time.Second, 5*time.Millisecond)

	h.clock.Advance(NameLetterDelay)
	h.clock.BlockUntil(2)
	assert.Equal(t, "x", h.view().Name)

	h.clock.Advance(NameLetterDelay)
	require.Eventually(t, func() bool { return h.view().Name == "xy" }, 2*time.Second, 5*time.Millisecond)

	// The cancelled "abc" chain never types over the new value.
	h.clock.Advance(2 * NameLetterDelay)
	assert.Equal(t, "xy", h.view().Name)
}

func TestCheckout_AddressAlwaysSettlesOnPlaceholder(t *testing.T) {
	for name, geocoder := range map[string]*fakeGeocoder{
		"success": {release: make(chan struct{})},
		"failure": {release: make(chan struct{}), err: errors.New("rate limited")},
	} {
		t.Run(name, func(t *testing.T) {
			h := newCheckout(t, random.NewSequence(), Deps{Geocoder: geocoder}, Path)
			h.do(t, screens.Action{Type: ActionLatitude, Value: "59.91"})
			h.do(t, screens.Action{Type: ActionLongitude, Value: "10.75"})

			h.do(t, screens.Action{Type: ActionGetAddress})
			assert.True(t, h.view().Loading)
			h.do(t, screens.Action{Type: ActionGetAddress})

			close(geocoder.release)
			require.Eventually(t, func() bool { return !h.view().Loading }, 2*time.Second, 5*time.Millisecond)
			assert.Equal(t, PlaceholderAddress, h.view().Address)
			assert.Equal(t, int32(1), geocoder.calls.Load())
		})
	}
}

func TestCheckout_CloseCancelsLookup(t *testing.T) {
	geocoder := &fakeGeocoder{release: make(chan struct{})}
	h := newCheckout(t, random.NewSequence(), Deps{Geocoder: geocoder}, Path)

	h.do(t, screens.Action{Type: ActionGetAddress})
	require.Eventually(t, func() bool { return geocoder.calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	h.screen.Close()
	assert.ErrorIs(t, h.screen.Handle(screens.Action{Type: ActionGetAddress}), screens.ErrClosed)
}

func TestCheckout_PhoneSlots(t *testing.T) {
	h := newCheckout(t, random.NewSequence(1, 7), Deps{}, Path)

	h.do(t, screens.Action{Type: ActionPhone, Index: 3, Value: "42"})
	h.do(t, screens.Action{Type: ActionRandomDigit, Index: 8})

	v := h.view()
	assert.Equal(t, "4", v.Phone[3])
	assert.Equal(t, "7", v.Phone[8])

	assert.Error(t, h.screen.Handle(screens.Action{Type: ActionPhone, Index: PhoneSlots, Value: "1"}))
	assert.Error(t, h.screen.Handle(screens.Action{Type: ActionRandomDigit, Index: 0}))
}

func TestCheckout_EmailEnding(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{}, Path)

	h.do(t, screens.Action{Type: ActionEmail, Value: "kari@example.com"})
	h.do(t, screens.Action{Type: ActionEmailEnding, Value: "@potato.chip"})
	assert.Equal(t, "kari@potato.chip", h.view().Email)

	h.do(t, screens.Action{Type: ActionEmailEnding, Value: "@chip.muncher"})
	assert.Equal(t, "kari@chip.muncher", h.view().Email)

	assert.Error(t, h.screen.Handle(screens.Action{Type: ActionEmailEnding, Value: "@gmail.com"}))
}

func TestCheckout_SubmitRequiresFields(t *testing.T) {
	salt, _ := catalog.Get(1)
	h := newCheckout(t, random.NewSequence(9), Deps{}, cart.Location(Path, cart.Encode([]models.CartLine{{Item: salt, Quantity: 3}})))

	h.do(t, screens.Action{Type: ActionSubmit})
	assert.Empty(t, h.rec.Locations())
	assert.Contains(t, h.view().Missing, "name")
	assert.Contains(t, h.view().Missing, "phone[1]")

	h.do(t, screens.Action{Type: ActionName, Value: "K"})
	h.clock.Advance(NameLetterDelay)
	require.Eventually(t, func() bool { return h.view().Name == "K" }, 2*time.Second, 5*time.Millisecond)
	h.do(t, screens.Action{Type: ActionLatitude, Value: "1"})
	h.do(t, screens.Action{Type: ActionLongitude, Value: "2"})
	for i := 1; i < PhoneSlots; i++ {
		h.do(t, screens.Action{Type: ActionPhone, Index: i, Value: "5"})
	}
	h.do(t, screens.Action{Type: ActionEmail, Value: "k@salty.crunch"})

	h.do(t, screens.Action{Type: ActionSubmit})
	loc, ok := h.rec.Last()
	require.True(t, ok)
	assert.Equal(t, CompletePath, loc)
	assert.Empty(t, h.view().Missing)

	submitted := h.rec.EventsOf(events.TypeOrderSubmitted)
	require.Len(t, submitted, 1)
	assert.Equal(t, events.OrderSubmittedPayload{
		Name: "K", Email: "k@salty.crunch", Phone: "55555555", ChipCount: 10, CartCount: 3,
	}, submitted[0])
}

func TestCheckout_UnknownAction(t *testing.T) {
	h := newCheckout(t, random.NewSequence(), Deps{}, Path)
	assert.ErrorIs(t, h.screen.Handle(screens.Action{Type: "hover_add"}), screens.ErrUnknownAction)
}
