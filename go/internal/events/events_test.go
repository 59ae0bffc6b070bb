package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WrapsPayload(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	event, err := New("session-1", TypeCartUpdated, CartUpdatedPayload{
		Action: "add", ItemID: 2, Delta: 4, TotalCount: 4, TotalPrice: 13.96,
	}, at)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID.String())
	assert.Equal(t, "session-1", event.SessionID)
	assert.Equal(t, time.UTC, event.Timestamp.Location())
	assert.JSONEq(t, `{"action":"add","item_id":2,"delta":4,"total_count":4,"total_price":13.96}`, string(event.Data))

	payload, err := ParsePayload(&event)
	require.NoError(t, err)
	assert.Equal(t, CartUpdatedPayload{Action: "add", ItemID: 2, Delta: 4, TotalCount: 4, TotalPrice: 13.96}, payload)
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := New("s", TypeScreenMounted, ScreenMountedPayload{Screen: "store"}, time.Now())
	require.NoError(t, err)
	b, err := New("s", TypeScreenMounted, ScreenMountedPayload{Screen: "store"}, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNew_UnmarshalablePayload(t *testing.T) {
	_, err := New("s", TypeScreenMounted, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestParsePayload(t *testing.T) {
	unknown := Event{Type: "nope"}
	payload, err := ParsePayload(&unknown)
	assert.NoError(t, err)
	assert.Nil(t, payload)

	bad := Event{Type: TypeOrderSubmitted, Data: []byte(`{"name":1}`)}
	_, err = ParsePayload(&bad)
	assert.Error(t, err)
}
