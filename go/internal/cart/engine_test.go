package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mcdev12/chipstore/go/internal/catalog"
	"github.com/mcdev12/chipstore/go/internal/models"
	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idQty struct {
	ID       int
	Quantity int
}

func pairs(lines []models.CartLine) []idQty {
	out := make([]idQty, 0, len(lines))
	for _, line := range lines {
		out = append(out, idQty{line.ID, line.Quantity})
	}
	return out
}

func mustItem(t *testing.T, id int) models.Item {
	t.Helper()
	item, err := catalog.Get(id)
	require.NoError(t, err)
	return item
}

func TestEngine_AddAddRemoveScenario(t *testing.T) {
	e := NewEngine(random.NewSequence(5, 3, 10))
	salt := mustItem(t, 1)

	assert.Equal(t, 5, e.Add(salt))
	assert.Empty(t, cmp.Diff([]idQty{{1, 5}}, pairs(e.Lines())))

	assert.Equal(t, 3, e.Add(salt))
	assert.Empty(t, cmp.Diff([]idQty{{1, 8}}, pairs(e.Lines())))

	delta, ok := e.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, 10, delta)
	assert.True(t, e.Empty())
	assert.Equal(t, "%5B%5D", e.Payload())
}

func TestEngine_ZeroDeltaAdd(t *testing.T) {
	e := NewEngine(random.NewSequence(0, 4, 0))
	bbq := mustItem(t, 3)

	e.Add(bbq)
	assert.True(t, e.Empty(), "zero draw must not insert a zero-quantity line")

	e.Add(bbq)
	e.Add(bbq)
	line, ok := e.Line(3)
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)
}

func TestEngine_RemoveUnknownIsNoop(t *testing.T) {
	seq := random.NewSequence(2)
	e := NewEngine(seq)
	e.Add(mustItem(t, 2))

	_, ok := e.Remove(4)
	assert.False(t, ok)
	assert.Empty(t, cmp.Diff([]idQty{{2, 2}}, pairs(e.Lines())))
}

func TestEngine_RemovePartialKeepsLine(t *testing.T) {
	e := NewEngine(random.NewSequence(9, 4))
	e.Add(mustItem(t, 4))
	e.Remove(4)

	assert.Empty(t, cmp.Diff([]idQty{{4, 5}}, pairs(e.Lines())))
}

func TestEngine_ReAddAfterDropCreatesFreshLine(t *testing.T) {
	e := NewEngine(random.NewSequence(3, 6, 7, 2))
	salt, onion := mustItem(t, 1), mustItem(t, 2)

	e.Add(salt)
	e.Add(onion)
	e.Remove(1)
	e.Add(salt)

	assert.Empty(t, cmp.Diff([]idQty{{2, 6}, {1, 2}}, pairs(e.Lines())))
}

func TestEngine_Totals(t *testing.T) {
	e := NewEngine(random.NewSequence(2, 3))
	e.Add(mustItem(t, 1))
	e.Add(mustItem(t, 4))

	assert.Equal(t, 5, e.TotalCount())
	assert.InDelta(t, 2*2.99+3*3.99, e.TotalPrice(), 1e-9)
	assert.Equal(t, "$17.95", FormatPrice(e.TotalPrice()))
}

func TestEngine_RandomSequencesKeepInvariants(t *testing.T) {
	items := catalog.Items()
	for seed := uint64(1); seed <= 50; seed++ {
		rnd := random.NewSeeded(seed)
		driver := random.NewSeeded(seed + 1000)
		e := NewEngine(rnd)

		for step := 0; step < 200; step++ {
			item := items[driver.IntN(len(items))]
			if driver.IntN(2) == 0 {
				e.Add(item)
			} else {
				e.Remove(item.ID)
			}

			require.GreaterOrEqual(t, e.TotalCount(), 0)
			require.GreaterOrEqual(t, e.TotalPrice(), 0.0)

			seen := make(map[int]bool)
			for _, line := range e.Lines() {
				require.False(t, seen[line.ID], "seed %d: duplicate line for %d", seed, line.ID)
				require.Positive(t, line.Quantity, "seed %d: non-positive line", seed)
				seen[line.ID] = true
			}
		}
	}
}

func TestNewEngineWithLines_DropsBadLines(t *testing.T) {
	salt := mustItem(t, 1)
	e := NewEngineWithLines(random.New(), []models.CartLine{
		{Item: salt, Quantity: 2},
		{Item: salt, Quantity: 7},
		{Item: mustItem(t, 2), Quantity: 0},
	})
	assert.Empty(t, cmp.Diff([]idQty{{1, 2}}, pairs(e.Lines())))
}
