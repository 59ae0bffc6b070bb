package effects

import (
	"time"

	"github.com/mcdev12/chipstore/go/internal/models"
	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/mcdev12/chipstore/go/internal/scheduler"
)

const (
	NoticeDelay      = time.Second
	minDismissMillis = 1000
	maxDismissMillis = 5000
)

// Notice is the single "added to cart" dialog. Every add schedules an open one
// second later; the dialog shows whichever item was added last and closes on
// its own after a random delay. Methods must be called from inside the loop.
type Notice struct {
	rnd random.Source

	item    *models.Item
	open    bool
	opens   map[*scheduler.Task]struct{}
	dismiss *scheduler.Task
}

func NewNotice(rnd random.Source) *Notice {
	return &Notice{
		rnd:   rnd,
		opens: make(map[*scheduler.Task]struct{}),
	}
}

// Schedule records item as the latest addition and opens the dialog after
// NoticeDelay. Opening while already open only swaps the item; the running
// dismiss timer is kept.
func (n *Notice) Schedule(loop *scheduler.Loop, item models.Item) {
	n.item = &item

	var task *scheduler.Task
	task = loop.After(NoticeDelay, func() {
		delete(n.opens, task)
		n.show(loop)
	})
	n.opens[task] = struct{}{}
}

func (n *Notice) show(loop *scheduler.Loop) {
	if n.open {
		return
	}
	n.open = true
	wait := time.Duration(minDismissMillis+n.rnd.IntN(maxDismissMillis-minDismissMillis)) * time.Millisecond
	n.dismiss = loop.After(wait, func() {
		n.open = false
		n.dismiss = nil
	})
}

// Dismiss closes the dialog early. Opens that are still pending are kept.
func (n *Notice) Dismiss() {
	if n.dismiss != nil {
		n.dismiss.Stop()
		n.dismiss = nil
	}
	n.open = false
}

func (n *Notice) Visible() bool {
	return n.open
}

// Item is the most recently added item, if any.
func (n *Notice) Item() (models.Item, bool) {
	if n.item == nil {
		return models.Item{}, false
	}
	return *n.item, true
}

// PendingOpens reports how many scheduled opens have not fired yet.
func (n *Notice) PendingOpens() int {
	return len(n.opens)
}

// Stop cancels pending opens and the dismiss timer.
func (n *Notice) Stop() {
	for task := range n.opens {
		task.Stop()
	}
	clear(n.opens)
	n.Dismiss()
}
