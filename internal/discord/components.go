package discord

import (
	"sync"
	"time"

	"github.com/keshon/command-core/pkg/pager"
)

// deliverTimeout bounds how long a button press waits for its pager loop.
// Discord wants an answer to the interaction within three seconds.
const deliverTimeout = 2 * time.Second

// deliverResult says what happened to a button press.
type deliverResult int

const (
	delivered deliverResult = iota
	// deliverStale means no pager loop owns the message any more.
	deliverStale
	// deliverBusy means the owning loop did not take the press in time,
	// usually because it is still pushing the previous page.
	deliverBusy
)

type subscription struct {
	events chan pager.Event
	done   chan struct{}
}

// componentRouter routes message component presses to the pager loop that
// owns the message. It implements pager.EventSource.
type componentRouter struct {
	mu      sync.Mutex
	subs    map[string]*subscription
	timeout time.Duration
}

func newComponentRouter() *componentRouter {
	return &componentRouter{subs: make(map[string]*subscription), timeout: deliverTimeout}
}

// Subscribe registers interest in presses on messageID. A later subscription
// for the same message replaces the earlier one.
func (r *componentRouter) Subscribe(messageID string) (<-chan pager.Event, func()) {
	sub := &subscription{
		events: make(chan pager.Event),
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	r.subs[messageID] = sub
	r.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mu.Lock()
			if r.subs[messageID] == sub {
				delete(r.subs, messageID)
			}
			r.mu.Unlock()
			close(sub.done)
		})
	}
	return sub.events, cancel
}

// deliver hands ev to the loop owning messageID.
func (r *componentRouter) deliver(messageID string, ev pager.Event) deliverResult {
	r.mu.Lock()
	sub, ok := r.subs[messageID]
	r.mu.Unlock()
	if !ok {
		return deliverStale
	}

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case sub.events <- ev:
		return delivered
	case <-sub.done:
		return deliverStale
	case <-timer.C:
		return deliverBusy
	}
}

func (r *componentRouter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
