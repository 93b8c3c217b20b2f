// Package pager presents long text as a message with first/previous/next/last
// buttons. One Engine.Run call owns one message: it sends the first page,
// consumes navigation events for that message one at a time and stops after a
// period without activity.
package pager

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout       = 10 * time.Minute
	DefaultExpiredNotice = "This menu timed out, run the command again to see it."
)

// Control is one navigation button.
type Control struct {
	ID       string
	Label    string
	Disabled bool
}

// Page is a rendered page ready for a transport.
type Page struct {
	Index int
	Total int
	Body  string
}

// Footer is the "Page i/n" line.
func (p Page) Footer() string {
	return fmt.Sprintf("Page %d/%d", p.Index+1, p.Total)
}

// Text is the page body and footer inside a code block.
func (p Page) Text() string {
	return "```\n" + p.Body + "\n" + p.Footer() + "\n```"
}

// AtFirst reports whether p is the first page.
func (p Page) AtFirst() bool { return p.Index == 0 }

// AtLast reports whether p is the last page.
func (p Page) AtLast() bool { return p.Index >= p.Total-1 }

// Controls returns the four navigation buttons, with first/previous disabled
// on the first page and next/last disabled on the last one.
func (p Page) Controls() []Control {
	atFirst, atLast := p.AtFirst(), p.AtLast()
	return []Control{
		{ID: ControlFirst, Label: ControlFirst, Disabled: atFirst},
		{ID: ControlPrevious, Label: ControlPrevious, Disabled: atFirst},
		{ID: ControlNext, Label: ControlNext, Disabled: atLast},
		{ID: ControlLast, Label: ControlLast, Disabled: atLast},
	}
}

// Event is a navigation control press. Data is transport specific (for
// Discord, the component interaction) and is handed back to Sink.Update.
type Event struct {
	ControlID string
	Data      interface{}
}

// Sink sends and edits the paged message.
type Sink interface {
	// Send posts the first page and returns the new message id.
	Send(ctx context.Context, p Page) (messageID string, err error)
	// Update answers a navigation event by replacing the message with p.
	Update(ctx context.Context, ev Event, p Page) error
	// Edit replaces the message content and removes its controls.
	Edit(ctx context.Context, content string) error
}

// EventSource yields navigation events scoped to one message. cancel stops
// delivery; the channel is not closed by cancel.
type EventSource interface {
	Subscribe(messageID string) (events <-chan Event, cancel func())
}

// Engine runs paged displays. The zero value of Timeout, ExpiredNotice and
// Logger selects the defaults.
type Engine struct {
	Source        EventSource
	Timeout       time.Duration
	ExpiredNotice string
	Logger        *zap.Logger
}

// Run splits text into pages of at most pageSize characters, sends the first
// page through sink and serves navigation until the idle timeout elapses or
// ctx is cancelled. Timing out is a normal end and returns nil; a failed send
// or update is returned.
func (e *Engine) Run(ctx context.Context, text string, pageSize int, sink Sink) error {
	chunks := SplitIntoChunks(text, pageSize)
	pageOf := PageGetter(chunks)
	state := NewState(len(chunks))
	render := func() Page {
		return Page{Index: state.Page(), Total: state.NumPages(), Body: pageOf(state.Page())}
	}

	messageID, err := sink.Send(ctx, render())
	if err != nil {
		return fmt.Errorf("send first page: %w", err)
	}

	events, cancel := e.Source.Subscribe(messageID)
	defer cancel()

	log := e.logger().With(zap.String("message_id", messageID), zap.Int("pages", state.NumPages()))
	log.Debug("Paged display started")

	idle := e.timeout()
	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			if err := sink.Edit(context.WithoutCancel(ctx), e.expiredNotice()); err != nil {
				log.Warn("Failed to mark paged display as expired", zap.Error(err))
			}
			log.Debug("Paged display expired")
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !state.Apply(ev.ControlID) {
				continue
			}
			timer.Reset(idle)

			if err := sink.Update(ctx, ev, render()); err != nil {
				return fmt.Errorf("update page %d: %w", state.Page()+1, err)
			}
		}
	}
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

func (e *Engine) expiredNotice() string {
	if e.ExpiredNotice != "" {
		return e.ExpiredNotice
	}
	return DefaultExpiredNotice
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}
