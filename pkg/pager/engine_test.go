package pager

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSink struct {
	mu        sync.Mutex
	sent      []Page
	updates   []Page
	edits     []string
	sendErr   error
	updateErr error
	editErr   error
	updated   chan struct{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{updated: make(chan struct{}, 16)}
}

func (f *fakeSink) Send(_ context.Context, p Page) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, p)
	return "msg-1", nil
}

func (f *fakeSink) Update(_ context.Context, _ Event, p Page) error {
	f.mu.Lock()
	f.updates = append(f.updates, p)
	err := f.updateErr
	f.mu.Unlock()
	f.updated <- struct{}{}
	return err
}

func (f *fakeSink) Edit(_ context.Context, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, content)
	return f.editErr
}

func (f *fakeSink) pageIndexes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var idx []int
	for _, p := range f.updates {
		idx = append(idx, p.Index)
	}
	return idx
}

type fakeSource struct {
	mu         sync.Mutex
	ch         chan Event
	subscribed string
	cancelled  bool
	ready      chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan Event), ready: make(chan struct{})}
}

func (f *fakeSource) Subscribe(messageID string) (<-chan Event, func()) {
	f.mu.Lock()
	f.subscribed = messageID
	f.mu.Unlock()
	close(f.ready)
	return f.ch, func() {
		f.mu.Lock()
		f.cancelled = true
		f.mu.Unlock()
	}
}

func (f *fakeSource) press(t *testing.T, sink *fakeSink, id string, wantUpdate bool) {
	t.Helper()
	<-f.ready
	f.ch <- Event{ControlID: id}
	if wantUpdate {
		select {
		case <-sink.updated:
		case <-time.After(time.Second):
			t.Fatalf("no update after %q", id)
		}
	}
}

func threePages() string {
	return strings.Join([]string{"aaaa", "bbbb", "cccc"}, "\n")
}

func TestEngineNavigatesAndExpires(t *testing.T) {
	sink := newFakeSink()
	src := newFakeSource()
	e := &Engine{Source: src, Timeout: 200 * time.Millisecond, ExpiredNotice: "expired"}

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), threePages(), 5, sink) }()

	src.press(t, sink, ControlNext, true)
	src.press(t, sink, ControlNext, true)
	src.press(t, sink, ControlNext, true)
	src.press(t, sink, "bogus", false)
	src.press(t, sink, ControlFirst, true)
	src.press(t, sink, ControlLast, true)
	src.press(t, sink, ControlPrevious, true)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not time out")
	}

	require.Len(t, sink.sent, 1)
	assert.Equal(t, Page{Index: 0, Total: 3, Body: "aaaa"}, sink.sent[0])
	assert.Equal(t, []int{1, 2, 2, 0, 2, 1}, sink.pageIndexes())
	assert.Equal(t, "bbbb", sink.updates[5].Body)
	assert.Equal(t, []string{"expired"}, sink.edits)
	assert.Equal(t, "msg-1", src.subscribed)
	assert.True(t, src.cancelled)
}

func TestEngineSendError(t *testing.T) {
	sink := newFakeSink()
	sink.sendErr = errors.New("boom")
	e := &Engine{Source: newFakeSource()}

	err := e.Run(context.Background(), "text", 10, sink)
	assert.ErrorIs(t, err, sink.sendErr)
}

func TestEngineUpdateErrorIsReturned(t *testing.T) {
	sink := newFakeSink()
	sink.updateErr = errors.New("edit failed")
	src := newFakeSource()
	e := &Engine{Source: src, Timeout: time.Minute}

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), threePages(), 5, sink) }()

	src.press(t, sink, ControlNext, true)
	err := <-done
	assert.ErrorIs(t, err, sink.updateErr)
	assert.Empty(t, sink.edits)
}

func TestEngineExpiryEditFailureIsNotAnError(t *testing.T) {
	sink := newFakeSink()
	sink.editErr = errors.New("gone")
	e := &Engine{Source: newFakeSource(), Timeout: 10 * time.Millisecond}

	require.NoError(t, e.Run(context.Background(), "short", 100, sink))
	assert.Equal(t, []string{DefaultExpiredNotice}, sink.edits)
}

func TestEngineContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := newFakeSource()
	e := &Engine{Source: src, Timeout: time.Minute}

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, "text", 10, newFakeSink()) }()

	<-src.ready
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestEngineActivityResetsIdleTimer(t *testing.T) {
	sink := newFakeSink()
	src := newFakeSource()
	e := &Engine{Source: src, Timeout: 150 * time.Millisecond}

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), threePages(), 5, sink) }()

	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		src.press(t, sink, ControlNext, true)
	}
	require.NoError(t, <-done)
	assert.Len(t, sink.pageIndexes(), 4)
}
