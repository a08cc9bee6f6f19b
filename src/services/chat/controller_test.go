package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"urdugpt/src/models"
	"urdugpt/src/services/storage"
)

type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	block chan struct{} // when non-nil, Generate waits on it
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// eventLog is a thread-safe sink for controller events.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) sink(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// statusSeq returns the observed status transitions for one message id, in
// order, including the initial status carried by MessageAppended.
func (l *eventLog) statusSeq(id string) []models.Status {
	var seq []models.Status
	for _, e := range l.snapshot() {
		switch ev := e.(type) {
		case MessageAppended:
			if ev.Message.ID == id {
				seq = append(seq, ev.Message.Status)
			}
		case StatusChanged:
			if ev.ID == id {
				seq = append(seq, ev.Status)
			}
		}
	}
	return seq
}

func (l *eventLog) userMessageID(t *testing.T) string {
	t.Helper()
	for _, e := range l.snapshot() {
		if ev, ok := e.(MessageAppended); ok && ev.Message.Sender == models.SenderUser {
			return ev.Message.ID
		}
	}
	t.Fatalf("no user message appended")
	return ""
}

func newTestController(gen *fakeGenerator, log *eventLog) (*Controller, *storage.HistoryStore) {
	store := storage.NewHistoryStore(storage.NewMemoryKV(), nil)
	ctrl := NewController(store, gen, nil, models.DefaultSettings(), log.sink, nil)
	ctrl.deliveredDelay = 20 * time.Millisecond
	ctrl.readDelay = 40 * time.Millisecond
	return ctrl, store
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached in time")
}

func TestSendRejectsBlankInput(t *testing.T) {
	log := &eventLog{}
	gen := &fakeGenerator{reply: "reply"}
	ctrl, store := newTestController(gen, log)

	err := ctrl.Send(context.Background(), "   ")
	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gen.callCount() != 0 {
		t.Fatalf("generator must not be called")
	}
	if got := len(store.Load().Messages); got != 0 {
		t.Fatalf("store must stay empty, has %d messages", got)
	}
	if len(log.snapshot()) != 0 {
		t.Fatalf("no events expected, got %v", log.snapshot())
	}
	if ctrl.Loading() {
		t.Fatalf("loading must remain false")
	}
}

func TestSendSuccessStatusSequence(t *testing.T) {
	log := &eventLog{}
	gen := &fakeGenerator{reply: "شعر حاضر ہے"}
	ctrl, store := newTestController(gen, log)

	if err := ctrl.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	id := log.userMessageID(t)
	waitFor(t, func() bool {
		seq := log.statusSeq(id)
		return len(seq) > 0 && seq[len(seq)-1] == models.StatusRead
	})

	want := []models.Status{models.StatusSending, models.StatusSent, models.StatusDelivered, models.StatusRead}
	seq := log.statusSeq(id)
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}

	h := store.Load()
	if len(h.Messages) != 2 {
		t.Fatalf("expected user + bot messages, got %d", len(h.Messages))
	}
	if h.Messages[1].Sender != models.SenderBot || h.Messages[1].Text != "شعر حاضر ہے" {
		t.Fatalf("bot reply not persisted: %+v", h.Messages[1])
	}
	if h.Messages[1].Status != "" {
		t.Fatalf("bot message must carry no status")
	}
	if ctrl.Loading() {
		t.Fatalf("loading must be cleared")
	}
}

func TestSendFailureIsTerminal(t *testing.T) {
	log := &eventLog{}
	gen := &fakeGenerator{err: &models.GenerationError{Message: "boom"}}
	ctrl, store := newTestController(gen, log)

	err := ctrl.Send(context.Background(), "hello")
	var genErr *models.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	id := log.userMessageID(t)

	// Give the cancelled cosmetic timers a chance to misfire.
	time.Sleep(120 * time.Millisecond)

	seq := log.statusSeq(id)
	if len(seq) == 0 || seq[len(seq)-1] != models.StatusFailed {
		t.Fatalf("sequence = %v, want terminal failed", seq)
	}
	for _, s := range seq {
		if s == models.StatusDelivered || s == models.StatusRead {
			t.Fatalf("failed message resurrected: %v", seq)
		}
	}

	h := store.Load()
	if len(h.Messages) != 2 {
		t.Fatalf("expected user message + apology, got %d", len(h.Messages))
	}
	if h.Messages[0].Status != models.StatusFailed {
		t.Fatalf("failed status not durable: %+v", h.Messages[0])
	}
	if h.Messages[1].Sender != models.SenderBot || h.Messages[1].Text != apologyText {
		t.Fatalf("apology reply not appended: %+v", h.Messages[1])
	}

	var sawBanner bool
	for _, e := range log.snapshot() {
		if _, ok := e.(ErrorOccurred); ok {
			sawBanner = true
		}
	}
	if !sawBanner {
		t.Fatalf("expected an ErrorOccurred event")
	}
	if ctrl.Loading() {
		t.Fatalf("loading must be cleared after failure")
	}
}

func TestSendGateBlocksConcurrentSubmit(t *testing.T) {
	log := &eventLog{}
	gen := &fakeGenerator{reply: "reply", block: make(chan struct{})}
	ctrl, store := newTestController(gen, log)

	done := make(chan error, 1)
	go func() { done <- ctrl.Send(context.Background(), "first") }()
	waitFor(t, ctrl.Loading)

	if err := ctrl.Send(context.Background(), "second"); err != nil {
		t.Fatalf("gated send must be a no-op, got %v", err)
	}
	if gen.callCount() != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.callCount())
	}

	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}

	h := store.Load()
	if len(h.Messages) != 2 {
		t.Fatalf("gated send must append nothing, store has %d messages", len(h.Messages))
	}
	if ctrl.Loading() {
		t.Fatalf("loading must be cleared")
	}
}

func TestSendSurfacesStoreWriteFailure(t *testing.T) {
	log := &eventLog{}
	gen := &fakeGenerator{reply: "reply"}
	store := storage.NewHistoryStore(readOnlyKV{}, nil)
	ctrl := NewController(store, gen, nil, models.DefaultSettings(), log.sink, nil)

	err := ctrl.Send(context.Background(), "hello")
	var writeErr *models.StorageWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
	if gen.callCount() != 0 {
		t.Fatalf("generator must not run after a persist failure")
	}
	id := log.userMessageID(t)
	seq := log.statusSeq(id)
	if seq[len(seq)-1] != models.StatusFailed {
		t.Fatalf("sequence = %v, want terminal failed", seq)
	}
	if ctrl.Loading() {
		t.Fatalf("loading must be cleared")
	}
}

// readOnlyKV accepts reads and rejects every write.
type readOnlyKV struct{}

func (readOnlyKV) Get(key string) ([]byte, error) { return nil, nil }
func (readOnlyKV) Put(key string, v []byte) error { return errors.New("read-only") }
func (readOnlyKV) Close() error                   { return nil }
