// controller.go - Owns the send transaction: persistence, the status state
// machine, and the remote generation call.

package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"urdugpt/src/models"
	"urdugpt/src/services/gemini"
	"urdugpt/src/services/sound"
	"urdugpt/src/services/storage"
)

const (
	// Cosmetic transitions fire on fixed timers relative to message
	// creation, not on acknowledgements.
	defaultDeliveredDelay = 1 * time.Second
	defaultReadDelay      = 2 * time.Second
)

// apologyText is the canned bot reply appended when generation fails.
const apologyText = "معاف کیجیے، کچھ گڑبڑ ہو گئی۔"

// Controller drives a user message from submission to either a bot reply or
// a failure reply, keeping the store and the UI event stream consistent.
// Sends are serialized by a single-flight gate; this is a per-process
// guarantee only, not mutual exclusion across processes sharing a store.
type Controller struct {
	store     *storage.HistoryStore
	generator gemini.Generator
	sounds    *sound.Notifier
	emit      func(Event)
	logger    *slog.Logger

	mu       sync.Mutex
	settings models.Settings
	loading  bool
	timers   map[string][]*time.Timer

	deliveredDelay time.Duration
	readDelay      time.Duration
}

// NewController wires a controller. The emit sink receives every event on
// the goroutine that produced it; a nil sink is allowed.
func NewController(store *storage.HistoryStore, generator gemini.Generator, sounds *sound.Notifier, settings models.Settings, emit func(Event), logger *slog.Logger) *Controller {
	if emit == nil {
		emit = func(Event) {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:          store,
		generator:      generator,
		sounds:         sounds,
		settings:       settings,
		emit:           emit,
		logger:         logger,
		timers:         make(map[string][]*time.Timer),
		deliveredDelay: defaultDeliveredDelay,
		readDelay:      defaultReadDelay,
	}
}

// UpdateSettings replaces the controller's view of the user preferences.
func (c *Controller) UpdateSettings(settings models.Settings) {
	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()
}

// Loading reports whether a send is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Send runs one send transaction. Blank or whitespace-only input is
// rejected with a *models.ValidationError before any I/O; a call while a
// send is already in flight is a no-op. The gate is cleared on every exit
// path.
func (c *Controller) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if err := models.ValidateText(trimmed); err != nil {
		return err
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()
	c.emit(LoadingChanged{Loading: true})

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
		c.emit(LoadingChanged{Loading: false})
	}()

	msg := models.NewUserMessage(trimmed)
	c.emit(MessageAppended{Message: msg})
	if err := c.store.Append(msg); err != nil {
		c.fail(msg.ID)
		c.emit(ErrorOccurred{Err: err})
		return err
	}

	c.playCue(sound.CueSend)

	c.emit(StatusChanged{ID: msg.ID, Status: models.StatusSent})
	c.scheduleCosmetic(msg.ID)

	reply, err := c.generator.Generate(ctx, trimmed)
	if err != nil {
		c.logger.Error("generation failed", "message_id", msg.ID, "error", err)
		c.fail(msg.ID)
		apology := models.NewBotMessage(apologyText)
		c.emit(MessageAppended{Message: apology})
		if appendErr := c.store.Append(apology); appendErr != nil {
			c.logger.Error("persist apology reply", "error", appendErr)
		}
		c.emit(ErrorOccurred{Err: err})
		return err
	}

	bot := models.NewBotMessage(reply)
	c.playCue(sound.CueReceive)
	c.emit(MessageAppended{Message: bot})
	if err := c.store.Append(bot); err != nil {
		c.emit(ErrorOccurred{Err: err})
		return err
	}
	return nil
}

// scheduleCosmetic arms the delivered/read timer chain for a message.
func (c *Controller) scheduleCosmetic(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delivered := time.AfterFunc(c.deliveredDelay, func() { c.cosmetic(id, models.StatusDelivered) })
	read := time.AfterFunc(c.readDelay, func() { c.cosmetic(id, models.StatusRead) })
	c.timers[id] = []*time.Timer{delivered, read}
}

// cosmetic fires a timer-driven transition unless the chain was cancelled.
func (c *Controller) cosmetic(id string, status models.Status) {
	c.mu.Lock()
	if _, armed := c.timers[id]; !armed {
		c.mu.Unlock()
		return
	}
	if status == models.StatusRead {
		delete(c.timers, id)
	}
	c.mu.Unlock()
	c.emit(StatusChanged{ID: id, Status: status})
}

// fail cancels any pending cosmetic transitions and moves the message to
// the terminal failed state, durably. A failed message can never be
// resurrected into delivered or read.
func (c *Controller) fail(id string) {
	c.mu.Lock()
	for _, t := range c.timers[id] {
		t.Stop()
	}
	delete(c.timers, id)
	c.mu.Unlock()

	if err := c.store.UpdateStatus(id, models.StatusFailed); err != nil {
		c.logger.Error("persist failed status", "message_id", id, "error", err)
	}
	c.emit(StatusChanged{ID: id, Status: models.StatusFailed})
}

func (c *Controller) playCue(cue sound.Cue) {
	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()
	if settings.Sounds.Enabled {
		c.sounds.Play(cue, settings.Sounds.Volume)
	}
}
