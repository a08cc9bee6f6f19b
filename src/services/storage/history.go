// history.go - Bounded, versioned chat history persisted through the KV substrate.

package storage

import (
	"encoding/json"
	"log/slog"
	"time"

	"urdugpt/src/models"
)

const historyKey = "chat_history"

const (
	// CurrentVersion gates future schema migrations. A loaded record with a
	// lower version is stamped to this value and re-persisted.
	CurrentVersion = 1

	// MaxMessages bounds the persisted history; the oldest entries drop
	// first when the bound is exceeded.
	MaxMessages = 100

	// RetentionDays is the default age bound applied once at startup.
	RetentionDays = 30
)

// History is the persisted conversation record.
type History struct {
	Version  int              `json:"version"`
	Messages []models.Message `json:"messages"`
}

func emptyHistory() History {
	return History{Version: CurrentVersion, Messages: []models.Message{}}
}

// HistoryStore owns the retention and capacity policy for the persisted
// conversation record. Read faults are absorbed and degrade to an empty
// record; write faults surface as *models.StorageWriteError.
type HistoryStore struct {
	kv     KV
	logger *slog.Logger
	now    func() time.Time
}

// NewHistoryStore builds a store over the given KV.
func NewHistoryStore(kv KV, logger *slog.Logger) *HistoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryStore{kv: kv, logger: logger, now: time.Now}
}

// Load returns the persisted record, lazily initializing an empty one on
// first access. Unreadable or corrupt data degrades to a fresh empty record
// so storage corruption never blocks the UI.
func (s *HistoryStore) Load() History {
	data, err := s.kv.Get(historyKey)
	if err != nil {
		readErr := &models.StorageReadError{Message: "read chat history", Err: err}
		s.logger.Error("history unreadable, starting empty", "error", readErr)
		return emptyHistory()
	}
	if data == nil {
		h := emptyHistory()
		if err := s.persist(h); err != nil {
			s.logger.Error("persist initial history", "error", err)
		}
		return h
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		readErr := &models.StorageReadError{Message: "chat history corrupt", Err: err}
		s.logger.Error("history corrupt, starting empty", "error", readErr)
		return emptyHistory()
	}
	if h.Messages == nil {
		h.Messages = []models.Message{}
	}

	changed := false
	if h.Version < CurrentVersion {
		h.Version = CurrentVersion
		changed = true
	}
	// A reload can never resurrect an in-flight send.
	for i := range h.Messages {
		if h.Messages[i].Status == models.StatusSending {
			h.Messages[i].Status = models.StatusSent
			changed = true
		}
	}
	if changed {
		if err := s.persist(h); err != nil {
			s.logger.Error("persist migrated history", "error", err)
		}
	}
	return h
}

// Append stores msg at the end of the record, trimming to the newest
// MaxMessages entries.
func (s *HistoryStore) Append(msg models.Message) error {
	h := s.Load()
	h.Messages = append(h.Messages, msg)
	if len(h.Messages) > MaxMessages {
		h.Messages = h.Messages[len(h.Messages)-MaxMessages:]
	}
	return s.persist(h)
}

// EvictExpired drops every message older than retentionDays and persists the
// result, even when nothing changed. Invoked once at application start.
func (s *HistoryStore) EvictExpired(retentionDays int) error {
	h := s.Load()
	cutoff := s.now().UnixMilli() - int64(retentionDays)*24*60*60*1000
	kept := h.Messages[:0]
	for _, m := range h.Messages {
		if m.Timestamp >= cutoff {
			kept = append(kept, m)
		}
	}
	h.Messages = kept
	return s.persist(h)
}

// Clear replaces the record with an empty one at the current version.
func (s *HistoryStore) Clear() error {
	return s.persist(emptyHistory())
}

// UpdateStatus persists a status change for the user message with the given
// id. Unknown ids and bot messages are a no-op.
func (s *HistoryStore) UpdateStatus(id string, status models.Status) error {
	h := s.Load()
	changed := false
	for i := range h.Messages {
		if h.Messages[i].ID == id && h.Messages[i].Sender == models.SenderUser {
			h.Messages[i].Status = status
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist(h)
}

func (s *HistoryStore) persist(h History) error {
	data, err := json.Marshal(h)
	if err != nil {
		return &models.StorageWriteError{Message: "encode chat history", Err: err}
	}
	if err := s.kv.Put(historyKey, data); err != nil {
		return &models.StorageWriteError{Message: "write chat history", Err: err}
	}
	return nil
}
