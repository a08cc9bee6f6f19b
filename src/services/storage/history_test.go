package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"urdugpt/src/models"
)

// failingKV rejects every write, simulating a full or broken backing store.
type failingKV struct {
	*MemoryKV
}

func (f *failingKV) Put(key string, value []byte) error {
	return errors.New("quota exceeded")
}

func userMessage(id, text string, ts int64) models.Message {
	return models.Message{ID: id, Text: text, Sender: models.SenderUser, Timestamp: ts, Status: models.StatusSent}
}

func TestLoadInitializesEmptyRecord(t *testing.T) {
	kv := NewMemoryKV()
	store := NewHistoryStore(kv, nil)

	h := store.Load()
	if h.Version != CurrentVersion {
		t.Fatalf("version = %d, want %d", h.Version, CurrentVersion)
	}
	if len(h.Messages) != 0 {
		t.Fatalf("expected empty message list, got %d entries", len(h.Messages))
	}

	// First access persists the initialized record.
	data, err := kv.Get("chat_history")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if data == nil {
		t.Fatalf("expected initial record to be persisted")
	}
}

func TestLoadRecoversFromCorruptRecord(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Put("chat_history", []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}
	store := NewHistoryStore(kv, nil)

	h := store.Load()
	if h.Version != CurrentVersion || len(h.Messages) != 0 {
		t.Fatalf("expected fresh empty record, got %+v", h)
	}
}

func TestLoadStampsOldVersion(t *testing.T) {
	kv := NewMemoryKV()
	old := History{Version: 0, Messages: []models.Message{userMessage("a", "hello", 1)}}
	data, _ := json.Marshal(old)
	if err := kv.Put("chat_history", data); err != nil {
		t.Fatalf("put: %v", err)
	}
	store := NewHistoryStore(kv, nil)

	h := store.Load()
	if h.Version != CurrentVersion {
		t.Fatalf("version = %d, want %d", h.Version, CurrentVersion)
	}
	if len(h.Messages) != 1 || h.Messages[0].ID != "a" {
		t.Fatalf("migration must not touch messages, got %+v", h.Messages)
	}

	stored, _ := kv.Get("chat_history")
	var persisted History
	if err := json.Unmarshal(stored, &persisted); err != nil {
		t.Fatalf("unmarshal persisted: %v", err)
	}
	if persisted.Version != CurrentVersion {
		t.Fatalf("stamped version not persisted, got %d", persisted.Version)
	}
}

func TestLoadNormalizesInFlightStatus(t *testing.T) {
	kv := NewMemoryKV()
	msg := userMessage("a", "hello", 1)
	msg.Status = models.StatusSending
	data, _ := json.Marshal(History{Version: CurrentVersion, Messages: []models.Message{msg}})
	if err := kv.Put("chat_history", data); err != nil {
		t.Fatalf("put: %v", err)
	}
	store := NewHistoryStore(kv, nil)

	h := store.Load()
	if h.Messages[0].Status != models.StatusSent {
		t.Fatalf("status = %q, want %q", h.Messages[0].Status, models.StatusSent)
	}
}

func TestAppendTrimsToCapacity(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV(), nil)
	base := int64(1000)
	for i := 0; i <= MaxMessages; i++ {
		msg := userMessage(fmt.Sprintf("id-%d", i), "m", base+int64(i))
		if err := store.Append(msg); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	h := store.Load()
	if len(h.Messages) != MaxMessages {
		t.Fatalf("len = %d, want %d", len(h.Messages), MaxMessages)
	}
	// The oldest entry dropped; survivors keep their relative order.
	if h.Messages[0].Timestamp != base+1 {
		t.Fatalf("first timestamp = %d, want %d", h.Messages[0].Timestamp, base+1)
	}
	for i := 1; i < len(h.Messages); i++ {
		if h.Messages[i].Timestamp != h.Messages[i-1].Timestamp+1 {
			t.Fatalf("order broken at %d", i)
		}
	}
}

func TestAppendRoundTrip(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV(), nil)
	msg := userMessage("round-trip", "salaam", time.Now().UnixMilli())
	if err := store.Append(msg); err != nil {
		t.Fatalf("append: %v", err)
	}

	h := store.Load()
	got := h.Messages[len(h.Messages)-1]
	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestAppendSurfacesWriteFailure(t *testing.T) {
	store := NewHistoryStore(&failingKV{NewMemoryKV()}, nil)
	err := store.Append(userMessage("a", "hello", 1))
	var writeErr *models.StorageWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
}

func TestEvictExpired(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV(), nil)
	now := time.Now()
	store.now = func() time.Time { return now }

	day := int64(24 * 60 * 60 * 1000)
	old := userMessage("old", "stale", now.UnixMilli()-40*day)
	fresh := userMessage("fresh", "recent", now.UnixMilli()-1*day)
	for _, m := range []models.Message{old, fresh} {
		if err := store.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := store.EvictExpired(RetentionDays); err != nil {
		t.Fatalf("evict: %v", err)
	}
	h := store.Load()
	if len(h.Messages) != 1 || h.Messages[0].ID != "fresh" {
		t.Fatalf("expected only the recent message, got %+v", h.Messages)
	}
}

func TestEvictExpiredKeepsOrder(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV(), nil)
	now := time.Now()
	store.now = func() time.Time { return now }

	day := int64(24 * 60 * 60 * 1000)
	msgs := []models.Message{
		userMessage("a", "1", now.UnixMilli()-5*day),
		userMessage("b", "2", now.UnixMilli()-45*day),
		userMessage("c", "3", now.UnixMilli()-2*day),
		userMessage("d", "4", now.UnixMilli()-1*day),
	}
	for _, m := range msgs {
		if err := store.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := store.EvictExpired(RetentionDays); err != nil {
		t.Fatalf("evict: %v", err)
	}
	h := store.Load()
	var ids []string
	for _, m := range h.Messages {
		ids = append(ids, m.ID)
	}
	want := []string{"a", "c", "d"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV(), nil)
	if err := store.Append(userMessage("a", "hello", 1)); err != nil {
		t.Fatalf("append: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.Clear(); err != nil {
			t.Fatalf("clear %d: %v", i, err)
		}
		h := store.Load()
		if h.Version != CurrentVersion || len(h.Messages) != 0 {
			t.Fatalf("clear %d: got %+v", i, h)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV(), nil)
	user := userMessage("u", "hello", 1)
	bot := models.Message{ID: "b", Text: "reply", Sender: models.SenderBot, Timestamp: 2}
	for _, m := range []models.Message{user, bot} {
		if err := store.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := store.UpdateStatus("u", models.StatusFailed); err != nil {
		t.Fatalf("update: %v", err)
	}
	h := store.Load()
	if h.Messages[0].Status != models.StatusFailed {
		t.Fatalf("status = %q, want failed", h.Messages[0].Status)
	}

	// Bot messages and unknown ids are left alone.
	if err := store.UpdateStatus("b", models.StatusRead); err != nil {
		t.Fatalf("update bot: %v", err)
	}
	if err := store.UpdateStatus("missing", models.StatusRead); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	h = store.Load()
	if h.Messages[1].Status != "" {
		t.Fatalf("bot message gained a status: %q", h.Messages[1].Status)
	}
}
