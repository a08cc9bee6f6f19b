// settings.go - Persisted user preferences, stored beside the chat history.

package storage

import (
	"encoding/json"
	"log/slog"

	"urdugpt/src/models"
)

const settingsKey = "chat_settings"

// SettingsStore persists user preferences in the shared KV substrate.
// Missing or unreadable data falls back to the defaults.
type SettingsStore struct {
	kv     KV
	logger *slog.Logger
}

// NewSettingsStore builds a settings store over the given KV.
func NewSettingsStore(kv KV, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsStore{kv: kv, logger: logger}
}

// Load returns the persisted settings, or the defaults when nothing usable
// is stored.
func (s *SettingsStore) Load() models.Settings {
	data, err := s.kv.Get(settingsKey)
	if err != nil || data == nil {
		if err != nil {
			s.logger.Error("settings unreadable, using defaults", "error", err)
		}
		return models.DefaultSettings()
	}
	var out models.Settings
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Error("settings corrupt, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return out
}

// Save persists the settings.
func (s *SettingsStore) Save(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return &models.StorageWriteError{Message: "encode settings", Err: err}
	}
	if err := s.kv.Put(settingsKey, data); err != nil {
		return &models.StorageWriteError{Message: "write settings", Err: err}
	}
	return nil
}
