// settings.go - User preference types persisted alongside the chat history.

package models

// SoundSettings controls the terminal sound cues.
type SoundSettings struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// Settings holds user preferences. They are loaded once at startup and
// passed to the components that need them, never held as a process-wide
// singleton.
type Settings struct {
	Sounds          SoundSettings `json:"sounds"`
	DarkMode        bool          `json:"dark_mode"`
	CompactMessages bool          `json:"compact_messages"`
	Notifications   bool          `json:"notifications"`
	ProfilePhoto    string        `json:"profile_photo,omitempty"`
}

// DefaultSettings returns the out-of-box preferences.
func DefaultSettings() Settings {
	return Settings{
		Sounds:        SoundSettings{Enabled: true, Volume: 0.5},
		Notifications: true,
	}
}
