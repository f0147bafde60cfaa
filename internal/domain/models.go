package domain

import "time"

// HistoryEntry describes a manifest that was loaded successfully
type HistoryEntry struct {
	Path     string    `json:"path" yaml:"path"`
	AppID    string    `json:"app_id,omitempty" yaml:"app_id,omitempty"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Version  string    `json:"version,omitempty" yaml:"version,omitempty"`
	LoadedAt time.Time `json:"loaded_at" yaml:"loaded_at"`
}
