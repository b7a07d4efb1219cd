// Package settings persists display preferences under their own storage key,
// independent of the ledger. Preferences are presentation-only: the currency
// code labels amounts and never participates in computation.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"kopilka/internal/kv"
)

// settingsKey is the storage key for the flat preferences record.
const settingsKey = "app_settings"

// Settings is the whole preferences record. JSON field names match the
// stored blob layout.
type Settings struct {
	DarkMode      bool   `json:"isDarkMode"`
	Currency      string `json:"currency"`
	Notifications bool   `json:"notifications"`
}

// Default returns the settings used before the user ever saved any: light
// theme, rubles, notifications on.
func Default() Settings {
	return Settings{DarkMode: false, Currency: "RUB", Notifications: true}
}

func (s Settings) Validate() error {
	if _, ok := CurrencyInfo(s.Currency); !ok {
		return fmt.Errorf("unknown currency code %q", s.Currency)
	}
	return nil
}

// Store reads and writes the preferences record.
type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load returns the saved settings, or defaults when the record is absent,
// unreadable or corrupt. Like the ledger's list path, reads fail soft.
func (s *Store) Load(ctx context.Context) Settings {
	payload, ok, err := s.kv.Get(ctx, settingsKey)
	if err != nil {
		slog.WarnContext(ctx, "Settings read failed, using defaults", "error", err)
		return Default()
	}
	if !ok {
		return Default()
	}

	loaded := Default()
	if err := json.Unmarshal([]byte(payload), &loaded); err != nil {
		slog.WarnContext(ctx, "Settings blob corrupt, using defaults", "error", err)
		return Default()
	}
	if _, known := CurrencyInfo(loaded.Currency); !known {
		loaded.Currency = Default().Currency
	}
	return loaded
}

// Save replaces the whole preferences record.
func (s *Store) Save(ctx context.Context, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, settingsKey, string(payload)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	slog.InfoContext(ctx, "Settings saved",
		"currency", settings.Currency,
		"dark_mode", settings.DarkMode,
		"notifications", settings.Notifications)
	return nil
}
