package service

import (
	"context"
	"fmt"
	"strconv"

	"coursepage/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main Wails window size between sessions as two
// rows of app_settings.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	settings *storage.SettingsStore
}

// NewWindowSettingsService creates a WindowSettingsService. settings may be
// nil when the file backend is used; defaults are returned then.
func NewWindowSettingsService(settings *storage.SettingsStore) *WindowSettingsService {
	return &WindowSettingsService{settings: settings}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	defaultWindowWidth  = 1440
	defaultWindowHeight = 900
	minWindowWidth      = 1024
	minWindowHeight     = 640
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *WindowSettingsService) LoadWindowSize(ctx context.Context) WindowSize {
	size := WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if s.settings == nil {
		return size
	}
	if w := s.readInt(ctx, settingWindowWidth); w >= minWindowWidth {
		size.Width = w
	}
	if h := s.readInt(ctx, settingWindowHeight); h >= minWindowHeight {
		size.Height = h
	}
	return size
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(ctx context.Context, width, height int) error {
	if s.settings == nil {
		return fmt.Errorf("window settings: no settings store")
	}
	if err := s.settings.Set(ctx, settingWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return s.settings.Set(ctx, settingWindowHeight, strconv.Itoa(height))
}

func (s *WindowSettingsService) readInt(ctx context.Context, key string) int {
	v, ok, err := s.settings.Get(ctx, key)
	if err != nil || !ok {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}
