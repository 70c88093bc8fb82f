package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ThemePreferenceKey is the fixed key the theme preference is stored under.
const ThemePreferenceKey = "theme"

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned by ParseTheme for values other than light or dark.
var ErrInvalidTheme = errors.New("dashboard: invalid theme")

// ParseTheme validates a stored or submitted theme value.
func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidTheme, value)
}

// Normalize maps anything other than dark to light.
func (t Theme) Normalize() Theme {
	if t == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t.Normalize() == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// ThemeStore persists the theme preference.
type ThemeStore interface {
	LoadTheme(ctx context.Context, key string) (Theme, bool, error)
	SaveTheme(ctx context.Context, key string, theme Theme) error
}

// ResolveTheme picks the stored preference when present, then the system
// dark-mode preference, then light. A stored value other than dark is light.
func ResolveTheme(stored Theme, ok bool, systemPrefersDark bool) Theme {
	if ok {
		return stored.Normalize()
	}
	if systemPrefersDark {
		return ThemeDark
	}
	return ThemeLight
}

// LoadThemePreference reads the viewer's theme from store and resolves it.
func LoadThemePreference(ctx context.Context, store ThemeStore, viewer ViewerContext) (Theme, error) {
	if store == nil {
		return ResolveTheme("", false, viewer.PrefersDarkScheme), nil
	}
	stored, ok, err := store.LoadTheme(ctx, ThemeKey(viewer))
	if err != nil {
		return "", err
	}
	return ResolveTheme(stored, ok, viewer.PrefersDarkScheme), nil
}

// ThemeKey namespaces the theme key per viewer when a user id is known.
func ThemeKey(viewer ViewerContext) string {
	if viewer.UserID == "" {
		return ThemePreferenceKey
	}
	return viewer.UserID + "::" + ThemePreferenceKey
}

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]Theme
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]Theme),
	}
}

// LoadTheme returns the stored theme, if any.
func (s *InMemoryPreferenceStore) LoadTheme(_ context.Context, key string) (Theme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theme, ok := s.data[s.key(key)]
	return theme, ok, nil
}

// SaveTheme persists the theme for key.
func (s *InMemoryPreferenceStore) SaveTheme(_ context.Context, key string, theme Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(key)] = theme.Normalize()
	return nil
}

func (s *InMemoryPreferenceStore) key(key string) string {
	if key == "" {
		return ThemePreferenceKey
	}
	return key
}
