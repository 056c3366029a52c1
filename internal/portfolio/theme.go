package portfolio

import (
	"context"

	"github.com/gabrielmiguelok/livefolio/pkg/logging"
)

// Theme is the page color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeSlot is the flag name the theme is persisted under, on the server
// and in the browser's localStorage.
const ThemeSlot = "site-theme"

// Theme toggle glyphs.
const (
	GlyphSun  = "☀️"
	GlyphMoon = "🌙"
)

// FlagStore persists small per-visitor string flags.
type FlagStore interface {
	GetFlag(ctx context.Context, owner, slot string) (string, error)
	SetFlag(ctx context.Context, owner, slot, value string) error
}

// LoadTheme reads the persisted theme once. A missing, unreadable or
// unrecognized flag yields ThemeLight.
func LoadTheme(ctx context.Context, store FlagStore, owner string) Theme {
	theme, _ := storedTheme(ctx, store, owner)
	return theme
}

// storedTheme reports whether a flag was actually read.
func storedTheme(ctx context.Context, store FlagStore, owner string) (Theme, bool) {
	if store == nil || owner == "" {
		return ThemeLight, false
	}
	v, err := store.GetFlag(ctx, owner, ThemeSlot)
	if err != nil {
		return ThemeLight, false
	}
	if Theme(v) == ThemeDark {
		return ThemeDark, true
	}
	return ThemeLight, true
}

// ThemeStore holds one visitor's theme and persists changes.
type ThemeStore struct {
	store FlagStore
	owner string
	dark  bool
}

// NewThemeStore creates a store starting at initial.
func NewThemeStore(store FlagStore, owner string, initial Theme) *ThemeStore {
	return &ThemeStore{store: store, owner: owner, dark: initial == ThemeDark}
}

// Set applies the mode and persists it for known visitors. Persistence
// failures are logged and otherwise ignored; the in-memory mode always
// changes.
func (ts *ThemeStore) Set(ctx context.Context, isDark bool) {
	ts.dark = isDark

	if ts.store == nil || ts.owner == "" {
		return
	}
	if err := ts.store.SetFlag(ctx, ts.owner, ThemeSlot, string(ts.Theme())); err != nil {
		logging.L(ctx).Warn("persist theme failed",
			logging.String("owner", ts.owner),
			logging.String("theme", string(ts.Theme())),
			logging.Err(err))
	}
}

// Toggle inverts the current mode.
func (ts *ThemeStore) Toggle(ctx context.Context) {
	ts.Set(ctx, !ts.dark)
}

// Dark reports whether dark mode is on.
func (ts *ThemeStore) Dark() bool {
	return ts.dark
}

// Theme returns the current theme.
func (ts *ThemeStore) Theme() Theme {
	if ts.dark {
		return ThemeDark
	}
	return ThemeLight
}

// Glyph returns the toggle label: the sun offers light mode while dark.
func (ts *ThemeStore) Glyph() string {
	if ts.dark {
		return GlyphSun
	}
	return GlyphMoon
}

// BodyClass returns the body class for the current theme.
func (ts *ThemeStore) BodyClass() string {
	if ts.dark {
		return "dark"
	}
	return ""
}
