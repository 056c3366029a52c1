package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/gabrielmiguelok/livefolio/pkg/state"
)

func newFlags(t *testing.T) *state.Flags {
	t.Helper()
	store := state.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return state.NewFlags(store)
}

type failingFlags struct{}

func (failingFlags) GetFlag(ctx context.Context, owner, slot string) (string, error) {
	return "", errors.New("store down")
}

func (failingFlags) SetFlag(ctx context.Context, owner, slot, value string) error {
	return errors.New("store down")
}

func TestThemeStore_Persists(t *testing.T) {
	ctx := context.Background()
	flags := newFlags(t)
	ts := NewThemeStore(flags, "v1", LoadTheme(ctx, flags, "v1"))

	ts.Set(ctx, true)
	if v, _ := flags.GetFlag(ctx, "v1", ThemeSlot); v != "dark" {
		t.Errorf("Set(true) stored %q", v)
	}

	ts.Set(ctx, false)
	if v, _ := flags.GetFlag(ctx, "v1", ThemeSlot); v != "light" {
		t.Errorf("Set(false) stored %q", v)
	}
}

func TestLoadTheme(t *testing.T) {
	ctx := context.Background()
	flags := newFlags(t)

	if got := LoadTheme(ctx, flags, "fresh"); got != ThemeLight {
		t.Errorf("no flag: got %s", got)
	}

	flags.SetFlag(ctx, "v1", ThemeSlot, "dark")
	if got := LoadTheme(ctx, flags, "v1"); got != ThemeDark {
		t.Errorf("dark flag: got %s", got)
	}

	flags.SetFlag(ctx, "v2", ThemeSlot, "purple")
	if got := LoadTheme(ctx, flags, "v2"); got != ThemeLight {
		t.Errorf("unknown value: got %s", got)
	}

	if got := LoadTheme(ctx, failingFlags{}, "v1"); got != ThemeLight {
		t.Errorf("unreadable store: got %s", got)
	}
	if got := LoadTheme(ctx, nil, "v1"); got != ThemeLight {
		t.Errorf("nil store: got %s", got)
	}
}

func TestThemeStore_ToggleSurvivesStoreFailure(t *testing.T) {
	ctx := context.Background()
	ts := NewThemeStore(failingFlags{}, "v1", ThemeLight)

	ts.Toggle(ctx)
	if !ts.Dark() || ts.Theme() != ThemeDark {
		t.Error("toggle should apply even when persistence fails")
	}
	if ts.Glyph() != GlyphSun || ts.BodyClass() != "dark" {
		t.Errorf("dark glyph/class: %q %q", ts.Glyph(), ts.BodyClass())
	}

	ts.Toggle(ctx)
	if ts.Dark() || ts.Glyph() != GlyphMoon || ts.BodyClass() != "" {
		t.Error("second toggle should return to light")
	}
}
