package portfolio

// Menu toggle glyphs.
const (
	GlyphMenu  = "☰"
	GlyphClose = "✕"
)

// Menu is the small-screen navigation menu.
type Menu struct {
	open bool
}

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() bool {
	m.open = !m.open
	return m.open
}

// Close hides the menu.
func (m *Menu) Close() {
	m.open = false
}

// Open reports whether the menu is shown.
func (m *Menu) Open() bool {
	return m.open
}

// Glyph returns the toggle label.
func (m *Menu) Glyph() string {
	if m.open {
		return GlyphClose
	}
	return GlyphMenu
}
