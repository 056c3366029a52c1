package components

import (
	"fmt"
	"html"
	"strings"
)

// NavItem is one in-page navigation link.
type NavItem struct {
	// Label is the link text
	Label string
	// Href is the fragment link, e.g. "#projects"
	Href string
	// Active marks the link of the section currently scrolled to
	Active bool
}

// NavbarOptions configures the navbar component.
type NavbarOptions struct {
	// Logo is the logo text (usually the owner's name)
	Logo string
	// LogoHref is where the logo links to
	LogoHref string
	// Links are the navigation links
	Links []NavItem
	// MenuOpen shows the link list on small screens
	MenuOpen bool
	// MenuGlyph is the menu toggle label
	MenuGlyph string
	// ThemeGlyph is the theme toggle label
	ThemeGlyph string
	// Dark reports the current theme for aria-pressed
	Dark bool
}

// NavBindKey returns the data-bind key for a nav link.
func NavBindKey(href string) string {
	return "nav-" + strings.TrimPrefix(href, "#")
}

// RenderNavbar generates the fixed navigation bar with the menu and
// theme toggles.
func RenderNavbar(opts NavbarOptions) string {
	var sb strings.Builder

	sb.WriteString(`<a href="#main-content" class="skip-link">Skip to main content</a>`)
	sb.WriteString("\n")

	sb.WriteString(`<nav class="nav" aria-label="Main navigation">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container nav-inner">`)
	sb.WriteString("\n")

	logoHref := opts.LogoHref
	if logoHref == "" {
		logoHref = "#"
	}
	sb.WriteString(fmt.Sprintf(`<a href="%s" class="logo">%s</a>`,
		html.EscapeString(logoHref), html.EscapeString(opts.Logo)))
	sb.WriteString("\n")

	linksClass := "nav-links"
	if opts.MenuOpen {
		linksClass += " open"
	}
	sb.WriteString(fmt.Sprintf(`<div id="navLinks" class="%s" data-bind="nav-links">`, linksClass))
	sb.WriteString("\n")

	for _, link := range opts.Links {
		class := "nav-link"
		current := ""
		if link.Active {
			class += " active"
			current = ` aria-current="true"`
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="%s" data-bind="%s" lv-click="nav_click"%s>%s</a>`,
			html.EscapeString(link.Href),
			class,
			html.EscapeString(NavBindKey(link.Href)),
			current,
			html.EscapeString(link.Label)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="nav-actions">`)
	sb.WriteString("\n")

	pressed := "false"
	if opts.Dark {
		pressed = "true"
	}
	sb.WriteString(fmt.Sprintf(`<button id="themeToggle" class="btn btn-icon" type="button" lv-click="toggle_theme" aria-label="Toggle dark mode" aria-pressed="%s" data-slot="theme-glyph">%s</button>`,
		pressed, html.EscapeString(opts.ThemeGlyph)))
	sb.WriteString("\n")

	expanded := "false"
	if opts.MenuOpen {
		expanded = "true"
	}
	sb.WriteString(fmt.Sprintf(`<button id="menuToggle" class="btn btn-icon menu-toggle" type="button" lv-click="toggle_menu" aria-controls="navLinks" aria-expanded="%s" aria-label="Toggle menu" data-slot="menu-glyph">%s</button>`,
		expanded, html.EscapeString(opts.MenuGlyph)))
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}
