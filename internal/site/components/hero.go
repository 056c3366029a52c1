package components

import (
	"fmt"
	"html"
	"strings"
)

// HeroOptions configures the introduction section.
type HeroOptions struct {
	// ID is the section id the nav links point at
	ID string
	// Revealed adds the fade-in class
	Revealed bool
	// Greeting is the small line above the name
	Greeting string
	// Name is the main headline
	Name string
	// Lead is the paragraph below the headline
	Lead string
	// PrimaryButton is the primary call to action
	PrimaryButton HeroButton
	// SecondaryButton is the secondary call to action
	SecondaryButton HeroButton
}

// HeroButton represents a hero section button.
type HeroButton struct {
	Text string
	URL  string
}

// RenderHero generates the introduction section.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	openSection(&sb, opts.ID, "hero", opts.Revealed)

	if opts.Greeting != "" {
		sb.WriteString(fmt.Sprintf(`<p class="muted">%s</p>`, html.EscapeString(opts.Greeting)))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`<h1 id="%s-title">%s</h1>`, html.EscapeString(opts.ID), html.EscapeString(opts.Name)))
	sb.WriteString("\n")

	if opts.Lead != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero-lead">%s</p>`, html.EscapeString(opts.Lead)))
		sb.WriteString("\n")
	}

	if opts.PrimaryButton.Text != "" || opts.SecondaryButton.Text != "" {
		sb.WriteString(`<div class="hero-actions">`)
		sb.WriteString("\n")
		if opts.PrimaryButton.Text != "" {
			sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-primary">%s</a>`,
				html.EscapeString(opts.PrimaryButton.URL), html.EscapeString(opts.PrimaryButton.Text)))
			sb.WriteString("\n")
		}
		if opts.SecondaryButton.Text != "" {
			sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn">%s</a>`,
				html.EscapeString(opts.SecondaryButton.URL), html.EscapeString(opts.SecondaryButton.Text)))
			sb.WriteString("\n")
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	closeSection(&sb)

	return sb.String()
}
