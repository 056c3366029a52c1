// Package components provides the section renderers of the portfolio page.
// Each renderer takes an options struct and returns markup; live regions
// carry data-slot or data-bind markers so the router can diff them.
package components

import (
	"fmt"
	"html"
	"strings"
)

// SectionBindPrefix prefixes the data-bind key of every revealable section.
const SectionBindPrefix = "section-"

// openSection writes the opening tag of a revealable section. Revealed
// sections carry the fade-in class.
func openSection(sb *strings.Builder, id, class string, revealed bool) {
	classes := "section"
	if class != "" {
		classes += " " + class
	}
	if revealed {
		classes += " fade-in"
	}
	sb.WriteString(fmt.Sprintf(`<section id="%s" class="%s" data-bind="%s" data-reveal aria-labelledby="%s-title">`,
		html.EscapeString(id),
		classes,
		html.EscapeString(SectionBindPrefix+id),
		html.EscapeString(id)))
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
}

func closeSection(sb *strings.Builder) {
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")
}

func writeHeading(sb *strings.Builder, id, title string) {
	sb.WriteString(fmt.Sprintf(`<h2 id="%s-title">%s</h2>`, html.EscapeString(id), html.EscapeString(title)))
	sb.WriteString("\n")
}
