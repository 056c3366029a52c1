package components

import (
	"fmt"
	"html"
	"strings"
)

// SkillGroup is one card of the skills grid.
type SkillGroup struct {
	// Icon is a Unicode emoji or symbol
	Icon string
	// Title names the group
	Title string
	// Items are the individual skills
	Items []string
}

// SkillsOptions configures the skills section.
type SkillsOptions struct {
	ID       string
	Title    string
	Revealed bool
	Groups   []SkillGroup
}

// RenderSkills generates the skills grid.
func RenderSkills(opts SkillsOptions) string {
	var sb strings.Builder

	openSection(&sb, opts.ID, "", opts.Revealed)
	writeHeading(&sb, opts.ID, opts.Title)

	sb.WriteString(`<div class="skill-grid">`)
	sb.WriteString("\n")

	for _, g := range opts.Groups {
		sb.WriteString(`<article class="skill-group">`)
		sb.WriteString("\n")
		if g.Icon != "" {
			sb.WriteString(fmt.Sprintf(`<h3><span aria-hidden="true">%s</span> %s</h3>`, g.Icon, html.EscapeString(g.Title)))
		} else {
			sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(g.Title)))
		}
		sb.WriteString("\n")
		sb.WriteString(`<ul>`)
		for _, item := range g.Items {
			sb.WriteString(fmt.Sprintf(`<li>%s</li>`, html.EscapeString(item)))
		}
		sb.WriteString(`</ul>`)
		sb.WriteString("\n")
		sb.WriteString(`</article>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	closeSection(&sb)

	return sb.String()
}
