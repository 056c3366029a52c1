package components

import (
	"fmt"
	"html"
	"strings"
)

// TabItem is one tab control of the projects section.
type TabItem struct {
	Key    string
	Label  string
	Active bool
}

// CardItem is one project card.
type CardItem struct {
	ID       string
	Category string
	Title    string
	Subtitle string
	Hidden   bool
}

// ProjectsOptions configures the tabbed projects section.
type ProjectsOptions struct {
	ID       string
	Title    string
	Revealed bool
	Tabs     []TabItem
	Cards    []CardItem
}

// RenderProjects generates the tab list and the project cards. Tabs and
// cards are attribute-bound so a tab switch only patches classes and the
// hidden attribute.
func RenderProjects(opts ProjectsOptions) string {
	var sb strings.Builder

	openSection(&sb, opts.ID, "", opts.Revealed)
	writeHeading(&sb, opts.ID, opts.Title)

	sb.WriteString(`<div class="tabs" role="tablist" aria-label="Project categories">`)
	sb.WriteString("\n")
	for _, tab := range opts.Tabs {
		class := "tab"
		selected := "false"
		tabindex := "-1"
		if tab.Active {
			class += " active"
			selected = "true"
			tabindex = "0"
		}
		key := html.EscapeString(tab.Key)
		sb.WriteString(fmt.Sprintf(`<button class="%s" type="button" role="tab" data-tab="%s" aria-selected="%s" tabindex="%s" data-bind="tab-%s" lv-click="select_tab" lv-value-tab="%s">%s</button>`,
			class, key, selected, tabindex, key, key, html.EscapeString(tab.Label)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="project-grid">`)
	sb.WriteString("\n")
	for _, card := range opts.Cards {
		hidden := ""
		if card.Hidden {
			hidden = " hidden"
		}
		id := html.EscapeString(card.ID)
		sb.WriteString(fmt.Sprintf(`<article class="project-card" data-type="%s" data-bind="card-%s"%s>`,
			html.EscapeString(card.Category), id, hidden))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(card.Title)))
		sb.WriteString("\n")
		if card.Subtitle != "" {
			sb.WriteString(fmt.Sprintf(`<p class="muted">%s</p>`, html.EscapeString(card.Subtitle)))
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf(`<button class="btn" type="button" data-project="%s" lv-click="open_modal" lv-value-project="%s">View details</button>`,
			id, id))
		sb.WriteString("\n")
		sb.WriteString(`</article>`)
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	closeSection(&sb)

	return sb.String()
}
