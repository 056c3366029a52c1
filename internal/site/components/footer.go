package components

import (
	"fmt"
	"html"
	"strings"
)

// FooterOptions configures the footer component.
type FooterOptions struct {
	// Owner is the copyright holder
	Owner string
	// Year is the copyright year
	Year int
	// Tagline follows the copyright line
	Tagline string
}

// RenderFooter generates the page footer.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder

	sb.WriteString(`<footer class="footer">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<p>&copy; <span id="year" data-slot="year">%d</span> %s`,
		opts.Year, html.EscapeString(opts.Owner)))
	if opts.Tagline != "" {
		sb.WriteString(` &middot; `)
		sb.WriteString(html.EscapeString(opts.Tagline))
	}
	sb.WriteString(`</p>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}
