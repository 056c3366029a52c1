package site

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ErrMissingElement is returned when a rendered document lacks a required id.
var ErrMissingElement = errors.New("site: required element missing")

// RequiredIDs are the elements the live client and the page component
// address by id.
var RequiredIDs = []string{
	"modal",
	"modalContent",
	"modalClose",
	"themeToggle",
	"contactForm",
	"menuToggle",
	"year",
}

// RequireIDs parses doc and reports every id in ids that no element carries.
// Duplicate ids are reported too, since the client resolves the first match only.
func RequireIDs(doc string, ids ...string) error {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("site: parse document: %w", err)
	}

	seen := make(map[string]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" {
					seen[a.Val]++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var missing, duplicated []string
	for _, id := range ids {
		switch seen[id] {
		case 0:
			missing = append(missing, id)
		case 1:
		default:
			duplicated = append(duplicated, id)
		}
	}
	if len(missing) == 0 && len(duplicated) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(duplicated)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing #"+strings.Join(missing, ", #"))
	}
	if len(duplicated) > 0 {
		parts = append(parts, "duplicated #"+strings.Join(duplicated, ", #"))
	}
	return fmt.Errorf("%w: %s", ErrMissingElement, strings.Join(parts, "; "))
}
