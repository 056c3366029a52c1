package livetest

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a parsed element found in rendered output.
type Element struct {
	node *html.Node
}

// Attr returns an attribute value and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute lists class.
func (e Element) HasClass(class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content.
func (e Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// Tag returns the element name.
func (e Element) Tag() string {
	return e.node.Data
}

// parseFragment parses rendered output as body content.
func parseFragment(src string) (*html.Node, error) {
	return html.Parse(strings.NewReader(src))
}

// findAll returns elements for which match is true, in document order.
func findAll(root *html.Node, match func(*html.Node) bool) []Element {
	var out []Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, Element{node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attrEquals(name, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, a := range n.Attr {
			if a.Key == name && a.Val == value {
				return true
			}
		}
		return false
	}
}
