package portfolio

import (
	"github.com/gabrielmiguelok/livefolio/internal/projects"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category keys a tab and the cards it shows.
type Category string

// Tab is one tab control.
type Tab struct {
	Key   Category
	Label string
}

// Card is one filterable project card.
type Card struct {
	ID       string
	Category Category
	Title    string
	Subtitle string
}

// TabFilter tracks which tab is active. Exactly one tab is active at any
// time when at least one tab exists.
type TabFilter struct {
	tabs   []Tab
	cards  []Card
	active Category
}

// NewTabFilter creates a filter. initial is used when it names a tab,
// otherwise the first tab starts active.
func NewTabFilter(tabs []Tab, cards []Card, initial Category) *TabFilter {
	f := &TabFilter{tabs: tabs, cards: cards}
	if len(tabs) > 0 {
		f.active = tabs[0].Key
	}
	f.Select(initial)
	return f
}

// Select makes key the sole active tab. A key naming no tab is ignored
// and reported as false. A tab whose category has no cards is valid and
// hides every card.
func (f *TabFilter) Select(key Category) bool {
	if !f.hasTab(key) {
		return false
	}
	f.active = key
	return true
}

func (f *TabFilter) hasTab(key Category) bool {
	for _, t := range f.tabs {
		if t.Key == key {
			return true
		}
	}
	return false
}

// Active returns the active tab key.
func (f *TabFilter) Active() Category {
	return f.active
}

// IsActive reports whether key is the active tab.
func (f *TabFilter) IsActive(key Category) bool {
	return f.active == key
}

// Visible reports whether card is shown under the active tab.
func (f *TabFilter) Visible(card Card) bool {
	return card.Category == f.active
}

// VisibleCards returns the shown cards in order.
func (f *TabFilter) VisibleCards() []Card {
	var out []Card
	for _, c := range f.cards {
		if f.Visible(c) {
			out = append(out, c)
		}
	}
	return out
}

// Tabs returns the tabs in order.
func (f *TabFilter) Tabs() []Tab {
	return f.tabs
}

// Cards returns every card in order.
func (f *TabFilter) Cards() []Card {
	return f.cards
}

// DefaultTabLabels names the categories of the bundled catalog.
var DefaultTabLabels = map[string]string{
	"data": "Data Analytics",
	"dev":  "Development",
}

// TabsFor builds one tab per category. Categories without a label are
// title-cased.
func TabsFor(categories []string, labels map[string]string) []Tab {
	title := cases.Title(language.English)
	tabs := make([]Tab, 0, len(categories))
	for _, c := range categories {
		label, ok := labels[c]
		if !ok {
			label = title.String(c)
		}
		tabs = append(tabs, Tab{Key: Category(c), Label: label})
	}
	return tabs
}

// CardsFor builds one card per project, in catalog order.
func CardsFor(list []projects.Project) []Card {
	cards := make([]Card, 0, len(list))
	for _, p := range list {
		cards = append(cards, Card{
			ID:       p.ID,
			Category: Category(p.Category),
			Title:    p.Title,
			Subtitle: p.Subtitle,
		})
	}
	return cards
}
