package portfolio

// DefaultLeadIn is how far above a section's top the scroll position
// starts counting as inside it.
const DefaultLeadIn = 120

// SectionOffset is a section's document top, in document order.
type SectionOffset struct {
	ID  string
	Top float64
}

// ScrollSpy picks the section the visitor is reading.
type ScrollSpy struct {
	LeadIn float64
}

// Current returns the last section whose top minus LeadIn is at or above
// scrollY, or "" before the first section.
func (s ScrollSpy) Current(sections []SectionOffset, scrollY float64) string {
	current := ""
	for _, sec := range sections {
		if scrollY >= sec.Top-s.LeadIn {
			current = sec.ID
		}
	}
	return current
}

// CurrentByTrigger is Current with the lead-in already applied to Top.
func CurrentByTrigger(triggers []SectionOffset, scrollY float64) string {
	return ScrollSpy{}.Current(triggers, scrollY)
}

// NavLink is an in-page navigation link.
type NavLink struct {
	Label string
	Href  string
}

// ActiveLinks marks the link pointing at current. At most one link is
// active, and none when current is empty.
func ActiveLinks(links []NavLink, current string) []bool {
	active := make([]bool, len(links))
	if current == "" {
		return active
	}
	for i, l := range links {
		if l.Href == "#"+current {
			active[i] = true
			break
		}
	}
	return active
}

// SectionsFromPayload decodes the client's [{id, top}, ...] list.
// Malformed entries are skipped.
func SectionsFromPayload(v any) []SectionOffset {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]SectionOffset, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := stringValue(m["id"])
		top, ok := floatValue(m["top"])
		if id == "" || !ok {
			continue
		}
		out = append(out, SectionOffset{ID: id, Top: top})
	}
	return out
}
