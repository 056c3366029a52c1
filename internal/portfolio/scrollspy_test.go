package portfolio

import "testing"

func TestCurrentByTrigger(t *testing.T) {
	triggers := []SectionOffset{{ID: "a", Top: 0}, {ID: "b", Top: 500}, {ID: "c", Top: 1200}}

	tests := []struct {
		y    float64
		want string
	}{
		{-10, ""},
		{0, "a"},
		{499, "a"},
		{500, "b"},
		{700, "b"},
		{1200, "c"},
		{5000, "c"},
	}
	for _, tt := range tests {
		if got := CurrentByTrigger(triggers, tt.y); got != tt.want {
			t.Errorf("scrollY %v: got %q, want %q", tt.y, got, tt.want)
		}
	}
}

func TestScrollSpy_LeadIn(t *testing.T) {
	spy := ScrollSpy{LeadIn: DefaultLeadIn}
	sections := []SectionOffset{{ID: "about", Top: 60}, {ID: "projects", Top: 800}}

	if got := spy.Current(sections, 679); got != "about" {
		t.Errorf("before lead-in: %q", got)
	}
	if got := spy.Current(sections, 680); got != "projects" {
		t.Errorf("at lead-in: %q", got)
	}
}

func TestActiveLinks(t *testing.T) {
	active := ActiveLinks(DefaultLinks, SectionProjects)
	count := 0
	for i, a := range active {
		if a {
			count++
			if DefaultLinks[i].Href != "#projects" {
				t.Errorf("wrong link active: %s", DefaultLinks[i].Href)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected one active link, got %d", count)
	}

	for _, a := range ActiveLinks(DefaultLinks, "") {
		if a {
			t.Error("no link should be active before the first section")
		}
	}
}

func TestSectionsFromPayload(t *testing.T) {
	got := SectionsFromPayload([]any{
		map[string]any{"id": "a", "top": float64(0)},
		map[string]any{"id": "b", "top": int64(500)},
		map[string]any{"id": "", "top": float64(9)},
		map[string]any{"id": "c"},
		"junk",
	})
	if len(got) != 2 || got[1] != (SectionOffset{ID: "b", Top: 500}) {
		t.Errorf("decoded: %+v", got)
	}
	if SectionsFromPayload(nil) != nil {
		t.Error("nil payload should decode to nil")
	}
}
