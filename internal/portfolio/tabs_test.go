package portfolio

import "testing"

func sampleFilter(initial Category) *TabFilter {
	tabs := []Tab{{Key: "data", Label: "Data"}, {Key: "dev", Label: "Dev"}, {Key: "empty", Label: "Empty"}}
	cards := []Card{
		{ID: "a", Category: "data"},
		{ID: "b", Category: "dev"},
		{ID: "c", Category: "data"},
	}
	return NewTabFilter(tabs, cards, initial)
}

func TestTabFilter_Select(t *testing.T) {
	for _, key := range []Category{"data", "dev", "empty"} {
		f := sampleFilter("data")
		if !f.Select(key) {
			t.Fatalf("Select(%s) returned false", key)
		}

		active := 0
		for _, tab := range f.Tabs() {
			if f.IsActive(tab.Key) {
				active++
				if tab.Key != key {
					t.Errorf("tab %s active after selecting %s", tab.Key, key)
				}
			}
		}
		if active != 1 {
			t.Errorf("expected exactly one active tab, got %d", active)
		}

		for _, c := range f.Cards() {
			if f.Visible(c) != (c.Category == key) {
				t.Errorf("card %s visible=%v under tab %s", c.ID, f.Visible(c), key)
			}
		}
	}
}

func TestTabFilter_EmptyCategoryHidesAll(t *testing.T) {
	f := sampleFilter("data")
	f.Select("empty")
	if got := f.VisibleCards(); len(got) != 0 {
		t.Errorf("expected no visible cards, got %v", got)
	}
}

func TestTabFilter_UnknownKeyIgnored(t *testing.T) {
	f := sampleFilter("dev")
	if f.Select("nope") {
		t.Error("unknown key should be rejected")
	}
	if f.Active() != "dev" {
		t.Errorf("active tab changed to %q", f.Active())
	}
}

func TestTabFilter_Initial(t *testing.T) {
	if got := sampleFilter("dev").Active(); got != "dev" {
		t.Errorf("initial dev: got %q", got)
	}
	if got := sampleFilter("missing").Active(); got != "data" {
		t.Errorf("unknown initial should fall back to the first tab, got %q", got)
	}
	if got := NewTabFilter(nil, nil, "data").Active(); got != "" {
		t.Errorf("no tabs: got %q", got)
	}
}

func TestTabFilter_VisibleCardsOrder(t *testing.T) {
	f := sampleFilter("data")
	got := f.VisibleCards()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("visible cards: %v", got)
	}
}

func TestTabsFor(t *testing.T) {
	tabs := TabsFor([]string{"data", "design"}, map[string]string{"data": "Data Analytics"})
	if tabs[0].Label != "Data Analytics" {
		t.Errorf("configured label: %q", tabs[0].Label)
	}
	if tabs[1].Key != "design" || tabs[1].Label != "Design" {
		t.Errorf("title-cased label: %+v", tabs[1])
	}
}
