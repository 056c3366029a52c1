package router

import (
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
)

// Rendered markup marks its dynamic regions with two attributes:
//
//	data-slot="name"  the element's children and attributes are tracked
//	data-bind="name"  only the element's attributes are tracked
//
// After every event the router re-renders, hashes each region and sends
// the ones that changed.
const (
	slotAttr = "data-slot"
	bindAttr = "data-bind"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// region is one tracked element of a render.
type region struct {
	inner    string
	attrs    map[string]string
	hasInner bool
}

// extractRegions walks the document once and returns every data-slot and
// data-bind region keyed by name. Later duplicates win.
func extractRegions(doc string) map[string]region {
	regions := make(map[string]region)

	type open struct {
		name  string
		start int
		depth int
	}
	var (
		stack  []open
		depth  int
		offset int
	)

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := len(z.Raw())
		tokenStart := offset
		offset += raw

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			slot, bind, attrs := regionAttrs(tok.Attr)

			nests := tt == html.StartTagToken && !voidElements[tok.Data]
			if nests {
				depth++
			}

			switch {
			case slot != "":
				regions[slot] = region{attrs: attrs, hasInner: true}
				if nests {
					stack = append(stack, open{name: slot, start: offset, depth: depth})
				}
			case bind != "":
				regions[bind] = region{attrs: attrs}
			}

		case html.EndTagToken:
			if n := len(stack); n > 0 && stack[n-1].depth == depth {
				top := stack[n-1]
				stack = stack[:n-1]
				r := regions[top.name]
				r.inner = doc[top.start:tokenStart]
				regions[top.name] = r
			}
			if depth > 0 {
				depth--
			}
		}
	}

	return regions
}

func regionAttrs(attrs []html.Attribute) (slot, bind string, all map[string]string) {
	for _, a := range attrs {
		switch a.Key {
		case slotAttr:
			slot = a.Val
		case bindAttr:
			bind = a.Val
		}
	}
	if slot == "" && bind == "" {
		return "", "", nil
	}
	all = make(map[string]string, len(attrs))
	for _, a := range attrs {
		all[a.Key] = a.Val
	}
	return slot, bind, all
}

// slotState remembers what the client last received for one socket.
type slotState struct {
	inner map[string]uint64
	attrs map[string]uint64
	mu    sync.Mutex
}

func newSlotState() *slotState {
	return &slotState{
		inner: make(map[string]uint64),
		attrs: make(map[string]uint64),
	}
}

// diff compares a fresh render with the previous one and fills a payload
// with the regions that changed. Markup with no tracked regions at all is
// sent whole.
func (st *slotState) diff(doc string) *core.DiffPayload {
	st.mu.Lock()
	defer st.mu.Unlock()

	payload := &core.DiffPayload{
		Slots:     make(map[string]string),
		HTMLSlots: make(map[string]string),
		Attrs:     make(map[string]map[string]string),
	}

	regions := extractRegions(doc)
	if len(regions) == 0 {
		if h := hashString(doc); st.inner[""] != h {
			st.inner[""] = h
			payload.Full = doc
		}
		return payload
	}

	for name, r := range regions {
		if r.hasInner {
			h := hashString(r.inner)
			if prev, ok := st.inner[name]; !ok || prev != h {
				st.inner[name] = h
				if isPlainText(r.inner) {
					payload.Slots[name] = r.inner
				} else {
					payload.HTMLSlots[name] = r.inner
				}
			}
		}

		h := hashAttrs(r.attrs)
		if prev, ok := st.attrs[name]; !ok || prev != h {
			st.attrs[name] = h
			payload.Attrs[name] = r.attrs
		}
	}

	return payload
}

// isPlainText reports whether content can be applied as textContent.
func isPlainText(s string) bool {
	return !strings.ContainsAny(s, "<&")
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func hashAttrs(attrs map[string]string) uint64 {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(attrs[k]))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
