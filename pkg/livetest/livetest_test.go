package livetest

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
)

type counter struct {
	core.BaseComponent
	visitor string
}

func (c *counter) Name() string { return "counter" }

func (c *counter) Mount(ctx context.Context, params core.Params, session core.Session) error {
	c.visitor = session.Visitor()
	c.Assigns().Set("count", 0)
	return nil
}

func (c *counter) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if event == "inc" {
		c.Assigns().Set("count", c.Assigns().Get("count").(int)+1)
		c.Socket().PushCommands([]map[string]any{{"op": "focus", "target": "#count"}})
	}
	return nil
}

func (c *counter) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p id="count" class="n">%d</p><span id="who">%s</span>`,
			c.Assigns().Get("count"), c.visitor)
		return err
	})
}

func TestHarness(t *testing.T) {
	lvt := Mount(t, &counter{}, WithVisitor("v-1"))

	lvt.AssertText(">0<").AssertAssign("count", 0)
	if lvt.MustID("who").Text() != "v-1" {
		t.Errorf("visitor not passed through session")
	}

	lvt.Click("inc").Click("inc")

	lvt.AssertAssign("count", 2).
		AssertClass("count", "n", true).
		AssertAttr("count", "class", "n").
		AssertCommand("focus", "#count")

	if got := len(lvt.Commands()); got != 2 {
		t.Errorf("expected 2 commands, got %d", got)
	}
	if got := lvt.Events(); len(got) != 2 || got[0] != "inc" {
		t.Errorf("unexpected events: %v", got)
	}
	if _, ok := lvt.ByID("missing"); ok {
		t.Error("expected missing element")
	}
}
