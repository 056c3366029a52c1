package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateBinding is returned when an event is bound twice.
var ErrDuplicateBinding = errors.New("portfolio: duplicate event binding")

// Effect handles one client event.
type Effect func(ctx context.Context, payload map[string]any) error

// Bindings maps client event names to their effects. It is built once per
// component during Mount and read-only afterwards.
type Bindings struct {
	effects map[string]Effect
}

// NewBindings creates an empty registry.
func NewBindings() *Bindings {
	return &Bindings{effects: make(map[string]Effect)}
}

// Bind registers effect for event.
func (b *Bindings) Bind(event string, effect Effect) error {
	if _, ok := b.effects[event]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBinding, event)
	}
	b.effects[event] = effect
	return nil
}

// MustBind is Bind that panics on a duplicate.
func (b *Bindings) MustBind(event string, effect Effect) {
	if err := b.Bind(event, effect); err != nil {
		panic(err)
	}
}

// Dispatch runs the effect bound to event. It reports false for unbound
// events.
func (b *Bindings) Dispatch(ctx context.Context, event string, payload map[string]any) (bool, error) {
	effect, ok := b.effects[event]
	if !ok {
		return false, nil
	}
	return true, effect(ctx, payload)
}

// Events returns the bound event names, sorted.
func (b *Bindings) Events() []string {
	events := make([]string, 0, len(b.effects))
	for e := range b.effects {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}
