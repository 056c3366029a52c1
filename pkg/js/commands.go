// Package js provides client commands pushed from the server. The page
// script executes them in order after applying the accompanying diff.
package js

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Command ops understood by the client script.
const (
	OpFocus      = "focus"
	OpNavigate   = "navigate"
	OpStoreLocal = "store_local"
	OpAlert      = "alert"
)

// Command is a single instruction for the client.
type Command struct {
	Op      string `json:"op"`
	Target  string `json:"target,omitempty"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// Map returns the wire form of the command.
func (c Command) Map() map[string]any {
	m := map[string]any{"op": c.Op}
	if c.Target != "" {
		m["target"] = c.Target
	}
	if c.Key != "" {
		m["key"] = c.Key
	}
	if c.Value != "" {
		m["value"] = c.Value
	}
	if c.Replace {
		m["replace"] = true
	}
	return m
}

// ToJS returns an inline call usable from an event attribute.
func (c Command) ToJS() string {
	data, _ := json.Marshal(c)
	return fmt.Sprintf(`folio.exec(%s)`, data)
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return c.ToJS()
}

// Commands holds a sequence of commands.
type Commands []Command

// Payload returns the wire form of every command, in order.
func (cs Commands) Payload() []map[string]any {
	out := make([]map[string]any, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Map())
	}
	return out
}

// ToJS returns the JavaScript for all commands.
func (cs Commands) ToJS() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.ToJS())
	}
	return strings.Join(parts, ";")
}

// String implements fmt.Stringer.
func (cs Commands) String() string {
	return cs.ToJS()
}

// JS is the namespace for client commands.
var JS = jsNamespace{}

type jsNamespace struct{}

// Focus moves keyboard focus to the element matching selector.
func (jsNamespace) Focus(selector string) Command {
	return Command{Op: OpFocus, Target: selector}
}

// Navigate points the window at url. mailto: links hand off to the
// visitor's mail client without leaving the page.
func (jsNamespace) Navigate(url string, opts ...NavigateOption) Command {
	config := navigateConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return Command{Op: OpNavigate, Value: url, Replace: config.replace}
}

// StoreLocal writes value to window.localStorage under key.
func (jsNamespace) StoreLocal(key, value string) Command {
	return Command{Op: OpStoreLocal, Key: key, Value: value}
}

// Alert shows a blocking browser notice.
func (jsNamespace) Alert(message string) Command {
	return Command{Op: OpAlert, Value: message}
}

type navigateConfig struct {
	replace bool
}

// NavigateOption configures Navigate.
type NavigateOption func(*navigateConfig)

// Replace uses location.replace instead of assigning location.href.
func Replace() NavigateOption {
	return func(c *navigateConfig) {
		c.replace = true
	}
}
