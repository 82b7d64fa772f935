// Package widgets decides which HTML control renders a design component.
// Resolution honours an explicit "widget" prop first, then evaluates matchers
// by priority.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formdesign/pkg/design"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetEmail    = "email"
	WidgetDate     = "date"
	WidgetNumber   = "number"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetTextarea = "textarea"
)

// Matcher decides whether a widget should render the supplied component.
type Matcher func(c design.Component) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for components based on explicit props or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a component.
func (r *Registry) Resolve(c design.Component) (string, bool) {
	if explicit := explicitWidget(c); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(c) {
			return entry.name, true
		}
	}
	return "", false
}

func explicitWidget(c design.Component) string {
	if widget, ok := c.Props["widget"].(string); ok {
		return strings.TrimSpace(widget)
	}
	return ""
}

// OfType returns a matcher for components whose type is or contains id.
func OfType(id string) Matcher {
	return func(c design.Component) bool {
		return design.MatchesType(c, id)
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetTextarea, 90, OfType("textarea"))
	r.Register(WidgetSelect, 80, func(c design.Component) bool {
		if design.MatchesType(c, "select") {
			return true
		}
		options, ok := c.Props["options"].([]any)
		return ok && len(options) > 0
	})
	r.Register(WidgetCheckbox, 70, func(c design.Component) bool {
		return design.MatchesType(c, "switch") || design.MatchesType(c, "checkbox")
	})
	r.Register(WidgetNumber, 60, OfType("number"))
	r.Register(WidgetEmail, 50, OfType("email"))
	r.Register(WidgetDate, 40, OfType("date"))
	r.Register(WidgetText, 0, func(design.Component) bool { return true })
}
