// Package widgets models third-party page widgets (the chat bubble on the
// preview page) as collaborators with a narrow mount/unmount lifecycle. Nothing
// in the render or pricing core depends on it.
package widgets

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Widget is an external page integration. Mount writes the markup that
// installs the widget; Unmount writes the markup that removes it.
type Widget interface {
	Name() string
	Mount(w io.Writer) error
	Unmount(w io.Writer) error
}

type rule struct {
	widget   Widget
	priority int
	order    int
}

// Registry keeps widgets in mount order. Higher priority mounts first; ties
// fall back to registration order. An empty registry mounts nothing.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
	seq   int
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a widget with the provided priority. Registering a name twice
// replaces the earlier widget.
func (r *Registry) Register(widget Widget, priority int) error {
	if r == nil {
		return errors.New("widgets: registry is nil")
	}
	if widget == nil {
		return errors.New("widgets: widget is required")
	}
	name := strings.TrimSpace(widget.Name())
	if name == "" {
		return errors.New("widgets: widget name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, existing := range r.rules {
		if existing.widget.Name() == name {
			r.rules = append(r.rules[:idx], r.rules[idx+1:]...)
			break
		}
	}
	r.rules = append(r.rules, rule{
		widget:   widget,
		priority: priority,
		order:    r.seq,
	})
	r.seq++
	return nil
}

// Widgets returns the registered widgets in mount order.
func (r *Registry) Widgets() []Widget {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	out := make([]Widget, len(rules))
	for idx, entry := range rules {
		out[idx] = entry.widget
	}
	return out
}

// MountAll mounts every widget in order and stops at the first failure.
func (r *Registry) MountAll(w io.Writer) error {
	for _, widget := range r.Widgets() {
		if err := widget.Mount(w); err != nil {
			return fmt.Errorf("widgets: mount %s: %w", widget.Name(), err)
		}
	}
	return nil
}

// UnmountAll unmounts every widget in reverse mount order. All widgets are
// attempted; failures are joined.
func (r *Registry) UnmountAll(w io.Writer) error {
	widgets := r.Widgets()
	var errs []error
	for idx := len(widgets) - 1; idx >= 0; idx-- {
		if err := widgets[idx].Unmount(w); err != nil {
			errs = append(errs, fmt.Errorf("widgets: unmount %s: %w", widgets[idx].Name(), err))
		}
	}
	return errors.Join(errs...)
}
