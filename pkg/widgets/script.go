package widgets

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"sort"
	"strings"
)

// ScriptWidget embeds a vendor script tag, the shape most chat widgets ship
// as. Attributes become data-* attributes on the tag.
type ScriptWidget struct {
	ID         string
	Src        string
	Attributes map[string]string
}

// NewScriptWidget validates src and returns a widget keyed by id.
func NewScriptWidget(id, src string, attributes map[string]string) (*ScriptWidget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("widgets: script widget id is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return nil, fmt.Errorf("widgets: script %s: %w", id, err)
	}
	if parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("widgets: script %s: src must be an absolute https URL", id)
	}
	return &ScriptWidget{ID: id, Src: parsed.String(), Attributes: attributes}, nil
}

// Name returns the widget id.
func (s *ScriptWidget) Name() string {
	return s.ID
}

// Mount writes the script tag with deterministic attribute order.
func (s *ScriptWidget) Mount(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<script id="%s" src="%s" async`, s.elementID(), html.EscapeString(s.Src))

	keys := make([]string, 0, len(s.Attributes))
	for key := range s.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, ` data-%s="%s"`, html.EscapeString(key), html.EscapeString(s.Attributes[key]))
	}
	b.WriteString("></script>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Unmount writes an inline script that removes the tag again.
func (s *ScriptWidget) Unmount(w io.Writer) error {
	_, err := fmt.Fprintf(w, "<script>(function(){var el=document.getElementById(%q);if(el){el.remove();}})();</script>\n", s.elementID())
	return err
}

func (s *ScriptWidget) elementID() string {
	return "widget-" + html.EscapeString(s.ID)
}
