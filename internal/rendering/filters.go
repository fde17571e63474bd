package rendering

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	filtersOnce sync.Once
	markupOnce  sync.Once
	markup      *bluemonday.Policy
)

// labelKeys are the entry fields joined by the label filter, in order.
var labelKeys = []string{"name", "title", "degree", "institution", "issuer", "description", "year", "date"}

// registerFilters installs the haslett filters into pongo2's global registry.
func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
		if !pongo2.FilterExists("label") {
			_ = pongo2.RegisterFilter("label", filterLabel)
		}
	})
}

// filterSanitize lets profile text carry inline markup such as <em> or links.
// Anything outside the UGC policy is dropped and the result is marked safe.
func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(markupPolicy().Sanitize(in.String())), nil
}

// filterLabel turns a list entry that may be a plain string or a mapping
// (education, projects, awards) into a single line.
func filterLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Label(in.Interface())), nil
}

// Label renders a profile entry as one line of text.
func Label(v any) string {
	switch entry := v.(type) {
	case nil:
		return ""
	case string:
		return entry
	case map[string]any:
		parts := make([]string, 0, len(labelKeys))
		for _, key := range labelKeys {
			value, ok := entry[key]
			if !ok || value == nil {
				continue
			}
			if text := strings.TrimSpace(fmt.Sprint(value)); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(entry)
	}
}

func markupPolicy() *bluemonday.Policy {
	markupOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(false)
		markup = policy
	})
	return markup
}
