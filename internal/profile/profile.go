package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Profile is a parsed profile document. Values are strings, numbers, booleans,
// []any sequences or nested map[string]any mappings. No schema is imposed.
type Profile map[string]any

// Lookup resolves a dotted path such as "person.name" or "skills.0".
// Any missing segment yields nil.
func (p Profile) Lookup(path string) any {
	var cur any = map[string]any(p)
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			cur = node[idx]
		default:
			return nil
		}
	}
	return cur
}

// String returns the value at path formatted as text, or "" when absent.
func (p Profile) String(path string) string {
	v := p.Lookup(path)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	if p == nil {
		return Profile{}
	}
	return Profile(cloneValue(map[string]any(p)).(map[string]any))
}

// With returns a copy of the profile with key set to value. The receiver is
// left untouched.
func (p Profile) With(key string, value any) Profile {
	out := p.Clone()
	out[key] = value
	return out
}

func cloneValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = cloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = cloneValue(child)
		}
		return out
	default:
		return v
	}
}

// normalize converts decoder output into the Profile value space: mappings
// with non-string keys get stringified keys and timestamps become text.
func normalize(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = normalize(child)
		}
		return node
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = normalize(child)
		}
		return node
	case time.Time:
		if node.Hour() == 0 && node.Minute() == 0 && node.Second() == 0 && node.Nanosecond() == 0 {
			return node.Format("2006-01-02")
		}
		return node.Format(time.RFC3339)
	default:
		return v
	}
}
