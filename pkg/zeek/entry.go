package zeek

import (
	"sort"
	"strconv"
	"strings"
)

// Entry is one semi-structured log record returned by the Log API. The field
// set varies by log type; values arrive from JSON as strings, float64 numbers,
// booleans, []any sequences or nil.
type Entry map[string]any

// Has reports whether the field exists with a non-nil value.
func (e Entry) Has(key string) bool {
	v, ok := e[key]
	return ok && v != nil
}

// Str returns the field as a display string. Absent, nil or empty values
// return "". Numbers are formatted without trailing zeros so an integer-valued
// float never shows as "80.000000".
func (e Entry) Str(key string) string {
	v, ok := e[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				s = Entry{"v": item}.Str("v")
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Float returns the field as a number.
func (e Entry) Float(key string) (float64, bool) {
	switch t := e[key].(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int returns the field as an integer, truncating fractional values.
func (e Entry) Int(key string) (int64, bool) {
	f, ok := e.Float(key)
	return int64(f), ok
}

// Strings returns the field as a string sequence. Scalars are not promoted.
func (e Entry) Strings(key string) ([]string, bool) {
	seq, ok := e[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// UID returns the stable record identifier, or "" for log types that carry
// none (files, notice, weird).
func (e Entry) UID() string {
	return e.Str("uid")
}

// DisplayKeys returns up to max field names suitable for generic rendering.
// Keys prefixed with an underscore are implementation-internal markers and
// excluded. JSON objects are unordered in Go, so order is made deterministic:
// ts and uid lead, the rest sort alphabetically.
func (e Entry) DisplayKeys(max int) []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		if strings.HasPrefix(k, "_") || k == "ts" || k == "uid" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]string, 0, len(keys)+2)
	if e.Has("ts") {
		ordered = append(ordered, "ts")
	}
	if e.Has("uid") {
		ordered = append(ordered, "uid")
	}
	ordered = append(ordered, keys...)

	if len(ordered) > max {
		ordered = ordered[:max]
	}
	return ordered
}
