package zeek

import (
	"reflect"
	"testing"
)

func TestEntryStr(t *testing.T) {
	e := Entry{
		"host":   "example.com",
		"port":   float64(443),
		"frac":   1.5,
		"local":  true,
		"remote": false,
		"tags":   []any{"a", "b"},
		"empty":  nil,
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"host", "example.com"},
		{"port", "443"},
		{"frac", "1.5"},
		{"local", "true"},
		{"remote", "false"},
		{"tags", "a, b"},
		{"empty", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		if got := e.Str(tt.key); got != tt.expected {
			t.Errorf("Str(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestEntryFloat(t *testing.T) {
	e := Entry{"n": float64(12.5), "s": "42", "bad": "x", "nil": nil}

	if v, ok := e.Float("n"); !ok || v != 12.5 {
		t.Errorf("Float(n) = %v, %v", v, ok)
	}
	if v, ok := e.Float("s"); !ok || v != 42 {
		t.Errorf("Float(s) = %v, %v", v, ok)
	}
	if _, ok := e.Float("bad"); ok {
		t.Error("Float(bad) should not parse")
	}
	if _, ok := e.Float("nil"); ok {
		t.Error("Float(nil) should not parse")
	}
	if _, ok := e.Float("missing"); ok {
		t.Error("Float(missing) should not parse")
	}
}

func TestEntryUID(t *testing.T) {
	if uid := (Entry{"uid": "CAbc123"}).UID(); uid != "CAbc123" {
		t.Errorf("UID() = %q", uid)
	}
	if uid := (Entry{}).UID(); uid != "" {
		t.Errorf("UID() on uid-less entry = %q, want empty", uid)
	}
}

func TestDisplayKeys(t *testing.T) {
	e := Entry{
		"ts":        float64(1700000000),
		"uid":       "C1",
		"zebra":     "z",
		"alpha":     "a",
		"_internal": "hidden",
	}

	got := e.DisplayKeys(8)
	expected := []string{"ts", "uid", "alpha", "zebra"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("DisplayKeys = %v, want %v", got, expected)
	}
}

func TestDisplayKeysLimit(t *testing.T) {
	e := Entry{
		"ts": float64(1), "uid": "C1",
		"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7, "h": 8,
	}

	got := e.DisplayKeys(8)
	if len(got) != 8 {
		t.Fatalf("DisplayKeys returned %d keys, want 8", len(got))
	}
	if got[0] != "ts" || got[1] != "uid" {
		t.Errorf("DisplayKeys should lead with ts, uid: %v", got)
	}
}
