package zeek

import (
	"testing"
)

func TestSchemaForKnownTypes(t *testing.T) {
	for _, logType := range []string{"conn", "dns", "http", "ssl", "files", "notice", "weird"} {
		s := SchemaFor(logType, nil)
		if s.Type != logType {
			t.Errorf("SchemaFor(%q).Type = %q", logType, s.Type)
		}
		if len(s.Columns) == 0 {
			t.Errorf("SchemaFor(%q) has no columns", logType)
		}
	}
}

func TestExpandability(t *testing.T) {
	tests := []struct {
		logType    string
		expandable bool
	}{
		{"conn", true},
		{"dns", true},
		{"http", true},
		{"ssl", true},
		{"files", false},
		{"notice", false},
		{"weird", false},
	}

	for _, tt := range tests {
		if got := SchemaFor(tt.logType, nil).Expandable; got != tt.expandable {
			t.Errorf("SchemaFor(%q).Expandable = %v, want %v", tt.logType, got, tt.expandable)
		}
	}
}

func TestGenericFallback(t *testing.T) {
	first := Entry{
		"ts":      float64(1700000000),
		"uid":     "C1",
		"field_a": "x",
		"field_b": "y",
		"_marker": "internal",
	}

	s := SchemaFor("dpd", first)
	if s.Type != "dpd" {
		t.Errorf("fallback schema Type = %q, want dpd", s.Type)
	}
	if s.Expandable {
		t.Error("fallback schema must not be expandable")
	}

	titles := make(map[string]bool)
	for _, col := range s.Columns {
		titles[col.Title] = true
	}
	if titles["_marker"] {
		t.Error("underscore-prefixed fields must not become columns")
	}
	if !titles["field_a"] || !titles["field_b"] {
		t.Errorf("expected data fields as columns, got %v", titles)
	}
	if s.Columns[0].Title != "Time" {
		t.Errorf("first fallback column = %q, want the timestamp", s.Columns[0].Title)
	}
}

func TestGenericFallbackColumnCap(t *testing.T) {
	first := Entry{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		first[k] = "v"
	}

	s := SchemaFor("unknown", first)
	if len(s.Columns) > genericColumnLimit {
		t.Errorf("fallback derived %d columns, cap is %d", len(s.Columns), genericColumnLimit)
	}
}

func TestGenericFallbackEmptyPage(t *testing.T) {
	s := SchemaFor("unknown", nil)
	if len(s.Columns) != 0 {
		t.Errorf("fallback on empty page derived %d columns", len(s.Columns))
	}
}

func TestKnown(t *testing.T) {
	if !Known("conn") {
		t.Error("conn should be known")
	}
	if Known("dpd") {
		t.Error("dpd should not be known")
	}
}
