package models

import (
	"testing"
)

func TestNewViewStateDefaults(t *testing.T) {
	s := NewViewState()
	if s.LogType != DefaultLogType {
		t.Errorf("LogType = %q, want %q", s.LogType, DefaultLogType)
	}
	if s.Page != 1 || s.PageSize != DefaultPageSize {
		t.Errorf("pagination = %d/%d, want 1/%d", s.Page, s.PageSize, DefaultPageSize)
	}
	if s.Filters.Hours != DefaultHours {
		t.Errorf("Hours = %d, want %d", s.Filters.Hours, DefaultHours)
	}
	if len(s.Expanded) != 0 {
		t.Error("expanded set should start empty")
	}
}

func TestSwitchTypeResets(t *testing.T) {
	s := NewViewState()
	s.Page = 4
	s.TotalPages = 10
	s.Filters.IP = "10.0.0.1"
	s.ToggleExpanded("C1")

	s.SwitchType("dns")

	if s.LogType != "dns" {
		t.Errorf("LogType = %q", s.LogType)
	}
	if s.Page != 1 {
		t.Errorf("Page = %d, want 1 after type switch", s.Page)
	}
	if len(s.Expanded) != 0 {
		t.Error("expanded set must clear on type switch")
	}
	if s.Filters.IP != "10.0.0.1" {
		t.Error("filters must persist across type switch")
	}
}

func TestApplyFiltersResetsPage(t *testing.T) {
	s := NewViewState()
	s.Page = 7
	s.TotalPages = 10
	s.ToggleExpanded("C1")

	s.ApplyFilters(FilterCriteria{Proto: "udp", Hours: 6})

	if s.Page != 1 {
		t.Errorf("Page = %d, want 1 after filter change", s.Page)
	}
	if s.Filters.Proto != "udp" || s.Filters.Hours != 6 {
		t.Errorf("filters = %+v", s.Filters)
	}
	if !s.IsExpanded("C1") {
		t.Error("expanded set must persist across filter change")
	}
}

func TestSetPageSizeResetsPage(t *testing.T) {
	s := NewViewState()
	s.Page = 3
	s.TotalPages = 5

	s.SetPageSize(100)

	if s.PageSize != 100 || s.Page != 1 {
		t.Errorf("page/size = %d/%d, want 1/100", s.Page, s.PageSize)
	}
}

func TestGoToPageBounds(t *testing.T) {
	s := NewViewState()
	s.TotalPages = 5
	s.Page = 3

	tests := []struct {
		target   int
		moved    bool
		expected int
	}{
		{4, true, 4},
		{1, true, 1},
		{5, true, 5},
		{0, false, 5},
		{6, false, 5},
		{-1, false, 5},
	}

	for _, tt := range tests {
		if got := s.GoToPage(tt.target); got != tt.moved {
			t.Errorf("GoToPage(%d) = %v, want %v", tt.target, got, tt.moved)
		}
		if s.Page != tt.expected {
			t.Errorf("after GoToPage(%d): Page = %d, want %d", tt.target, s.Page, tt.expected)
		}
	}
}

func TestToggleExpanded(t *testing.T) {
	s := NewViewState()

	s.ToggleExpanded("C1")
	if !s.IsExpanded("C1") {
		t.Error("first toggle should expand")
	}
	s.ToggleExpanded("C1")
	if s.IsExpanded("C1") {
		t.Error("second toggle should collapse")
	}

	// uid-less records cannot expand
	s.ToggleExpanded("")
	if s.IsExpanded("") {
		t.Error("empty uid must never enter the expanded set")
	}
}

func TestUpdateFromResponseIsAuthoritative(t *testing.T) {
	s := NewViewState()
	s.Page = 9

	s.UpdateFromResponse(4, 4, 181)

	if s.Page != 4 || s.TotalPages != 4 || s.TotalCount != 181 {
		t.Errorf("state = page %d/%d total %d, want 4/4 181", s.Page, s.TotalPages, s.TotalCount)
	}
}

func TestFilterCriteriaValues(t *testing.T) {
	tests := []struct {
		name     string
		criteria FilterCriteria
		expected string
	}{
		{name: "empty criteria omit everything", criteria: FilterCriteria{}, expected: ""},
		{
			name:     "only set fields appear",
			criteria: FilterCriteria{IP: "10.0.0.1", Hours: 24},
			expected: "hours=24&ip=10.0.0.1",
		},
		{
			name:     "all fields",
			criteria: FilterCriteria{IP: "10.0.0.1", Port: "443", Proto: "tcp", Search: "example", Hours: 6},
			expected: "hours=6&ip=10.0.0.1&port=443&proto=tcp&search=example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Values().Encode(); got != tt.expected {
				t.Errorf("Values() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFilterCriteriaRoundTrip(t *testing.T) {
	original := FilterCriteria{IP: "192.168.1.10", Proto: "udp", Hours: 12}
	got := FilterCriteriaFromValues(original.Values())
	if got != original {
		t.Errorf("round trip = %+v, want %+v", got, original)
	}
}
