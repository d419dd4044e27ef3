package models

import (
	"net/url"
	"strconv"
)

// PageSizes are the selectable page sizes, cycled in order.
var PageSizes = []int{25, 50, 100}

const (
	DefaultLogType  = "conn"
	DefaultPageSize = 50
	DefaultHours    = 24
)

// FilterCriteria holds the active filters. Empty fields mean "not filtering on
// this" and are omitted entirely from outgoing queries.
type FilterCriteria struct {
	IP     string
	Port   string
	Proto  string
	Search string
	Hours  int
}

// Values serializes the criteria to query parameters, including exactly the
// non-empty fields.
func (f FilterCriteria) Values() url.Values {
	v := url.Values{}
	if f.IP != "" {
		v.Set("ip", f.IP)
	}
	if f.Port != "" {
		v.Set("port", f.Port)
	}
	if f.Proto != "" {
		v.Set("proto", f.Proto)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Hours > 0 {
		v.Set("hours", strconv.Itoa(f.Hours))
	}
	return v
}

// FilterCriteriaFromValues is the inverse of Values.
func FilterCriteriaFromValues(v url.Values) FilterCriteria {
	hours, _ := strconv.Atoi(v.Get("hours"))
	return FilterCriteria{
		IP:     v.Get("ip"),
		Port:   v.Get("port"),
		Proto:  v.Get("proto"),
		Search: v.Get("search"),
		Hours:  hours,
	}
}

// Pagination tracks the current page window as reported by the server.
type Pagination struct {
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// ViewState is the browser's session state: selected log type, pagination
// cursor, active filters and the set of expanded record uids. It is owned by
// the log browser for the lifetime of the view and discarded with it.
type ViewState struct {
	LogType  string
	Pagination
	Filters  FilterCriteria
	Expanded map[string]struct{}
}

// NewViewState returns the initial browser state: connection log, first page,
// default page size, 24h lookback, nothing expanded.
func NewViewState() *ViewState {
	return &ViewState{
		LogType:    DefaultLogType,
		Pagination: Pagination{Page: 1, PageSize: DefaultPageSize},
		Filters:    FilterCriteria{Hours: DefaultHours},
		Expanded:   map[string]struct{}{},
	}
}

// SwitchType selects a new log type, resets to page 1 and clears the expanded
// set. Filters persist across the switch.
func (s *ViewState) SwitchType(logType string) {
	s.LogType = logType
	s.Page = 1
	s.Expanded = map[string]struct{}{}
}

// ApplyFilters replaces the criteria wholesale and resets to page 1. The
// expanded set persists: uids no longer on the page simply render nothing.
func (s *ViewState) ApplyFilters(f FilterCriteria) {
	s.Filters = f
	s.Page = 1
}

// SetPageSize changes the page size and resets to page 1.
func (s *ViewState) SetPageSize(n int) {
	s.PageSize = n
	s.Page = 1
}

// GoToPage moves to page n when 1 <= n <= TotalPages; out-of-range requests
// are ignored and reported false.
func (s *ViewState) GoToPage(n int) bool {
	if n < 1 || n > s.TotalPages {
		return false
	}
	s.Page = n
	return true
}

// ToggleExpanded flips membership of uid in the expanded set. Toggling twice
// restores the prior membership.
func (s *ViewState) ToggleExpanded(uid string) {
	if uid == "" {
		return
	}
	if _, ok := s.Expanded[uid]; ok {
		delete(s.Expanded, uid)
	} else {
		s.Expanded[uid] = struct{}{}
	}
}

// IsExpanded reports whether uid's detail block is open.
func (s *ViewState) IsExpanded(uid string) bool {
	_, ok := s.Expanded[uid]
	return ok
}

// UpdateFromResponse applies the server-reported page window. The server is
// authoritative for clamping: whatever page it reports becomes current.
func (s *ViewState) UpdateFromResponse(page, totalPages, total int) {
	if page > 0 {
		s.Page = page
	}
	s.TotalPages = totalPages
	s.TotalCount = total
}
