package zeek

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder stands in for absent, null or empty field values everywhere the
// browser renders a cell.
const Placeholder = "-"

// Severity classifies a formatted value for styling.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityOK
	SeverityInfo
	SeverityWarn
	SeverityError
)

// Classified is a display value paired with its severity.
type Classified struct {
	Text     string
	Severity Severity
}

// FormatBytes renders a byte count with binary unit tiers. The base tier shows
// whole bytes, everything above one decimal.
func FormatBytes(v any, ok bool) string {
	if !ok {
		return Placeholder
	}
	n, isNum := v.(float64)
	if !isNum {
		return Placeholder
	}
	if n < 0 {
		return "-" + FormatBytes(-n, true)
	}

	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	i := 0
	for n >= 1024 && i < len(units)-1 {
		n /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f %s", n, units[i])
	}
	return fmt.Sprintf("%.1f %s", n, units[i])
}

// FormatEntryBytes formats a byte-count field of an entry.
func FormatEntryBytes(e Entry, key string) string {
	f, ok := e.Float(key)
	if !ok {
		return Placeholder
	}
	return FormatBytes(f, true)
}

// FormatDuration renders a seconds-valued duration in a human unit. Zero is a
// valid duration, not an absence.
func FormatDuration(e Entry, key string) string {
	sec, ok := e.Float(key)
	if !ok {
		return Placeholder
	}
	d := time.Duration(sec * float64(time.Second))
	switch {
	case d == 0:
		return "0s"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return d.Truncate(time.Second).String()
	}
}

// FormatTimestamp renders a fractional Unix epoch field as local time.
func FormatTimestamp(e Entry, key string) string {
	sec, ok := e.Float(key)
	if !ok {
		return Placeholder
	}
	t := time.Unix(int64(sec), int64((sec-float64(int64(sec)))*1e9))
	return t.Local().Format("2006-01-02 15:04:05")
}

// AbbreviateCount shortens large counts: 1,500,000 -> "1.5M", 2,300 -> "2.3K".
func AbbreviateCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ClassifyRcode maps a DNS response code (name or numeric) to a display value
// with severity. Unknown codes pass through as plain text.
func ClassifyRcode(e Entry, key string) Classified {
	s := strings.ToUpper(e.Str(key))
	if s == "" {
		return Classified{Text: Placeholder}
	}
	switch s {
	case "NOERROR", "0":
		return Classified{Text: "NOERROR", Severity: SeverityOK}
	case "NXDOMAIN", "3":
		return Classified{Text: "NXDOMAIN", Severity: SeverityWarn}
	case "SERVFAIL", "REFUSED":
		return Classified{Text: s, Severity: SeverityError}
	default:
		return Classified{Text: s}
	}
}

// ClassifyStatus buckets an HTTP status code by hundred-range. An absent
// status yields the placeholder with no severity.
func ClassifyStatus(e Entry, key string) Classified {
	code, ok := e.Int(key)
	if !ok {
		return Classified{Text: Placeholder}
	}
	c := Classified{Text: fmt.Sprintf("%d", code)}
	switch {
	case code >= 200 && code < 300:
		c.Severity = SeverityOK
	case code >= 300 && code < 400:
		c.Severity = SeverityInfo
	case code >= 400 && code < 500:
		c.Severity = SeverityWarn
	case code >= 500 && code < 600:
		c.Severity = SeverityError
	}
	return c
}

// FormatMulti renders a possibly multi-valued field: sequences show the first
// two items plus a "+N more" suffix, scalars render as-is.
func FormatMulti(e Entry, key string) string {
	if items, ok := e.Strings(key); ok {
		if len(items) == 0 {
			return Placeholder
		}
		if len(items) <= 2 {
			return strings.Join(items, ", ")
		}
		return fmt.Sprintf("%s +%d more", strings.Join(items[:2], ", "), len(items)-2)
	}
	if s := e.Str(key); s != "" {
		return s
	}
	return Placeholder
}

// FormatField renders a scalar field with the shared placeholder convention.
func FormatField(e Entry, key string) string {
	if s := e.Str(key); s != "" {
		return s
	}
	return Placeholder
}

// FormatEndpoint renders a host:port pair from the given address and port keys.
func FormatEndpoint(e Entry, hostKey, portKey string) string {
	host := e.Str(hostKey)
	if host == "" {
		return Placeholder
	}
	port := e.Str(portKey)
	if port == "" {
		return host
	}
	return host + ":" + port
}
