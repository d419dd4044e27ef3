package types

import (
	"time"

	"github.com/araddon/dateparse"
)

// CLI holds command line parameters shared across the application.
type CLI struct {
	ConfigPath string
	LogPath    string
	ConnectTo  string
	URL        string
	LogType    string
	Hours      int
	Since      string
}

// ParseSince parses the --since value into a point in time.
func (c *CLI) ParseSince() (time.Time, error) {
	return dateparse.ParseAny(c.Since)
}

// LookbackHours resolves --since into a whole number of lookback hours,
// falling back to --hours when --since is absent or unparsable.
func (c *CLI) LookbackHours() int {
	if c.Since == "" {
		return c.Hours
	}
	t, err := c.ParseSince()
	if err != nil {
		return c.Hours
	}
	h := int(time.Since(t).Hours())
	if h < 1 {
		h = 1
	}
	return h
}
