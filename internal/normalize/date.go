package normalize

import (
	"fmt"
	"strings"
	"time"
)

// DateParseError reports a date token that matched no accepted shape
type DateParseError struct {
	Token string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q", e.Token)
}

// dateLayouts are tried in priority order. The first three are the shapes
// Brazilian statement exports actually use; the rest are a last-resort
// generic attempt for odd exports.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"2006/01/02",
	"2/1/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Date converts a raw date token into a calendar date. Impossible dates
// such as 31/02/2025 are rejected, not clamped. On total failure the line
// fails; the engine never substitutes the current date, because defaulting
// to "now" silently corrupts financial history.
func Date(token string) (time.Time, error) {
	cleaned := strings.TrimSpace(token)
	if cleaned == "" {
		return time.Time{}, &DateParseError{Token: token}
	}

	// ISO datetime exports carry a time portion; only the date matters.
	if len(cleaned) > 10 && cleaned[10] == 'T' {
		cleaned = cleaned[:10]
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		// time.Parse already rejects out-of-range components; the round-trip
		// check guards layouts that tolerate them.
		if t.Format(layout) != cleaned && layout != "2/1/2006" {
			continue
		}
		return t, nil
	}

	return time.Time{}, &DateParseError{Token: token}
}
