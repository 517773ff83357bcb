package normalizer

import (
	"strings"
	"time"
)

const canonicalDate = "2006-01-02"

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"20060102",
	"2006-1-2 15:04:05",
}

var cjkDateMarkers = strings.NewReplacer("年", "-", "月", "-", "日", "")

// Date canonicalizes a date string to YYYY-MM-DD. Accepted inputs use ".",
// "/" or "-" separators, no separator (YYYYMMDD), a trailing HH:MM:SS time, or
// the <Y>年<M>月<D>日 form.
func Date(value *string) *string {
	if value == nil {
		return nil
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			out := t.Format(canonicalDate)
			return &out
		}
	}

	clean := cjkDateMarkers.Replace(s)
	if t, err := time.Parse("2006-1-2", clean); err == nil {
		out := t.Format(canonicalDate)
		return &out
	}
	return nil
}
