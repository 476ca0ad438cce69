package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// dateLayout is the canonical form every date normalizes to.
const dateLayout = "2006-01-02"

var (
	compactDateRe = regexp.MustCompile(`^\d{8}$`)
	dashDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashDateRe   = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}`)
)

// fallbackLayouts are tried, in order, for date strings that match none of
// the fast-path shapes.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"2006.01.02",
}

// coerceDate converts a decoded value to a YYYY-MM-DD string. Accepted
// shapes: numeric epoch (seconds or milliseconds, disambiguated by
// magnitude), 8-digit compact dates, dash- or slash-separated dates with an
// optional time suffix, and a set of generic layouts as a last resort.
func coerceDate(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.Number:
		n := v.Float()
		if n <= 0 {
			return "", false
		}
		var t time.Time
		if n > 1e12 { // milliseconds
			t = time.UnixMilli(int64(n))
		} else {
			t = time.Unix(int64(n), 0)
		}
		return t.UTC().Format(dateLayout), true
	case gjson.String:
		return coerceDateString(strings.TrimSpace(v.String()))
	}
	return "", false
}

func coerceDateString(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if compactDateRe.MatchString(s) {
		out := s[0:4] + "-" + s[4:6] + "-" + s[6:8]
		if _, err := time.Parse(dateLayout, out); err != nil {
			return "", false
		}
		return out, true
	}
	if dashDateRe.MatchString(s) {
		out := s[:10]
		if _, err := time.Parse(dateLayout, out); err != nil {
			return "", false
		}
		return out, true
	}
	if slashDateRe.MatchString(s) {
		out := strings.ReplaceAll(s[:10], "/", "-")
		if _, err := time.Parse(dateLayout, out); err != nil {
			return "", false
		}
		return out, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), true
		}
	}
	return "", false
}
