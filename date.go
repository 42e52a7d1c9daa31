package webharvest

import (
	"strings"
	"time"
)

// dateLayouts are tried in order; the first successful parse wins.
// The list mirrors the heterogeneous formats that appear in publish-time
// strings across sites (ISO, slashed, and Chinese calendar dates).
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006年1月2日",
}

// ParseDate parses a heterogeneous date string by trying a fixed, ordered
// list of layouts. When the full string matches no layout, the first
// whitespace-separated field is tried on its own, so strings like
// "2025-09-21 06:05 来源:..." still resolve to their date part.
// Returns false when nothing matches; callers decide whether that is
// fatal (it usually is not: filtering is fail-open).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if head, _, found := strings.Cut(s, " "); found {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, head); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ResolveDate returns the best-available timestamp string for a record,
// preferring publish time over extraction time.
func ResolveDate(publishTime, extractionTime string) string {
	if publishTime != "" {
		return publishTime
	}
	return extractionTime
}

// DateRange is an inclusive calendar date range. The end extends to
// 23:59:59 of its day.
type DateRange struct {
	start time.Time
	end   time.Time

	hasStart bool
	hasEnd   bool
}

// NewDateRange parses the YYYY-MM-DD bounds. Either bound may be empty,
// leaving that side open. Returns an error if a non-empty bound cannot
// be parsed.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	var r DateRange
	if startDate != "" {
		t, ok := ParseDate(startDate)
		if !ok {
			return nil, Errorf(EINVALID, "invalid start date %q", startDate)
		}
		r.start = t
		r.hasStart = true
	}
	if endDate != "" {
		t, ok := ParseDate(endDate)
		if !ok {
			return nil, Errorf(EINVALID, "invalid end date %q", endDate)
		}
		r.end = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
		r.hasEnd = true
	}
	return &r, nil
}

// Empty reports whether both bounds are open.
func (r *DateRange) Empty() bool {
	return !r.hasStart && !r.hasEnd
}

// Contains reports whether the record date string falls within the range.
// Unparseable dates are not excluded (fail-open): rejecting ambiguous
// dates would silently lose valid documents.
func (r *DateRange) Contains(date string) bool {
	if r.Empty() {
		return true
	}
	t, ok := ParseDate(date)
	if !ok {
		return true
	}
	if r.hasStart && t.Before(r.start) {
		return false
	}
	if r.hasEnd && t.After(r.end) {
		return false
	}
	return true
}

// ContainsStrict is like Contains but excludes unparseable dates. Used by
// the pure date-range scan, where a record with no usable date cannot be
// meaningfully ordered.
func (r *DateRange) ContainsStrict(date string) bool {
	t, ok := ParseDate(date)
	if !ok {
		return false
	}
	if r.hasStart && t.Before(r.start) {
		return false
	}
	if r.hasEnd && t.After(r.end) {
		return false
	}
	return true
}
