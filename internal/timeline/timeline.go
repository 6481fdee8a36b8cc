// Package timeline holds the shared time axis of a render session and
// resolves caller-supplied start/end bounds to integer indices.
package timeline

import (
	"sort"
	"time"
)

// Timeline is the column-oriented time axis shared by every panel of a
// session. It is built once, from the first data feed's datetime line,
// converted to the feed's timezone.
type Timeline struct {
	times []time.Time
}

// New builds a timeline from a datetime line, converting to the named
// timezone. An unknown or empty timezone falls back to UTC.
func New(times []time.Time, tz string) *Timeline {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	converted := make([]time.Time, len(times))
	for i, t := range times {
		converted[i] = t.In(loc)
	}
	return &Timeline{times: converted}
}

// Len returns the number of points on the axis
func (tl *Timeline) Len() int { return len(tl.times) }

// At returns the time at index i
func (tl *Timeline) At(i int) time.Time { return tl.times[i] }

// Labels returns formatted axis labels for [start, end)
func (tl *Timeline) Labels(start, end int, layout string) []string {
	if layout == "" {
		layout = "2006-01-02 15:04"
	}
	start, end = tl.clamp(start, end)

	out := make([]string, 0, end-start)
	for _, t := range tl.times[start:end] {
		out = append(out, t.Format(layout))
	}
	return out
}

func (tl *Timeline) clamp(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(tl.times) {
		end = len(tl.times)
	}
	if start > end {
		start = end
	}
	return start, end
}

// Bound is an optional range bound: absent, an integer index, or a
// calendar date.
type Bound struct {
	index *int
	date  *time.Time
}

// None is the absent bound
var None = Bound{}

// Index makes an integer index bound
func Index(i int) Bound { return Bound{index: &i} }

// Date makes a calendar date bound
func Date(t time.Time) Bound { return Bound{date: &t} }

// Range resolves start/end bounds to integer indices into the axis.
// Absent bounds default to the full range. Date bounds are resolved by
// binary search, left-biased for start and right-biased for end, so the
// resolved range holds exactly the points within [start, end). A negative
// end index -k resolves relative to the axis length as len+1-k.
func (tl *Timeline) Range(start, end Bound) (int, int) {
	n := len(tl.times)

	s := 0
	switch {
	case start.date != nil:
		s = sort.Search(n, func(i int) bool { return !tl.times[i].Before(*start.date) })
	case start.index != nil:
		s = *start.index
	}

	e := n
	switch {
	case end.date != nil:
		e = sort.Search(n, func(i int) bool { return tl.times[i].After(*end.date) })
	case end.index != nil:
		e = *end.index
	}

	if e < 0 {
		e = n + 1 + e
	}

	return s, e
}
