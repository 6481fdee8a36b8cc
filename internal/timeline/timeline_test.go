package timeline

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func days(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = day(i + 1)
	}
	return out
}

func TestRange_Defaults(t *testing.T) {
	tl := New(days(10), "")
	s, e := tl.Range(None, None)
	if s != 0 || e != 10 {
		t.Errorf("default range = [%d, %d), want [0, 10)", s, e)
	}
}

func TestRange_IndexBounds(t *testing.T) {
	tl := New(days(10), "")
	s, e := tl.Range(Index(2), Index(7))
	if s != 2 || e != 7 {
		t.Errorf("range = [%d, %d), want [2, 7)", s, e)
	}
}

func TestRange_DateBounds(t *testing.T) {
	tl := New(days(10), "")

	// Jan 3 .. Jan 7: start is left-biased (first point >= start), end is
	// right-biased (first point after end).
	s, e := tl.Range(Date(day(3)), Date(day(7)))
	if s != 2 {
		t.Errorf("start index = %d, want 2", s)
	}
	if e != 7 {
		t.Errorf("end index = %d, want 7", e)
	}

	// dates between points resolve to the surrounding indices
	between := day(3).Add(12 * time.Hour)
	s, e = tl.Range(Date(between), Date(day(8).Add(-time.Hour)))
	if s != 3 || e != 7 {
		t.Errorf("range = [%d, %d), want [3, 7)", s, e)
	}
}

func TestRange_NegativeEnd(t *testing.T) {
	tl := New(days(10), "")

	// -k resolves to len - k + 1
	for _, tc := range []struct{ k, want int }{
		{1, 10}, // -1 keeps the full range
		{2, 9},
		{5, 6},
	} {
		_, e := tl.Range(None, Index(-tc.k))
		if e != tc.want {
			t.Errorf("end -%d = %d, want %d", tc.k, e, tc.want)
		}
	}
}

func TestRange_DateBeyondSeries(t *testing.T) {
	tl := New(days(5), "")

	s, e := tl.Range(Date(day(20)), None)
	if s != 5 {
		t.Errorf("start past the series should clamp to len, got %d", s)
	}
	s, e = tl.Range(None, Date(day(20)))
	if e != 5 {
		t.Errorf("end past the series should clamp to len, got %d", e)
	}
	_ = s
}

func TestLabels(t *testing.T) {
	tl := New(days(5), "")
	labels := tl.Labels(1, 3, "2006-01-02")
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	if labels[0] != "2024-01-02" || labels[1] != "2024-01-03" {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestLabels_Clamped(t *testing.T) {
	tl := New(days(3), "")
	labels := tl.Labels(-2, 99, "2006-01-02")
	if len(labels) != 3 {
		t.Errorf("out-of-range label request should clamp, got %d labels", len(labels))
	}
}

func TestNew_TimezoneConversion(t *testing.T) {
	utc := []time.Time{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	tl := New(utc, "America/New_York")
	if got := tl.At(0).Hour(); got != 7 {
		t.Errorf("expected 07:00 in New York, got hour %d", got)
	}

	// unknown zone falls back to UTC
	tl = New(utc, "Not/AZone")
	if tl.At(0).Hour() != 12 {
		t.Error("unknown timezone should fall back to UTC")
	}
}
