package journal

import (
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// DateLayout is the calendar-day format used for reflection filenames,
// --date flags, and audit-trail stamps.
const DateLayout = "2006-01-02"

// rangeReaders bounds the parallel file reads in LoadRange.
const rangeReaders = 8

// Day pairs a calendar day with its parsed reflection. Record is nil
// when the day has no readable document; such days count as not
// completed downstream.
type Day struct {
	Date   time.Time
	Record *Record
}

// DailyPath returns the canonical location of one day's reflection:
// <reflectionsDir>/daily/<YYYY>/<MM>/<YYYY-MM-DD>.md.
func DailyPath(reflectionsDir string, date time.Time) string {
	return filepath.Join(
		reflectionsDir,
		"daily",
		date.Format("2006"),
		date.Format("01"),
		date.Format(DateLayout)+".md",
	)
}

// LoadRange loads the trailing window of days ending at end, oldest
// first. Documents are read in parallel; the call returns only after
// every slot is filled, so callers see a plain ordered slice.
func LoadRange(reflectionsDir string, end time.Time, days int) []Day {
	if days <= 0 {
		return nil
	}

	window := make([]Day, days)
	var g errgroup.Group
	g.SetLimit(rangeReaders)

	for i := 0; i < days; i++ {
		date := end.AddDate(0, 0, -(days - 1 - i))
		window[i].Date = date
		g.Go(func() error {
			// A failed read leaves the slot's Record nil.
			if rec, err := ParseFile(DailyPath(reflectionsDir, date)); err == nil {
				window[i].Record = rec
			}
			return nil
		})
	}
	_ = g.Wait()

	return window
}
