package analyzer

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"

	"github.com/AzretMagometov/plan-expo/internal/journal"
)

// goodDayPercent is the weekday completion rate from which a weekday
// qualifies as a best day rather than a worst day.
const goodDayPercent = 50

// DayStat is one weekday's completion percentage. Stats keep
// first-observed order because best/worst selection breaks ties by it.
type DayStat struct {
	Day  string
	Rate float64
}

// DayStats is an ordered weekday-to-rate mapping. It marshals as a
// JSON object keyed by weekday name, preserving insertion order.
type DayStats []DayStat

// MarshalJSON implements json.Marshaler.
func (d DayStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Day)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.Rate)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Rate returns the stored percentage for a weekday name.
func (d DayStats) Rate(day string) (float64, bool) {
	for _, s := range d {
		if s.Day == day {
			return s.Rate, true
		}
	}
	return 0, false
}

// StreakStats summarizes one habit's completion history over a window
// of days.
type StreakStats struct {
	CurrentStreak     int      `json:"current_streak"`
	MaxStreak         int      `json:"max_streak"`
	CompletionRate7d  float64  `json:"completion_rate_7d"`
	CompletionRate30d float64  `json:"completion_rate_30d"`
	CompletionRateAll float64  `json:"completion_rate_all"`
	AvgPerWeek        float64  `json:"avg_per_week"`
	BestDays          []string `json:"best_days"`
	WorstDays         []string `json:"worst_days"`
	DayStats          DayStats `json:"day_stats"`
}

// Calculator computes streak statistics for habits over a day window.
// A nil Strategy falls back to KeywordOverlap.
type Calculator struct {
	Strategy Strategy
}

// Calculate walks the window (oldest first) once per habit and derives
// every streak statistic from the resulting completion history.
func (c *Calculator) Calculate(habit journal.Habit, window []journal.Day) StreakStats {
	strat := c.Strategy
	if strat == nil {
		strat = KeywordOverlap{}
	}

	completed := make([]bool, len(window))
	for i, d := range window {
		completed[i] = strat.Completed(habit, d.Record)
	}

	stats := StreakStats{
		BestDays:  []string{},
		WorstDays: []string{},
	}

	// Current streak: walk backward from the most recent day until the
	// first miss.
	for i := len(completed) - 1; i >= 0 && completed[i]; i-- {
		stats.CurrentStreak++
	}

	// Max streak: single forward pass with a running counter.
	run := 0
	for _, done := range completed {
		if done {
			run++
			if run > stats.MaxStreak {
				stats.MaxStreak = run
			}
		} else {
			run = 0
		}
	}

	stats.CompletionRate7d = trailingRate(completed, 7)
	stats.CompletionRate30d = trailingRate(completed, 30)
	stats.CompletionRateAll = trailingRate(completed, len(completed))

	// Average completions per full week; partial weeks are ignored.
	if weeks := len(completed) / 7; weeks > 0 {
		stats.AvgPerWeek = round1(float64(countTrue(completed)) / float64(weeks))
	}

	stats.DayStats = weekdayRates(window, completed)
	stats.BestDays, stats.WorstDays = rankDays(stats.DayStats)
	return stats
}

// trailingRate is the completion percentage over the trailing n days
// of the history, bounded by the window length.
func trailingRate(completed []bool, n int) float64 {
	if len(completed) == 0 || n <= 0 {
		return 0
	}
	if n > len(completed) {
		n = len(completed)
	}
	tail := completed[len(completed)-n:]
	return round1(float64(countTrue(tail)) / float64(len(tail)) * 100)
}

// weekdayRates groups the history by weekday name, in first-observed
// order. Rates stay unrounded; rounding here would distort the
// best/worst threshold.
func weekdayRates(window []journal.Day, completed []bool) DayStats {
	type tally struct{ done, seen int }
	var order []string
	byDay := make(map[string]*tally)

	for i, d := range window {
		name := d.Date.Weekday().String()
		tl, ok := byDay[name]
		if !ok {
			tl = &tally{}
			byDay[name] = tl
			order = append(order, name)
		}
		tl.seen++
		if completed[i] {
			tl.done++
		}
	}

	stats := make(DayStats, 0, len(order))
	for _, name := range order {
		tl := byDay[name]
		stats = append(stats, DayStat{
			Day:  name,
			Rate: float64(tl.done) / float64(tl.seen) * 100,
		})
	}
	return stats
}

// rankDays picks up to two best days (rate at least goodDayPercent)
// and up to two worst days (rate below it) from the weekday stats.
// The sort is stable, so equal rates keep first-observed order.
func rankDays(stats DayStats) (best, worst []string) {
	best, worst = []string{}, []string{}
	if len(stats) == 0 {
		return best, worst
	}

	sorted := make(DayStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rate > sorted[j].Rate })

	for _, s := range sorted[:min(2, len(sorted))] {
		if s.Rate >= goodDayPercent {
			best = append(best, s.Day)
		}
	}
	for _, s := range sorted[max(0, len(sorted)-2):] {
		if s.Rate < goodDayPercent {
			worst = append(worst, s.Day)
		}
	}
	return best, worst
}

func countTrue(bits []bool) int {
	n := 0
	for _, b := range bits {
		if b {
			n++
		}
	}
	return n
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
