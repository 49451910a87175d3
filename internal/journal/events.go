package journal

import (
	"strings"
	"unicode/utf8"
)

// lexiconEntry tags one change keyword with its classification.
type lexiconEntry struct {
	keyword    string
	kind       EventKind
	confidence Confidence
}

// changeLexicon lists every keyword the detector knows, forced set
// first. Detection order follows this table.
var changeLexicon = []lexiconEntry{
	{"авария", EventForced, ConfidenceHigh},
	{"потерял", EventForced, ConfidenceHigh},
	{"уволили", EventForced, ConfidenceHigh},
	{"болезнь", EventForced, ConfidenceHigh},
	{"кризис", EventForced, ConfidenceMedium},
	{"не могу", EventForced, ConfidenceMedium},
	{"невозможно", EventForced, ConfidenceMedium},
	{"форс-мажор", EventForced, ConfidenceMedium},
	{"вынужден", EventForced, ConfidenceMedium},
	{"пришлось", EventForced, ConfidenceMedium},
	{"обстоятельства", EventForced, ConfidenceMedium},
	{"потеря дохода", EventForced, ConfidenceMedium},
	{"потеря работы", EventForced, ConfidenceMedium},
	{"травм", EventForced, ConfidenceMedium},
	{"госпитал", EventForced, ConfidenceMedium},
	{"операция", EventForced, ConfidenceMedium},

	{"решил изменить", EventVoluntary, ConfidenceMedium},
	{"переосмыслил", EventVoluntary, ConfidenceMedium},
	{"понял, что", EventVoluntary, ConfidenceMedium},
	{"новые приоритеты", EventVoluntary, ConfidenceMedium},
	{"больше не актуально", EventVoluntary, ConfidenceMedium},
	{"хочу сфокусироваться", EventVoluntary, ConfidenceMedium},
	{"изменил приоритеты", EventVoluntary, ConfidenceMedium},
}

const (
	contextRadius = 100
	contextMax    = 200
)

// DetectEvents scans the whole document text, case-insensitively, for
// every lexicon keyword. Each matching keyword yields one event with a
// context snippet around its first occurrence. Matches are independent:
// overlapping keywords all report.
func DetectEvents(text string) []Event {
	lower := strings.ToLower(text)
	runes := []rune(text)

	var events []Event
	for _, entry := range changeLexicon {
		byteIdx := strings.Index(lower, entry.keyword)
		if byteIdx < 0 {
			continue
		}
		runeIdx := utf8.RuneCountInString(lower[:byteIdx])
		events = append(events, Event{
			Kind:       entry.kind,
			Keyword:    entry.keyword,
			Context:    snippet(runes, runeIdx, utf8.RuneCountInString(entry.keyword)),
			Confidence: entry.confidence,
		})
	}
	return events
}

// snippet returns up to contextRadius runes on each side of the match,
// truncated to contextMax runes.
func snippet(runes []rune, idx, kwLen int) string {
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + kwLen + contextRadius
	if end > len(runes) {
		end = len(runes)
	}
	window := runes[start:end]
	if len(window) > contextMax {
		window = window[:contextMax]
	}
	return string(window)
}
