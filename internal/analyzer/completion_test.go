package analyzer

import (
	"testing"

	"github.com/AzretMagometov/plan-expo/internal/journal"
)

func intp(n int) *int { return &n }

func TestWordSet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"latin", "Read the book", []string{"read", "the", "book"}},
		{"cyrillic", "ЕСЛИ наступило утро → ТО медитирую", []string{"если", "наступило", "утро", "то", "медитирую"}},
		{"punctuation split", "кофе, чай; вода", []string{"кофе", "чай", "вода"}},
		{"duplicates collapse", "бег бег бег", []string{"бег"}},
		{"digits and underscore", "этап_1 из 3", []string{"этап_1", "из", "3"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordSet(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("wordSet(%q) has %d words, want %d: %v", tt.input, len(got), len(tt.want), got)
			}
			for _, w := range tt.want {
				if _, ok := got[w]; !ok {
					t.Errorf("wordSet(%q) missing %q", tt.input, w)
				}
			}
		})
	}
}

func TestKeywordOverlap_NilRecord(t *testing.T) {
	habit := journal.Habit{Name: "После кофе → делаю зарядку"}
	if (KeywordOverlap{}).Completed(habit, nil) {
		t.Error("nil record must never count as completed")
	}
}

func TestKeywordOverlap_OperationMatch(t *testing.T) {
	habit := journal.Habit{Name: "ЕСЛИ утро → ТО пишу код"}

	tests := []struct {
		name string
		rec  *journal.Record
		want bool
	}{
		{
			"full overlap",
			&journal.Record{OperationsDone: []string{"ЕСЛИ утро → ТО пишу код"}},
			true,
		},
		{
			"half overlap passes",
			&journal.Record{OperationsDone: []string{"утро: пишу код без отвлечений"}},
			true,
		},
		{
			"below half fails",
			&journal.Record{OperationsDone: []string{"читал книгу про код"}},
			false,
		},
		{
			"unrelated operation",
			&journal.Record{OperationsDone: []string{"сходил в магазин"}},
			false,
		},
		{
			"no operations",
			&journal.Record{},
			false,
		},
		{
			"second operation matches",
			&journal.Record{OperationsDone: []string{"сходил в магазин", "утро ЕСЛИ ТО пишу код"}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (KeywordOverlap{}).Completed(habit, tt.rec); got != tt.want {
				t.Errorf("Completed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordOverlap_PercentFallback(t *testing.T) {
	habit := journal.Habit{Name: "После обеда → гуляю 10 минут"}

	tests := []struct {
		name    string
		percent *int
		want    bool
	}{
		{"at threshold", intp(80), true},
		{"above threshold", intp(95), true},
		{"below threshold", intp(79), false},
		{"zero", intp(0), false},
		{"absent", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &journal.Record{
				OperationsDone:    []string{"совсем другое действие"},
				OperationsPercent: tt.percent,
			}
			if got := (KeywordOverlap{}).Completed(habit, rec); got != tt.want {
				t.Errorf("Completed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordOverlap_CaseInsensitive(t *testing.T) {
	habit := journal.Habit{Name: "После КОФЕ → Читаю Книгу"}
	rec := &journal.Record{OperationsDone: []string{"после кофе читаю книгу"}}
	if !(KeywordOverlap{}).Completed(habit, rec) {
		t.Error("matching must ignore case")
	}
}
