package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  int // expected display width of output
	}{
		{"needs padding", "hi", 10, 10},
		{"exact width", "hello", 5, 5},
		{"over width", "toolong", 3, 7}, // no truncation
		{"cyrillic", "Зарядка", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pad(tc.input, tc.width)
			if w := lipgloss.Width(got); w != tc.want {
				t.Errorf("pad(%q, %d) width = %d, want %d", tc.input, tc.width, w, tc.want)
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	// Disable color so we get predictable output.
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Привычка", "Серия")
	tbl.AddRow("Зарядка", "5")
	tbl.AddRow("Чтение перед сном", "12")

	output := tbl.Render()

	if !strings.Contains(output, "Привычка") {
		t.Error("expected header 'Привычка' in output")
	}
	if !strings.Contains(output, "Зарядка") {
		t.Error("expected 'Зарядка' in output")
	}
	if !strings.Contains(output, "─") {
		t.Error("expected separator character in output")
	}

	// Header + separator + 2 data rows = 4 lines.
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
}

func TestTable_CyrillicAlignment(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	// Cyrillic cells are multi-byte but single display width; columns
	// must align by display width, not byte length.
	tbl := NewTable("Name", "Rate")
	tbl.AddRow("Медитация", "80%")
	tbl.AddRow("Sport", "50%")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	first := lipgloss.Width(lines[2])
	second := lipgloss.Width(lines[3])
	if first != second {
		t.Errorf("data rows misaligned: widths %d vs %d", first, second)
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable()
	if output := tbl.Render(); output != "" {
		t.Errorf("expected empty output for empty table, got %q", output)
	}
}

func TestTable_ShortRow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("A", "B", "C")
	tbl.AddRow("only")

	output := tbl.Render()
	if !strings.Contains(output, "only") {
		t.Error("expected partial row to render")
	}
}

func TestTable_String(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Col1")
	tbl.AddRow("Val1")

	if tbl.String() != tbl.Render() {
		t.Error("String() != Render()")
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	rendered := StyleHeader.Render("test")
	if strings.Contains(rendered, "\x1b[") {
		t.Error("expected no ANSI codes after SetNoColor(true)")
	}
	SetNoColor(false)
}

func TestRateBar_Bounds(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		name string
		rate float64
		want string
	}{
		{"zero", 0, "0.0%"},
		{"full", 100, "100.0%"},
		{"clamped high", 150, "100.0%"},
		{"clamped low", -5, "0.0%"},
		{"fractional", 61.5, "61.5%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RateBar(tc.rate, 20)
			if !strings.Contains(got, tc.want) {
				t.Errorf("RateBar(%v) = %q, want substring %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestRateBar_FillProportion(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := RateBar(50, 10)
	if n := strings.Count(got, "█"); n != 5 {
		t.Errorf("expected 5 filled cells at 50%%/width 10, got %d", n)
	}
	if n := strings.Count(got, "░"); n != 5 {
		t.Errorf("expected 5 empty cells at 50%%/width 10, got %d", n)
	}
}
