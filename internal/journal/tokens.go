package journal

import (
	"regexp"
	"strings"
)

// lineKind classifies one line of a markdown document.
type lineKind int

const (
	lineText lineKind = iota
	lineBlank
	lineHeader
	lineChecklist
	lineBullet
	lineBoldField
	lineRule
)

// line is one classified document line. Which extra fields are set
// depends on the kind: headers carry depth and title, checklist items
// carry checked and value, bold fields carry key and value.
type line struct {
	kind    lineKind
	raw     string
	depth   int
	title   string
	checked bool
	key     string
	value   string
}

var (
	checklistRe = regexp.MustCompile(`^- \[([ xX])\]\s*(.*)$`)
	boldFieldRe = regexp.MustCompile(`^\*\*(.+?):\*\*\s*(.*)$`)
)

// tokenize splits a document into classified lines. Classification is
// purely lexical; field extraction walks the result.
func tokenize(text string) []line {
	raw := strings.Split(text, "\n")
	lines := make([]line, len(raw))
	for i, r := range raw {
		lines[i] = classify(r)
	}
	return lines
}

func classify(raw string) line {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return line{kind: lineBlank, raw: raw}
	case isRule(trimmed):
		return line{kind: lineRule, raw: raw}
	case trimmed[0] == '#':
		depth := 0
		for depth < len(trimmed) && trimmed[depth] == '#' {
			depth++
		}
		rest := trimmed[depth:]
		if rest == "" || rest[0] == ' ' {
			return line{kind: lineHeader, raw: raw, depth: depth, title: strings.TrimSpace(rest)}
		}
		return line{kind: lineText, raw: raw}
	}

	if m := checklistRe.FindStringSubmatch(trimmed); m != nil {
		return line{
			kind:    lineChecklist,
			raw:     raw,
			checked: m[1] == "x" || m[1] == "X",
			value:   strings.TrimSpace(m[2]),
		}
	}
	if trimmed == "-" || strings.HasPrefix(trimmed, "- ") {
		return line{kind: lineBullet, raw: raw, value: strings.Trim(trimmed, "- ")}
	}
	if m := boldFieldRe.FindStringSubmatch(trimmed); m != nil {
		return line{
			kind:  lineBoldField,
			raw:   raw,
			key:   strings.TrimSpace(m[1]),
			value: strings.TrimSpace(m[2]),
		}
	}
	return line{kind: lineText, raw: raw}
}

// isRule reports whether a trimmed line is a horizontal rule.
func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// findHeader returns the index of the first header with the given
// depth and exact title, or -1.
func findHeader(lines []line, depth int, title string) int {
	for i, ln := range lines {
		if ln.kind == lineHeader && ln.depth == depth && ln.title == title {
			return i
		}
	}
	return -1
}

// findField returns the value of the first bold field with the given
// key anywhere in the document.
func findField(lines []line, key string) (string, bool) {
	for _, ln := range lines {
		if ln.kind == lineBoldField && ln.key == key {
			return ln.value, true
		}
	}
	return "", false
}

// findFieldIndex returns the line index of the first bold field with
// the given key, or -1. Used for labels that introduce bullet lists.
func findFieldIndex(lines []line, key string) int {
	for i, ln := range lines {
		if ln.kind == lineBoldField && ln.key == key {
			return i
		}
	}
	return -1
}

// checkedAfter collects the texts of checked checklist items following
// the line at start. Blank lines before the first item are tolerated;
// the block ends at the first non-checklist line. Items left empty
// after the checkbox are skipped.
func checkedAfter(lines []line, start int) []string {
	var items []string
	i := start + 1
	for i < len(lines) && lines[i].kind == lineBlank {
		i++
	}
	for ; i < len(lines) && lines[i].kind == lineChecklist; i++ {
		if lines[i].checked && lines[i].value != "" {
			items = append(items, lines[i].value)
		}
	}
	return items
}

// bulletsAfter collects plain bullet items following the line at
// start, with the same boundary rules as checkedAfter. Bare dashes
// produce no items.
func bulletsAfter(lines []line, start int) []string {
	var items []string
	i := start + 1
	for i < len(lines) && lines[i].kind == lineBlank {
		i++
	}
	for ; i < len(lines) && lines[i].kind == lineBullet; i++ {
		if lines[i].value != "" {
			items = append(items, lines[i].value)
		}
	}
	return items
}

// sectionAfter joins the raw lines following a header until the next
// depth-two-or-deeper header or a horizontal rule, trimmed.
func sectionAfter(lines []line, start int) string {
	var buf []string
	for i := start + 1; i < len(lines); i++ {
		ln := lines[i]
		if ln.kind == lineRule || (ln.kind == lineHeader && ln.depth >= 2) {
			break
		}
		buf = append(buf, ln.raw)
	}
	return strings.TrimSpace(strings.Join(buf, "\n"))
}

// stripPlaceholder removes one layer of square brackets, the
// template's unfilled-value convention.
func stripPlaceholder(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		return strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}
