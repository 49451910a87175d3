// Package validator checks goal and reflection documents against the
// journal's structural conventions and reports findings by severity.
package validator

// Severity ranks a finding. Critical findings break the journal's
// automation, warnings degrade it, recommendations are advisory.
type Severity string

const (
	SeverityCritical       Severity = "critical"
	SeverityWarning        Severity = "warning"
	SeverityRecommendation Severity = "recommendation"
)

// Issue is one finding. Fix, when set, names the command that repairs
// it.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Fix      string   `json:"fix,omitempty"`
}

// Report collects the findings of one validation run.
type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) add(sev Severity, msg, file, fix string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Message: msg, File: file, Fix: fix})
}

// Count returns the number of findings at the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// BySeverity returns the findings at one severity, in discovery order.
func (r *Report) BySeverity(sev Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// HasCritical reports whether the run found anything blocking.
func (r *Report) HasCritical() bool {
	return r.Count(SeverityCritical) > 0
}
