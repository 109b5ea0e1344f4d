// Package lint checks a site configuration for the mistakes the site
// generator would otherwise only surface as broken pages.
package lint

import (
	"fmt"
	"strings"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single problem at a field path.
type Finding struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Value    any      `json:"value,omitempty"`
}

func (f Finding) String() string {
	if f.Value == nil || f.Value == "" {
		return fmt.Sprintf("%s: %s: %s", f.Severity, f.Field, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s (%v)", f.Severity, f.Field, f.Message, f.Value)
}

// Report accumulates findings in the order checks ran.
type Report struct {
	findings []Finding
	strict   bool
}

func (r *Report) add(sev Severity, field, message string, value any) {
	r.findings = append(r.findings, Finding{
		Severity: sev,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

func (r *Report) errorf(field string, value any, format string, args ...any) {
	r.add(SeverityError, field, fmt.Sprintf(format, args...), value)
}

func (r *Report) warnf(field string, value any, format string, args ...any) {
	r.add(SeverityWarning, field, fmt.Sprintf(format, args...), value)
}

// Findings returns a copy of all findings.
func (r *Report) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Errors returns the findings with error severity.
func (r *Report) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns the findings with warning severity.
func (r *Report) Warnings() []Finding { return r.filter(SeverityWarning) }

func (r *Report) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// OK reports whether the configuration passes. In strict mode warnings fail too.
func (r *Report) OK() bool {
	return r.Err() == nil
}

// Err converts failing findings into a ValidationError, or nil.
func (r *Report) Err() error {
	failing := r.Errors()
	if r.strict {
		failing = append(failing, r.Warnings()...)
	}
	if len(failing) == 0 {
		return nil
	}
	return ValidationError{findings: failing}
}

// ValidationError bundles the findings that failed a lint run.
type ValidationError struct {
	findings []Finding
}

// Findings returns the individual failures.
func (e ValidationError) Findings() []Finding {
	out := make([]Finding, len(e.findings))
	copy(out, e.findings)
	return out
}

func (e ValidationError) Error() string {
	switch len(e.findings) {
	case 0:
		return ""
	case 1:
		return "lint: " + e.findings[0].String()
	}
	msgs := make([]string, len(e.findings))
	for i, f := range e.findings {
		msgs[i] = f.String()
	}
	return fmt.Sprintf("lint: %d problems: %s", len(e.findings), strings.Join(msgs, "; "))
}
