package project

import (
	"fmt"
	"strings"
)

// Severity classifies a ValidationError.
type Severity int

const (
	// SeverityError blocks a build.
	SeverityError Severity = iota
	// SeverityWarning points at a probable mistake.
	SeverityWarning
	// SeverityMessage is informational.
	SeverityMessage
)

var severityNames = [...]string{"error", "warning", "message"}

func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	for i, n := range severityNames {
		if strings.EqualFold(n, string(b)) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(b))
}

// ValidationError is a single validation issue. Source names the item that
// produced it and is empty for project-level issues. Values are created fresh
// by every validation pass and never mutated.
type ValidationError struct {
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (e ValidationError) String() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Severity, e.Source, e.Message)
}

func newError(source, format string, args ...any) ValidationError {
	return ValidationError{Source: source, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func newWarning(source, format string, args ...any) ValidationError {
	return ValidationError{Source: source, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

func newMessage(source, format string, args ...any) ValidationError {
	return ValidationError{Source: source, Message: fmt.Sprintf(format, args...), Severity: SeverityMessage}
}

// Result is the outcome of one validation pass. The counters always equal
// the partition of Issues by severity.
type Result struct {
	Issues       []ValidationError `json:"issues"`
	ErrorCount   int               `json:"error_count"`
	WarningCount int               `json:"warning_count"`
	MessageCount int               `json:"message_count"`
}

// NewResult builds a Result and derives its counters from issues.
func NewResult(issues []ValidationError) Result {
	r := Result{Issues: issues}
	if r.Issues == nil {
		r.Issues = []ValidationError{}
	}
	for _, is := range r.Issues {
		switch is.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityMessage:
			r.MessageCount++
		}
	}
	return r
}

// HasErrors reports whether a build must be blocked.
func (r Result) HasErrors() bool { return r.ErrorCount > 0 }

// Total returns the number of issues.
func (r Result) Total() int { return len(r.Issues) }

// BySource returns the issues reported for source, in order.
func (r Result) BySource(source string) []ValidationError {
	var out []ValidationError
	for _, is := range r.Issues {
		if is.Source == source {
			out = append(out, is)
		}
	}
	return out
}
