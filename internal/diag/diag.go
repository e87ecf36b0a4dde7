// Package diag defines the diagnostic channel the generator reports through.
// Generation never aborts a whole round for one declaration's problem: every
// problem becomes a Diagnostic scoped to a position, and the host (the CLI)
// maps the worst collected severity to an exit status.
package diag

import "fmt"

// Pos is a location in source code
type Pos struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p Pos) String() string {
	if p.File == "" {
		return "<generated>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is one reported problem
type Diagnostic struct {
	Phase    string   `json:"phase"` // "discover", "factory", "emit", "aggregate"
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Pos      Pos      `json:"pos"`
	Severity Severity `json:"severity"`
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s: %s", d.Pos, d.Severity, d.Code, d.Message)
}

// Reporter accumulates diagnostics for one generation round.
type Reporter struct {
	diags []Diagnostic
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report appends a diagnostic.
func (r *Reporter) Report(d Diagnostic) {
	r.diags = append(r.diags, d)
}

// Warningf reports a warning-severity diagnostic.
func (r *Reporter) Warningf(phase, code string, pos Pos, format string, args ...any) {
	r.Report(Diagnostic{
		Phase:    phase,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Severity: Warning,
	})
}

// Fatalf reports a fatal-severity diagnostic scoped to one declaration.
func (r *Reporter) Fatalf(phase, code string, pos Pos, format string, args ...any) {
	r.Report(Diagnostic{
		Phase:    phase,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Severity: Fatal,
	})
}

// All returns every collected diagnostic in report order.
func (r *Reporter) All() []Diagnostic {
	return r.diags
}

// Warnings counts collected diagnostics below Error severity.
func (r *Reporter) Warnings() int {
	n := 0
	for _, d := range r.diags {
		if d.Severity == Warning {
			n++
		}
	}
	return n
}

// HasFatal reports whether any collected diagnostic is Error severity or
// worse.
func (r *Reporter) HasFatal() bool {
	for _, d := range r.diags {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}
