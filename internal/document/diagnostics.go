package document

import "fmt"

// DiagnosticKind says how a problem was recovered from.
type DiagnosticKind string

const (
	// KindEnumFallback: an unknown tag was replaced with its vocabulary default.
	KindEnumFallback DiagnosticKind = "enum_fallback"
	// KindSkippedElement: a list element failed and was left out.
	KindSkippedElement DiagnosticKind = "skipped_element"
	// KindDroppedSection: an optional structure failed and is reported absent.
	KindDroppedSection DiagnosticKind = "dropped_section"
)

// Diagnostic is one non-fatal problem found while reading a document.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind" yaml:"kind"`
	Path string         `json:"path" yaml:"path"`
	Err  error          `json:"-" yaml:"-"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %v", d.Kind, d.Path, d.Err)
}

// Diagnostics collects recovered problems in the order they were met.
// A nil *Diagnostics discards everything.
type Diagnostics struct {
	items []Diagnostic
}

func (d *Diagnostics) Record(kind DiagnosticKind, path string, err error) {
	if d == nil || err == nil {
		return
	}
	d.items = append(d.items, Diagnostic{Kind: kind, Path: path, Err: err})
}

func (d *Diagnostics) Items() []Diagnostic {
	if d == nil {
		return nil
	}
	return append([]Diagnostic(nil), d.items...)
}

func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// Count returns how many diagnostics of kind were recorded.
func (d *Diagnostics) Count(kind DiagnosticKind) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, item := range d.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

func (d *Diagnostics) Errors() []error {
	if d == nil {
		return nil
	}
	errs := make([]error, 0, len(d.items))
	for _, item := range d.items {
		errs = append(errs, item.Err)
	}
	return errs
}

// Strings renders each diagnostic as "kind path: error".
func (d *Diagnostics) Strings() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.items))
	for _, item := range d.items {
		out = append(out, item.String())
	}
	return out
}
