// Package itinerary turns raw recommendation and itinerary fragments into
// typed entities. Parsers never log; every recovered problem goes to the
// Diagnostics carried by the Scope.
package itinerary

import (
	"strings"
	"time"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
)

// Scope is the context handed down the parse tree: where we are, where to
// report problems and any ancestor values children default from.
type Scope struct {
	diag                *document.Diagnostics
	path                string
	createdAt           *time.Time
	bookingInstructions string
}

func NewScope(diag *document.Diagnostics, path string) Scope {
	return Scope{diag: diag, path: path}
}

func (s Scope) Diagnostics() *document.Diagnostics { return s.diag }

func (s Scope) Path() string { return s.path }

// WithCreatedAt sets the timestamp a recommendation falls back to.
func (s Scope) WithCreatedAt(t time.Time) Scope {
	s.createdAt = &t
	return s
}

// WithBookingInstructions sets the leg-level text inherited by a segment.
func (s Scope) WithBookingInstructions(text string) Scope {
	s.bookingInstructions = text
	return s
}

func (s Scope) At(key string) Scope {
	s.path = document.JoinPath(s.path, key)
	return s
}

func (s Scope) Index(i int) Scope {
	s.path = document.IndexPath(s.path, i)
	return s
}

func (s Scope) Reader(frag document.Fragment) document.Reader {
	return document.NewReader(frag, s.path)
}

func (s Scope) record(kind document.DiagnosticKind, path string, err error) {
	s.diag.Record(kind, path, err)
}

// ParseOptional applies the optional-structure policy: the first present key
// is parsed, and any failure yields nil plus a dropped-section diagnostic.
// Absence is not a problem and records nothing.
func ParseOptional[T any](s Scope, r document.Reader, parse func(Scope, document.Fragment) (T, error), keys ...string) *T {
	key, ok := r.FirstKey(keys...)
	if !ok {
		return nil
	}
	child, _, err := r.Child(key)
	if err != nil {
		s.record(document.KindDroppedSection, r.At(key), err)
		return nil
	}
	v, err := parse(s.At(key), child.Fragment())
	if err != nil {
		s.record(document.KindDroppedSection, r.At(key), err)
		return nil
	}
	return &v
}

// parseList parses every element of the first present list key. Elements that
// fail are skipped and reported; survivors keep their order. An absent key
// gives nil, an empty list gives an empty slice.
func parseList[T any](s Scope, r document.Reader, parse func(Scope, document.Fragment) (T, error), keys ...string) []T {
	key, ok := r.FirstKey(keys...)
	if !ok {
		return nil
	}
	raw, _, err := r.List(key)
	if err != nil {
		s.record(document.KindDroppedSection, r.At(key), err)
		return nil
	}

	listScope := s.At(key)
	out := make([]T, 0, len(raw))
	for i, item := range raw {
		itemScope := listScope.Index(i)
		frag, ok := document.AsFragment(item)
		if !ok {
			s.record(document.KindSkippedElement, itemScope.path, errors.WrongType(itemScope.path, "object", item))
			continue
		}
		v, err := parse(itemScope, frag)
		if err != nil {
			s.record(document.KindSkippedElement, itemScope.path, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// ResolveEnum reads a vocabulary tag from the first present key. Unknown or
// mistyped tags become the vocabulary default with an enum-fallback
// diagnostic; absent or blank tags become the default silently.
func ResolveEnum[T ~string](s Scope, r document.Reader, resolve func(string) (T, bool), keys ...string) T {
	fallback, _ := resolve("")
	key, ok := r.FirstKey(keys...)
	if !ok {
		return fallback
	}
	raw, err := r.String(key, "")
	if err != nil {
		s.record(document.KindEnumFallback, r.At(key), err)
		return fallback
	}
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	v, ok := resolve(raw)
	if !ok {
		s.record(document.KindEnumFallback, r.At(key), errors.UnresolvableEnum(r.At(key), raw, string(v)))
	}
	return v
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func missing(r document.Reader, key string) error {
	return errors.MissingField(r.At(key))
}
