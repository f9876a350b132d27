// Package document reads untyped trip document fragments. Every accessor is
// path aware so a failure names the full dotted path of the offending field,
// e.g. recommendation.itinerary.flights[1].segments[0].airline.
package document

import (
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/shopspring/decimal"
)

// Fragment is one decoded JSON object.
type Fragment map[string]any

// Reader wraps a fragment with the path it was found at.
type Reader struct {
	frag Fragment
	path string
}

func NewReader(frag Fragment, path string) Reader {
	return Reader{frag: frag, path: path}
}

func (r Reader) Fragment() Fragment { return r.frag }

// Path is the dotted path of the wrapped fragment.
func (r Reader) Path() string { return r.path }

// At returns the dotted path of key inside this fragment.
func (r Reader) At(key string) string { return JoinPath(r.path, key) }

// JoinPath appends key to a dotted path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// IndexPath appends a list index to a path: flights -> flights[2].
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// Lookup returns the raw value under key. A nil value counts as absent.
func (r Reader) Lookup(key string) (any, bool) {
	if r.frag == nil {
		return nil, false
	}
	v, ok := r.frag[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r Reader) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// FirstKey returns the first of keys that is present, trying them in order.
func (r Reader) FirstKey(keys ...string) (string, bool) {
	for _, k := range keys {
		if r.Has(k) {
			return k, true
		}
	}
	return "", false
}

func (r Reader) wrongType(key, expected string, got any) error {
	return errors.WrongType(r.At(key), expected, got)
}

// RequiredString fails with MissingField when absent and WrongType when not a string.
// Empty strings are accepted.
func (r Reader) RequiredString(key string) (string, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return "", errors.MissingField(r.At(key))
	}
	s, ok := AsString(v)
	if !ok {
		return "", r.wrongType(key, "string", v)
	}
	return s, nil
}

// RequiredFirstString tries keys in order; a miss on all of them names the first key.
func (r Reader) RequiredFirstString(keys ...string) (string, error) {
	if k, ok := r.FirstKey(keys...); ok {
		return r.RequiredString(k)
	}
	if len(keys) == 0 {
		return "", errors.MissingField(r.path)
	}
	return "", errors.MissingField(r.At(keys[0]))
}

func (r Reader) RequiredTime(key string) (time.Time, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return time.Time{}, errors.MissingField(r.At(key))
	}
	t, ok := AsTime(v)
	if !ok {
		return time.Time{}, r.wrongType(key, "timestamp", v)
	}
	return t, nil
}

func (r Reader) RequiredInt(key string) (int, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return 0, errors.MissingField(r.At(key))
	}
	n, ok := AsInt(v)
	if !ok {
		return 0, r.wrongType(key, "integer", v)
	}
	return n, nil
}

// String returns def when key is absent.
func (r Reader) String(key, def string) (string, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	s, ok := AsString(v)
	if !ok {
		return def, r.wrongType(key, "string", v)
	}
	return s, nil
}

// FirstString reads the first present key in order, newest document shape first.
func (r Reader) FirstString(def string, keys ...string) (string, error) {
	k, ok := r.FirstKey(keys...)
	if !ok {
		return def, nil
	}
	return r.String(k, def)
}

func (r Reader) Float(key string, def float64) (float64, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	f, ok := AsFloat(v)
	if !ok {
		return def, r.wrongType(key, "number", v)
	}
	return f, nil
}

// OptionalFloat is Float with absence reported as nil.
func (r Reader) OptionalFloat(key string) (*float64, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return nil, nil
	}
	f, ok := AsFloat(v)
	if !ok {
		return nil, r.wrongType(key, "number", v)
	}
	return &f, nil
}

func (r Reader) Decimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	d, ok := AsDecimal(v)
	if !ok {
		return def, r.wrongType(key, "number", v)
	}
	return d, nil
}

// OptionalDecimal reads the first present key as a decimal; nil when none is present.
func (r Reader) OptionalDecimal(keys ...string) (*decimal.Decimal, error) {
	k, ok := r.FirstKey(keys...)
	if !ok {
		return nil, nil
	}
	d, err := r.Decimal(k, decimal.Zero)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r Reader) Int(key string, def int) (int, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	n, ok := AsInt(v)
	if !ok {
		return def, r.wrongType(key, "integer", v)
	}
	return n, nil
}

func (r Reader) OptionalInt(key string) (*int, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return nil, nil
	}
	n, ok := AsInt(v)
	if !ok {
		return nil, r.wrongType(key, "integer", v)
	}
	return &n, nil
}

func (r Reader) Bool(key string, def bool) (bool, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	b, ok := AsBool(v)
	if !ok {
		return def, r.wrongType(key, "boolean", v)
	}
	return b, nil
}

// FirstBool reads the first present key in order.
func (r Reader) FirstBool(def bool, keys ...string) (bool, error) {
	k, ok := r.FirstKey(keys...)
	if !ok {
		return def, nil
	}
	return r.Bool(k, def)
}

func (r Reader) Time(key string, def time.Time) (time.Time, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	t, ok := AsTime(v)
	if !ok {
		return def, r.wrongType(key, "timestamp", v)
	}
	return t, nil
}

func (r Reader) OptionalTime(key string) (*time.Time, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return nil, nil
	}
	t, ok := AsTime(v)
	if !ok {
		return nil, r.wrongType(key, "timestamp", v)
	}
	return &t, nil
}

// Strings returns nil when absent. A single string becomes a one-element list.
func (r Reader) Strings(key string) ([]string, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return nil, nil
	}
	list, ok := AsStrings(v)
	if !ok {
		return nil, r.wrongType(key, "string list", v)
	}
	return list, nil
}

func (r Reader) FirstStrings(keys ...string) ([]string, error) {
	k, ok := r.FirstKey(keys...)
	if !ok {
		return nil, nil
	}
	return r.Strings(k)
}

// Child returns a reader over the nested fragment at key.
// ok is false when the key is absent.
func (r Reader) Child(key string) (child Reader, ok bool, err error) {
	v, present := r.Lookup(key)
	if !present {
		return Reader{}, false, nil
	}
	frag, isFrag := AsFragment(v)
	if !isFrag {
		return Reader{}, true, r.wrongType(key, "object", v)
	}
	return NewReader(frag, r.At(key)), true, nil
}

// List returns the raw list at key; ok is false when absent.
func (r Reader) List(key string) (list []any, ok bool, err error) {
	v, present := r.Lookup(key)
	if !present {
		return nil, false, nil
	}
	l, isList := AsList(v)
	if !isList {
		return nil, true, r.wrongType(key, "list", v)
	}
	return l, true, nil
}
