package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts tried, in order, for string instants.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// AsString accepts strings and renders numbers without a trailing ".0".
func AsString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(sanitize(x), 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(sanitize(float64(x)), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := AsFloat(x)
		return strconv.FormatFloat(f, 'f', -1, 64), true
	default:
		return "", false
	}
}

// AsFloat coerces Go numerics, json.Number and numeric strings such as "$1,200.50".
// NaN and infinities clamp to 0.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return sanitize(x), true
	case float32:
		return sanitize(float64(x)), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return sanitize(f), true
	case string:
		cleaned := amountCleaner.Replace(strings.TrimSpace(x))
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return sanitize(f), true
	default:
		return 0, false
	}
}

// AsDecimal is AsFloat without the float round trip for exact sources.
func AsDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(x.String()); err == nil {
			return d, true
		}
	case string:
		if d, err := decimal.NewFromString(amountCleaner.Replace(strings.TrimSpace(x))); err == nil {
			return d, true
		}
	case int64:
		return decimal.NewFromInt(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	}
	f, ok := AsFloat(v)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// AsInt truncates fractional numbers toward zero.
func AsInt(v any) (int, bool) {
	f, ok := AsFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func AsBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	}
	f, ok := AsFloat(v)
	if !ok {
		return false, false
	}
	switch f {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

// AsTime accepts time.Time, RFC3339 or date strings, epoch seconds and
// timestamp maps of the form {"seconds": s, "nanoseconds": n} (underscore
// prefixed keys too). Results are in UTC.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return x.UTC(), true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	case map[string]any:
		return timestampFromMap(x)
	case Fragment:
		return timestampFromMap(x)
	}
	secs, ok := AsFloat(v)
	if !ok {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}

func timestampFromMap(m map[string]any) (time.Time, bool) {
	rawSecs, ok := firstPresent(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	secs, ok := AsInt(rawSecs)
	if !ok {
		return time.Time{}, false
	}
	nanos := 0
	if rawNanos, ok := firstPresent(m, "nanoseconds", "_nanoseconds"); ok {
		if n, ok := AsInt(rawNanos); ok {
			nanos = n
		}
	}
	return time.Unix(int64(secs), int64(nanos)).UTC(), true
}

// AsStrings accepts a list of strings or a single string. Blank entries are kept;
// callers decide whether they matter.
func AsStrings(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...), true
	case string:
		return []string{x}, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := AsString(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func AsFragment(v any) (Fragment, bool) {
	switch x := v.(type) {
	case Fragment:
		return x, true
	case map[string]any:
		return Fragment(x), true
	default:
		return nil, false
	}
}

func AsList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []Fragment:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func firstPresent(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
