package lint

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// CoercePosition converts a loosely-typed line or column value to a positive
// int. Zero, negative, non-numeric and non-scalar values yield nil.
// Fractional numbers are truncated toward zero.
func CoercePosition(v any) *int {
	n, ok := toInt(v)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

// CoerceOffset converts a loosely-typed byte offset to a non-negative int,
// or nil.
func CoerceOffset(v any) *int {
	n, ok := toInt(v)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

// CoerceString converts a scalar JSON value to a string. present is false
// for a missing or null value. Objects and arrays are an error.
func CoerceString(v any) (s string, present bool, err error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case json.Number:
		return x.String(), true, nil
	case bool, float64, int, int64:
		return fmt.Sprint(x), true, nil
	default:
		return "", true, fmt.Errorf("expected a string, got %T", v)
	}
}

// IsFalsy reports whether v counts as "not set": missing, null, false,
// an empty string, or numeric zero.
func IsFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case float64:
		return x == 0
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	default:
		return false
	}
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return intFrom(i)
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return intFromFloat(f)
	case float64:
		return intFromFloat(x)
	case int:
		return x, true
	case int64:
		return intFrom(x)
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return intFrom(i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return intFromFloat(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func intFrom(i int64) (int, bool) {
	n, err := safecast.Conv[int](i)
	return n, err == nil
}

// intFromFloat truncates toward zero. NaN, infinities and values outside
// the int range fail.
func intFromFloat(f float64) (int, bool) {
	n, err := safecast.Truncate[int](f)
	return n, err == nil
}
