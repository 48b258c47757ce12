package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts loosely-typed values (query params, loader params,
// DB scan results) to int. Unparseable values yield 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(string(v))
		return i
	default:
		i, _ := strconv.Atoi(fmt.Sprintf("%v", v))
		return i
	}
}

// ToBool converts loosely-typed values to bool. Numeric 1 and the
// strings "1"/"true" (case-insensitive) are true.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	case []byte:
		return ToBool(string(v))
	case int, int64, int32, uint, uint64, uint32:
		return ToInt(v) == 1
	default:
		return false
	}
}

// IntTriple parses three positive integers from a string, accepting
// "256 256 128" or "256x256x128" forms. Used for volume dimensions.
func IntTriple(s string) ([3]int, error) {
	var out [3]int
	fields := strings.Fields(strings.ReplaceAll(s, "x", " "))
	if len(fields) != 3 {
		return out, fmt.Errorf("expected three integers, got %q", s)
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return out, fmt.Errorf("invalid integer %q in %q", f, s)
		}
		out[i] = n
	}
	return out, nil
}
