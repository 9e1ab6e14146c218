// ABOUTME: Argument coercion helpers for tool handlers.
// ABOUTME: JSON numbers arrive as float64; LLM callers sometimes send numbers as strings.

package tools

import (
	"fmt"
	"strconv"
)

// stringArg returns the named argument as a string, or def when absent.
// Non-string values are stringified rather than rejected.
func stringArg(args map[string]any, name, def string) string {
	v, ok := args[name]
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

// intArg returns the named argument as an int, or def when absent.
// Accepts JSON numbers and numeric strings.
func intArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("argument %q is not a number: %q", name, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("argument %q is not a number", name)
	}
}
