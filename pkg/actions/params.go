package actions

// Param helpers for the loosely-typed argument maps handlers receive.
// JSON decoding produces float64 for every number, so the numeric accessors
// accept both float64 and int.

// String returns params[key] as a string, or fallback when absent or
// wrong-typed.
func String(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns params[key] as an int, or fallback.
func Int(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// Float returns params[key] as a float64, or fallback.
func Float(params map[string]any, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

// StringSlice returns params[key] as a []string, tolerating []any elements.
func StringSlice(params map[string]any, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
