package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// queryInt parses an optional integer parameter and checks it against
// [lo, hi]. An absent or empty parameter yields def.
func queryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s %q: must be an integer between %d and %d", key, raw, lo, hi)
	}
	return n, nil
}

func queryUint(r *http.Request, key string, def uint64) (uint64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, raw)
	}
	return n, nil
}

func queryString(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

// matches reports whether want is empty or equals got ignoring case.
func matches(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}
