package utils

import (
	"strconv"
	"strings"
)

// ParseInt64 converts a form or query value to a positive int64.
func ParseInt64(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil || result < 1 {
		return 0, false
	}

	return result, true
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
