package util

import (
	"strconv"
)

// MustParseUint converts s to an unsigned id, returning 0 when it does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseUnix parses a unix timestamp, returning 0 when it does not parse.
func ParseUnix(s string) int64 {
	ts, _ := strconv.ParseInt(s, 10, 64)
	return ts
}

// ParseBool accepts the usual truthy spellings of a query flag.
func ParseBool(s string) bool {
	switch s {
	case "1", "true", "TRUE", "yes", "on":
		return true
	}
	return false
}
