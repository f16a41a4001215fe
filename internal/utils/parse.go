// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Handlers use it for optional numeric query parameters and path ids,
// where "absent or garbage" should read as the zero/default value.
//
// Example:
//
//	id := utils.AtoiDefault(c.Query("client_id"), 0) // 0 means "no filter"
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
