// Package util provides small formatting helpers shared by the commands.
package util

import "strconv"

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Count formats a count with its noun, e.g. "1 site" or "3 sites".
func Count(n int, singular, plural string) string {
	return strconv.Itoa(n) + " " + Pluralize(n, singular, plural)
}
