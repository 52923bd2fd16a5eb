package utils

import "strconv"

// FormatScore renders a similarity score without trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
