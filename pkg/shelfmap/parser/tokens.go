// Package parser turns spreadsheet and CSV content into location data.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches digits optionally followed by a '.' or ',' decimal part.
var numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ExtractFirstNumber returns the first number-like token in text, verbatim.
func ExtractFirstNumber(text string) (string, bool) {
	token := numberPattern.FindString(text)
	if token == "" {
		return "", false
	}
	return token, true
}

// ToFloat parses token as a float, accepting ',' as the decimal separator.
// Non-finite results are rejected.
func ToFloat(token string) (float64, bool) {
	token = strings.ReplaceAll(strings.TrimSpace(token), ",", ".")
	if token == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt parses token as a float and truncates it, so "3.0" yields 3.
func ToInt(token string) (int, bool) {
	f, ok := ToFloat(token)
	if !ok {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// FirstFloat extracts the first number in text and parses it.
func FirstFloat(text string) (float64, bool) {
	token, ok := ExtractFirstNumber(text)
	if !ok {
		return 0, false
	}
	return ToFloat(token)
}
