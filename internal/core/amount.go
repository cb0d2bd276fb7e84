// Package core holds the aggregation and reporting engine: date keying,
// the record model, goal comparison and report building. Everything here is
// a pure function of its inputs; the current instant is always passed in.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a form value to a non-negative amount. It accepts
// both dot (12.5) and comma (12,5) decimal separators. The empty string
// parses to zero, matching an untouched form field.
//
// Examples:
//
//	ParseAmount("")     -> 0, nil
//	ParseAmount("25")   -> 25, nil
//	ParseAmount("2,5")  -> 2.5, nil
//	ParseAmount("-3")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseCount is ParseAmount restricted to whole numbers, for repetition
// counts.
func ParseCount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return float64(v), nil
}
