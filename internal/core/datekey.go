package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateKey identifies one local calendar day as "YYYY-MM-DD". The format is
// zero-padded, so lexicographic order equals chronological order.
type DateKey string

var ErrInvalidDateKey = errors.New("invalid date key")

// LocalDateKey derives the key from the local calendar date of t. It reads
// the year/month/day components directly instead of reformatting through a
// UTC-normalized date, which would shift the day near midnight.
func LocalDateKey(t time.Time) DateKey {
	year, month, day := t.Date()
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// Parse decomposes the key into its integer components without building a
// time.Time.
func (k DateKey) Parse() (year, month, day int, err error) {
	s := string(k)
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	year, err = strconv.Atoi(s[0:4])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	month, err = strconv.Atoi(s[5:7])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	day, err = strconv.Atoi(s[8:10])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return year, month, day, nil
}

// Validate reports whether the key is a well-formed YYYY-MM-DD string.
func (k DateKey) Validate() error {
	_, _, _, err := k.Parse()
	return err
}

// Display renders the key as "dd/mm/yyyy" by reordering the fields. No date
// object is reconstructed, so no timezone reinterpretation can occur.
func (k DateKey) Display() string {
	s := string(k)
	if len(s) != 10 {
		return s
	}
	return s[8:10] + "/" + s[5:7] + "/" + s[0:4]
}

// LocalDate reconstructs a comparable local date strictly from the three
// integer components, for inclusive range comparisons.
func (k DateKey) LocalDate() (time.Time, error) {
	year, month, day, err := k.Parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}
