package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Rational is an exact frame rate such as 30000/1001.
type Rational struct {
	Num int64
	Den int64
}

// ParseRational reads ffprobe's "num/den" notation. A bare integer is
// accepted as num/1.
func ParseRational(value string) (Rational, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Rational{}, nil
	}
	numPart, denPart, found := strings.Cut(value, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numPart), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parse rational %q: %w", value, err)
	}
	if !found {
		return Rational{Num: num, Den: 1}, nil
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denPart), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parse rational %q: %w", value, err)
	}
	return Rational{Num: num, Den: den}, nil
}

// Whole returns n/1.
func Whole(n int64) Rational {
	return Rational{Num: n, Den: 1}
}

// Float returns num/den, or 0 when the denominator is zero.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Known reports whether the rate is a usable positive value.
func (r Rational) Known() bool {
	return r.Den != 0 && r.Num > 0
}

// String renders the rate the way ffmpeg filters accept it.
func (r Rational) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
