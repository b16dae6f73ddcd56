package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// sizeUnits maps the accepted size suffixes to their binary byte multipliers.
var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// timeLayouts holds the accepted layouts for [ParseTime], tried in order.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseSize parses a human size expression into a byte count. Expressions are
// plain byte numbers or carry a binary unit suffix (B, KB, MB, GB, TB; 1 KB is
// 1024 bytes), matched case-insensitively. Fractional values round down.
func ParseSize(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("(filter) %w: %w: empty expression", ErrInvalidCriteria, ErrInvalidSize)
	}

	cut := len(s)
	for cut > 0 && !isDigit(s[cut-1]) && s[cut-1] != '.' {
		cut--
	}

	num := strings.TrimSpace(s[:cut])
	unit := strings.ToUpper(strings.TrimSpace(s[cut:]))

	mult, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("(filter) %w: %w: unknown unit %q", ErrInvalidCriteria, ErrInvalidSize, unit)
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("(filter) %w: %w: %q", ErrInvalidCriteria, ErrInvalidSize, raw)
	}

	return int64(value * float64(mult)), nil
}

// ParseTime parses a time expression against the accepted layouts, in the
// local time zone unless the expression carries an explicit offset.
func ParseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("(filter) %w: %w: %q", ErrInvalidCriteria, ErrInvalidTime, raw)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
