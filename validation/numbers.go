package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// IsBlank reports whether a raw value is empty or whitespace only
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// IsNumber reports whether raw parses as a decimal number
func IsNumber(raw string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(raw))
	return err == nil
}

// ParseInt parses raw as a whole number. Values such as "3.0" are accepted.
func ParseInt(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || d.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, false
	}
	return d.IntPart(), true
}

// ParseDecimal parses raw as an arbitrary precision decimal
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseBool accepts the usual boolean spellings ("true", "f", "1", ...)
func ParseBool(raw string) (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return b, true
}

// integer checks that raw is a whole number, recording the first broken rule
func integer(errs *Errors, field, raw string) (int64, bool) {
	if IsBlank(raw) || !IsNumber(raw) {
		errs.Add(field, MsgNotANumber)
		return 0, false
	}
	n, ok := ParseInt(raw)
	if !ok {
		errs.Add(field, MsgNotAnInteger)
		return 0, false
	}
	return n, true
}
