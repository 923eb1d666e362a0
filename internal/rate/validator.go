package rate

import (
	"errors"
	"regexp"
	"strconv"
)

const (
	MinHistoryDays     = 1
	MaxHistoryDays     = 365
	DefaultHistoryDays = 30
)

var (
	ErrInvalidCurrencyCode = errors.New("invalid currency code format")
	ErrInvalidDays         = errors.New("days must be between 1 and 365")
	ErrInvalidAggregate    = errors.New(`invalid aggregate value, only "week" is supported`)
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCode checks an already upper-cased currency code.
func ValidateCode(code string) error {
	if !currencyCodeRe.MatchString(code) {
		return ErrInvalidCurrencyCode
	}
	return nil
}

// ParseDays converts the raw days query parameter; absent means the
// default window.
func ParseDays(raw string) (int, error) {
	if raw == "" {
		return DefaultHistoryDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < MinHistoryDays || days > MaxHistoryDays {
		return 0, ErrInvalidDays
	}
	return days, nil
}

// ParseAggregate accepts either an absent aggregate or AggregateWeek.
func ParseAggregate(raw string) (string, error) {
	if raw == "" || raw == AggregateWeek {
		return raw, nil
	}
	return "", ErrInvalidAggregate
}
