package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidWeek  = errors.New("week number must be a positive integer")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the loose something@something.tld shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ParseWeek converts a raw week value into a positive integer.
func ParseWeek(raw string) (int, error) {
	week, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidWeek
	}
	if err := ValidateWeek(week); err != nil {
		return 0, err
	}
	return week, nil
}

func ValidateWeek(week int) error {
	if week <= 0 {
		return ErrInvalidWeek
	}
	return nil
}
