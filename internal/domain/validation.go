package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrInvalidNoteSize  = errors.New("note exceeds size limit")
	ErrInvalidStatsTime = errors.New("invalid month or year")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
	MaxNoteLength = 2048
	MaxAmount     = "1000000000000" // 1 trillion

	MaxPageSize     = 1000
	DefaultPageSize = 50
)

// ValidateName validates a display name (account, card or category).
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateAmount validates a transaction amount. Zero and negative amounts
// are rejected at this boundary so the engine never sees them.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateNote validates an optional transaction note.
func ValidateNote(note string) error {
	if len(note) > MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d bytes", ErrInvalidNoteSize, MaxNoteLength)
	}

	return nil
}

// ValidateStatsPeriod validates a month (1-12) and year for statistics
// queries. Month 0 with a valid year is allowed for yearly queries.
func ValidateStatsPeriod(month, year int) error {
	if month < 0 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidStatsTime, month)
	}

	if year < 1970 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidStatsTime, year)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
