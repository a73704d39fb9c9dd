// Package validation checks decoded request bodies and returns per-field messages.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
)

// Error collects per-field validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(str string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(str))
}

// ValidateUUID reports ErrInvalidUUID for anything uuid.Parse rejects.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

func asError(errors map[string]string) error {
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
