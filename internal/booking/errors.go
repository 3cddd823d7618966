package booking

import (
	"fmt"
	"strings"

	"ms-booking/internal/models"
)

// ValidationError rejects a single submitted field. The field name is kept so
// callers can re-display the error next to the offending input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every field rejection found in one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ForbiddenError marks a caller that is not the booking's owner. It is kept
// distinct from NotFoundError internally even where the HTTP layer chooses to
// present them alike.
type ForbiddenError struct {
	Resource string
	ID       string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("caller does not own %s %s", e.Resource, e.ID)
}

// IllegalTransitionError reports a status precondition that was not met,
// naming the specific rule violated.
type IllegalTransitionError struct {
	From   models.BookingStatus
	To     models.BookingStatus
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	return e.Reason
}
