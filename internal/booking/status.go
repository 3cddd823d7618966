package booking

import (
	"fmt"

	"ms-booking/internal/models"
)

// Status transition rules. Bookings start in PENDING. Approve, reject and the
// owner's cancel are only legal from PENDING. The operator's generic
// set-status path carries its own guard: it refuses to move a PENDING booking
// straight to CANCELLED or COMPLETED, but is otherwise unrestricted. The
// owner-cancel and set-status paths therefore disagree about
// PENDING -> CANCELLED; both rule sets are kept as-is.

// Approve returns the status an operator approval moves a booking into.
func Approve(current models.BookingStatus) (models.BookingStatus, error) {
	if current != models.StatusPending {
		return "", &IllegalTransitionError{
			From:   current,
			To:     models.StatusApproved,
			Reason: "only pending bookings can be approved",
		}
	}
	return models.StatusApproved, nil
}

// Reject returns the status an operator rejection moves a booking into.
func Reject(current models.BookingStatus) (models.BookingStatus, error) {
	if current != models.StatusPending {
		return "", &IllegalTransitionError{
			From:   current,
			To:     models.StatusRejected,
			Reason: "only pending bookings can be rejected",
		}
	}
	return models.StatusRejected, nil
}

// CancelByOwner validates the owning user's cancel request. Cancelling an
// already-cancelled booking is its own error rather than a silent success.
func CancelByOwner(current models.BookingStatus) (models.BookingStatus, error) {
	if current == models.StatusCancelled {
		return "", &IllegalTransitionError{
			From:   current,
			To:     models.StatusCancelled,
			Reason: "booking is already cancelled",
		}
	}
	if current != models.StatusPending {
		return "", &IllegalTransitionError{
			From:   current,
			To:     models.StatusCancelled,
			Reason: "only pending bookings can be cancelled",
		}
	}
	return models.StatusCancelled, nil
}

// SetByOperator validates the generic administrative set-status path.
func SetByOperator(current, target models.BookingStatus) (models.BookingStatus, error) {
	if _, ok := models.ParseStatus(string(target)); !ok {
		return "", &IllegalTransitionError{
			From:   current,
			To:     target,
			Reason: fmt.Sprintf("unknown status %q", string(target)),
		}
	}
	if current == models.StatusPending && (target == models.StatusCancelled || target == models.StatusCompleted) {
		return "", &IllegalTransitionError{
			From:   current,
			To:     target,
			Reason: fmt.Sprintf("pending bookings cannot be set to %s directly", target),
		}
	}
	return target, nil
}

// CanDelete reports whether a booking may be permanently removed.
func CanDelete(current models.BookingStatus) error {
	if current != models.StatusCancelled {
		return &IllegalTransitionError{
			From:   current,
			Reason: "only cancelled bookings can be deleted",
		}
	}
	return nil
}
