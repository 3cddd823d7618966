package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ms-booking/internal/booking"
	"ms-booking/internal/models"
)

func TestApprove(t *testing.T) {
	next, err := booking.Approve(models.StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusApproved, next)

	for _, from := range []models.BookingStatus{
		models.StatusApproved, models.StatusRejected, models.StatusCancelled, models.StatusCompleted,
	} {
		_, err := booking.Approve(from)
		assert.Error(t, err, "approve from %s should fail", from)

		var transitionErr *booking.IllegalTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	}
}

func TestReject(t *testing.T) {
	next, err := booking.Reject(models.StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, next)

	_, err = booking.Reject(models.StatusApproved)
	assert.Error(t, err)
}

func TestCancelByOwner(t *testing.T) {
	next, err := booking.CancelByOwner(models.StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, next)

	// Already cancelled gets its own message
	_, err = booking.CancelByOwner(models.StatusCancelled)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already cancelled")

	_, err = booking.CancelByOwner(models.StatusApproved)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "only pending bookings can be cancelled")
}

func TestSetByOperator(t *testing.T) {
	// Unrestricted moves between non-pending states
	next, err := booking.SetByOperator(models.StatusApproved, models.StatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, next)

	next, err = booking.SetByOperator(models.StatusApproved, models.StatusCancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, next)

	// Pending may move to approved or rejected
	_, err = booking.SetByOperator(models.StatusPending, models.StatusApproved)
	assert.NoError(t, err)
	_, err = booking.SetByOperator(models.StatusPending, models.StatusRejected)
	assert.NoError(t, err)

	// But not straight to cancelled or completed
	_, err = booking.SetByOperator(models.StatusPending, models.StatusCancelled)
	assert.Error(t, err)
	_, err = booking.SetByOperator(models.StatusPending, models.StatusCompleted)
	assert.Error(t, err)

	// Unknown target status
	_, err = booking.SetByOperator(models.StatusPending, models.BookingStatus("SHIPPED"))
	assert.Error(t, err)
}

func TestCanDelete(t *testing.T) {
	assert.NoError(t, booking.CanDelete(models.StatusCancelled))

	for _, from := range []models.BookingStatus{
		models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusCompleted,
	} {
		assert.Error(t, booking.CanDelete(from), "delete from %s should fail", from)
	}
}
