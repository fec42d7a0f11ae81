package booking

import (
	"fmt"

	"github.com/vetdesk/booking-api/internal/model"
)

// ErrInvalidTransition is wrapped around every rejected status change.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

// allowedTransitions is the booking lifecycle. Completed, cancelled and
// no_show are terminal; a confirmed booking may be reverted to pending by an
// administrator, either explicitly or through a reschedule.
var allowedTransitions = map[model.BookingStatus]map[model.BookingStatus]bool{
	model.BookingStatusPending: {
		model.BookingStatusConfirmed: true,
		model.BookingStatusCancelled: true,
	},
	model.BookingStatusConfirmed: {
		model.BookingStatusCompleted: true,
		model.BookingStatusNoShow:    true,
		model.BookingStatusCancelled: true,
		model.BookingStatusPending:   true,
	},
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to model.BookingStatus) bool {
	return allowedTransitions[from][to]
}

func checkTransition(from, to model.BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Reschedule is the explicit transition behind a date/time change: moving a
// booking always returns it to pending for re-approval, it is never a pure
// field update.
func Reschedule(b *model.Booking, newDate, newTime string) error {
	if b.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidTransition, b.Status)
	}

	b.BookingDate = newDate
	b.BookingTime = newTime
	b.Status = model.BookingStatusPending
	return nil
}
