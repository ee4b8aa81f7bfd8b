package usecase

import (
	"context"
	"errors"
	"testing"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"

	"go.uber.org/zap"
)

func newBookingWorld() (*holdWorld, BookingService) {
	w := newHoldWorld()
	return w, NewBookingService(w.repo, nil, NewLogNotifier(zap.NewNop()), zap.NewNop())
}

func confirmedBooking(t *testing.T, w *holdWorld, clock, key string) *response.BookingResponse {
	t.Helper()
	ctx := context.Background()

	hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, clock, key))
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}
	booking, err := w.holds.ConfirmHold(ctx, hold.ID)
	if err != nil {
		t.Fatalf("confirm hold: %v", err)
	}
	return booking
}

func TestCancelBooking(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("cancel frees the window", func(t *testing.T) {
		w, bookings := newBookingWorld()
		booking := confirmedBooking(t, w, "10:00", "key-cancel")

		cancelled, err := bookings.CancelBooking(ctx, booking.ID, &request.CancelBookingRequest{Reason: "customer request"})
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if cancelled.Status != string(entity.BookingStatusCancelled) {
			t.Fatalf("expected cancelled, got %s", cancelled.Status)
		}
		if cancelled.CancelReason == nil || *cancelled.CancelReason != "customer request" {
			t.Fatalf("expected the cancel reason to be recorded")
		}

		if _, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-after-cancel")); err != nil {
			t.Fatalf("expected the window to be free after cancellation, got %v", err)
		}
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		w, bookings := newBookingWorld()
		booking := confirmedBooking(t, w, "10:00", "key-cancel-twice")

		if _, err := bookings.CancelBooking(ctx, booking.ID, &request.CancelBookingRequest{Reason: "first"}); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		if _, err := bookings.CancelBooking(ctx, booking.ID, &request.CancelBookingRequest{Reason: "second"}); err == nil {
			t.Fatalf("expected an error cancelling a cancelled booking")
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, bookings := newBookingWorld()

		_, err := bookings.CancelBooking(ctx, "3b65e3cd-8f52-4a53-bb2f-0f6e3e4b41a0", &request.CancelBookingRequest{Reason: "whatever"})
		if !errors.Is(err, repository.ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestRescheduleBooking(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("moves the booking onto the new hold", func(t *testing.T) {
		w, bookings := newBookingWorld()
		original := confirmedBooking(t, w, "10:00", "key-reschedule")

		newHold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "14:00", "key-reschedule-target"))
		if err != nil {
			t.Fatalf("create replacement hold: %v", err)
		}

		moved, err := bookings.RescheduleBooking(ctx, original.ID, &request.RescheduleBookingRequest{HoldID: newHold.ID})
		if err != nil {
			t.Fatalf("reschedule: %v", err)
		}
		if moved.ID == original.ID {
			t.Fatalf("expected a new booking, got the original")
		}
		if moved.StartTime.Hour() != 14 {
			t.Fatalf("expected the 14:00 slot, got %v", moved.StartTime)
		}

		// The original window must be reservable again.
		if _, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-after-reschedule")); err != nil {
			t.Fatalf("expected the old window to be free, got %v", err)
		}
	})

	t.Run("rejects a hold for a different subject", func(t *testing.T) {
		w, bookings := newBookingWorld()
		original := confirmedBooking(t, w, "10:00", "key-subject-mismatch")

		other := makeService("Beard trim", "haircut", 30, 700)
		w.st.services[other.ID] = other

		otherHold, err := w.holds.CreateHold(ctx, holdRequest(other.ID, "15:00", "key-other-subject"))
		if err != nil {
			t.Fatalf("create other hold: %v", err)
		}

		if _, err := bookings.RescheduleBooking(ctx, original.ID, &request.RescheduleBookingRequest{HoldID: otherHold.ID}); err == nil {
			t.Fatalf("expected an error for a subject mismatch")
		}
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("marks a confirmed booking completed", func(t *testing.T) {
		w, bookings := newBookingWorld()
		booking := confirmedBooking(t, w, "10:00", "key-complete")

		updated, err := bookings.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: "completed"})
		if err != nil {
			t.Fatalf("update status: %v", err)
		}
		if updated.Status != string(entity.BookingStatusCompleted) {
			t.Fatalf("expected completed, got %s", updated.Status)
		}
	})

	t.Run("rejects a transition from cancelled", func(t *testing.T) {
		w, bookings := newBookingWorld()
		booking := confirmedBooking(t, w, "10:00", "key-bad-transition")

		if _, err := bookings.CancelBooking(ctx, booking.ID, &request.CancelBookingRequest{Reason: "gone"}); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if _, err := bookings.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: "no_show"}); err == nil {
			t.Fatalf("expected an error moving a cancelled booking to no_show")
		}
	})
}
