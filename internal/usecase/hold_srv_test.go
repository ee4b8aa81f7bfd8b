package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type holdWorld struct {
	repo    *repository.Repository
	st      *fakeStore
	holds   HoldService
	avail   AvailabilityService
	bundles BundleService
	haircut *entity.Service
	anna    *entity.Resource
}

// newHoldWorld seeds a salon with one stylist working 09:00-18:00 every
// day and a 60-minute haircut at 1500.
func newHoldWorld() *holdWorld {
	repo, st := newFakeRepo()
	log := zap.NewNop()

	haircut := makeService("Haircut", "haircut", 60, 1500)
	anna := makeHuman("Anna", "haircut")
	st.services[haircut.ID] = haircut
	st.resources[anna.ID] = anna

	bundles := NewBundleService(repo, log)
	plan := newPlanner(repo, 30)
	notifier := NewLogNotifier(log)

	return &holdWorld{
		repo:    repo,
		st:      st,
		holds:   NewHoldService(repo, bundles, plan, nil, notifier, 90, log),
		avail:   NewAvailabilityService(repo, bundles, plan, nil, log),
		bundles: bundles,
		haircut: haircut,
		anna:    anna,
	}
}

func holdRequest(subjectID uuid.UUID, clock, key string) *request.CreateHoldRequest {
	return &request.CreateHoldRequest{
		SubjectID:      subjectID.String(),
		Date:           "2027-05-03",
		StartTime:      clock,
		IdempotencyKey: key,
	}
}

func TestCreateHold(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reserves the requested slot", func(t *testing.T) {
		w := newHoldWorld()

		hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-create-1"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if hold.State != string(entity.HoldStatePending) {
			t.Fatalf("expected pending state, got %s", hold.State)
		}
		if hold.DurationMinutes != 60 || hold.Price != 1500 {
			t.Fatalf("expected 60 minutes at 1500, got %d at %d", hold.DurationMinutes, hold.Price)
		}
		if len(hold.Resources) != 1 || hold.Resources[0].ResourceID != w.anna.ID.String() {
			t.Fatalf("expected one window on the stylist, got %+v", hold.Resources)
		}
		if !hold.ExpiresAt.After(time.Now()) {
			t.Fatalf("expected a future expiry, got %v", hold.ExpiresAt)
		}
	})

	t.Run("rejects an overlapping slot", func(t *testing.T) {
		w := newHoldWorld()

		if _, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-a")); err != nil {
			t.Fatalf("first hold: %v", err)
		}

		// 10:30 overlaps the 10:00-11:00 hold on the only stylist.
		_, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:30", "key-b"))
		if !errors.Is(err, repository.ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable, got %v", err)
		}
	})

	t.Run("replays the same idempotency key", func(t *testing.T) {
		w := newHoldWorld()

		first, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-replay"))
		if err != nil {
			t.Fatalf("first hold: %v", err)
		}

		second, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-replay"))
		if err != nil {
			t.Fatalf("replay: %v", err)
		}
		if second.ID != first.ID {
			t.Fatalf("expected the original hold back, got %s and %s", first.ID, second.ID)
		}
		if len(w.st.holds) != 1 {
			t.Fatalf("expected a single reservation, got %d", len(w.st.holds))
		}
	})

	t.Run("rejects an off-grid start", func(t *testing.T) {
		w := newHoldWorld()

		_, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:15", "key-offgrid"))
		if !errors.Is(err, repository.ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable for an off-grid start, got %v", err)
		}
	})

	t.Run("rejects a start in the past", func(t *testing.T) {
		w := newHoldWorld()

		req := holdRequest(w.haircut.ID, "10:00", "key-past")
		req.Date = "2020-01-06"

		_, err := w.holds.CreateHold(ctx, req)
		if !errors.Is(err, repository.ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable for a past start, got %v", err)
		}
		if len(w.st.holds) != 0 {
			t.Fatalf("expected no reservation for a past start, got %d", len(w.st.holds))
		}
	})

	t.Run("exactly one of two contenders wins a slot", func(t *testing.T) {
		w := newHoldWorld()

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := "contender-a"
				if i == 1 {
					key = "contender-b"
				}
				_, results[i] = w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "11:00", key))
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range results {
			if err == nil {
				winners++
			} else if !errors.Is(err, repository.ErrSlotUnavailable) {
				t.Fatalf("loser should see ErrSlotUnavailable, got %v", err)
			}
		}
		if winners != 1 {
			t.Fatalf("expected exactly one winner, got %d", winners)
		}
	})
}

func TestConfirmHold(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("freezes the price and duration snapshot", func(t *testing.T) {
		w := newHoldWorld()

		hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-confirm"))
		if err != nil {
			t.Fatalf("create hold: %v", err)
		}

		// A price hike between hold and confirm must not leak in.
		w.haircut.Price = 2000

		booking, err := w.holds.ConfirmHold(ctx, hold.ID)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if booking.Price != 1500 || booking.DurationMinutes != 60 {
			t.Fatalf("expected frozen 1500/60, got %d/%d", booking.Price, booking.DurationMinutes)
		}
		if booking.Status != string(entity.BookingStatusConfirmed) {
			t.Fatalf("expected confirmed, got %s", booking.Status)
		}
		if booking.OrderID == "" {
			t.Fatalf("expected an order ID")
		}
	})

	t.Run("confirming twice consumes the hold", func(t *testing.T) {
		w := newHoldWorld()

		hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-twice"))
		if err != nil {
			t.Fatalf("create hold: %v", err)
		}
		if _, err := w.holds.ConfirmHold(ctx, hold.ID); err != nil {
			t.Fatalf("first confirm: %v", err)
		}

		_, err = w.holds.ConfirmHold(ctx, hold.ID)
		if !errors.Is(err, repository.ErrHoldNotFound) {
			t.Fatalf("expected ErrHoldNotFound on a consumed hold, got %v", err)
		}
	})

	t.Run("expired hold cannot be confirmed and frees its window", func(t *testing.T) {
		w := newHoldWorld()

		hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-expired"))
		if err != nil {
			t.Fatalf("create hold: %v", err)
		}

		w.st.mu.Lock()
		w.st.holds[uuid.MustParse(hold.ID)].ExpiresAt = time.Now().Add(-time.Second)
		w.st.mu.Unlock()

		_, err = w.holds.ConfirmHold(ctx, hold.ID)
		if !errors.Is(err, repository.ErrHoldExpired) {
			t.Fatalf("expected ErrHoldExpired, got %v", err)
		}

		day := time.Date(2027, 5, 3, 0, 0, 0, 0, time.UTC)
		free, err := w.repo.Ledger.IsFree(ctx, w.anna.ID, day.Add(10*time.Hour), day.Add(11*time.Hour), time.Now())
		if err != nil {
			t.Fatalf("IsFree: %v", err)
		}
		if !free {
			t.Fatalf("expected the expired hold's window to read free")
		}
	})
}

func TestReleaseHold(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("frees the slot for a new reservation", func(t *testing.T) {
		w := newHoldWorld()

		hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-release"))
		if err != nil {
			t.Fatalf("create hold: %v", err)
		}
		if err := w.holds.ReleaseHold(ctx, hold.ID); err != nil {
			t.Fatalf("release: %v", err)
		}

		if _, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-after-release")); err != nil {
			t.Fatalf("expected the slot to be reservable again, got %v", err)
		}
	})

	t.Run("releasing twice is a no-op", func(t *testing.T) {
		w := newHoldWorld()

		hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "key-double-release"))
		if err != nil {
			t.Fatalf("create hold: %v", err)
		}
		if err := w.holds.ReleaseHold(ctx, hold.ID); err != nil {
			t.Fatalf("first release: %v", err)
		}
		if err := w.holds.ReleaseHold(ctx, hold.ID); err != nil {
			t.Fatalf("second release should be a no-op, got %v", err)
		}
	})
}

// TestBookingFlow walks the whole customer path: check availability,
// hold a slot, watch a competitor bounce off it, confirm, and see the
// slot disappear from availability.
func TestBookingFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newHoldWorld()

	before, err := w.avail.Resolve(ctx, w.haircut.ID.String(), "2027-05-03")
	if err != nil {
		t.Fatalf("availability before: %v", err)
	}
	ten := time.Date(2027, 5, 3, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if !containsString(before.StartTimes, ten) {
		t.Fatalf("expected 10:00 to be available before the hold")
	}

	hold, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:00", "anna-visit-1"))
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}

	if _, err := w.holds.CreateHold(ctx, holdRequest(w.haircut.ID, "10:30", "rival-visit-1")); !errors.Is(err, repository.ErrSlotUnavailable) {
		t.Fatalf("expected the overlapping rival hold to be rejected, got %v", err)
	}

	booking, err := w.holds.ConfirmHold(ctx, hold.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if booking.Price != 1500 || booking.DurationMinutes != 60 {
		t.Fatalf("expected booking snapshot 1500/60, got %d/%d", booking.Price, booking.DurationMinutes)
	}

	after, err := w.avail.Resolve(ctx, w.haircut.ID.String(), "2027-05-03")
	if err != nil {
		t.Fatalf("availability after: %v", err)
	}
	if containsString(after.StartTimes, ten) {
		t.Fatalf("expected 10:00 to be gone after confirmation")
	}
	if len(after.StartTimes) != len(before.StartTimes)-3 {
		t.Fatalf("expected 3 starts consumed by the 60-minute booking, got %d -> %d", len(before.StartTimes), len(after.StartTimes))
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
