package usecase

import (
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
)

func resourceWithHours(weekday, open, close int) *entity.Resource {
	return &entity.Resource{
		Base: entity.Base{ID: uuid.New()},
		Name: "Test resource",
		Type: entity.ResourceTypeHuman,
		Hours: []entity.WorkingHours{
			{Weekday: weekday, OpenMinutes: open, CloseMinutes: close},
		},
	}
}

func TestSlotStarts(t *testing.T) {
	t.Parallel()

	// A Monday
	day := time.Date(2027, 5, 3, 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())

	t.Run("full grid over working hours", func(t *testing.T) {
		// 09:00-18:00, 30-minute slots
		res := resourceWithHours(weekday, 9*60, 18*60)
		starts := slotStarts(res, day, 30)

		if len(starts) != 18 {
			t.Fatalf("expected 18 slots, got %d", len(starts))
		}
		if !starts[0].Equal(day.Add(9 * time.Hour)) {
			t.Fatalf("expected first slot 09:00, got %v", starts[0])
		}
		if !starts[len(starts)-1].Equal(day.Add(17*time.Hour + 30*time.Minute)) {
			t.Fatalf("expected last slot 17:30, got %v", starts[len(starts)-1])
		}
		for i := 1; i < len(starts); i++ {
			if !starts[i-1].Before(starts[i]) {
				t.Fatalf("slots not strictly increasing at index %d", i)
			}
		}
	})

	t.Run("truncates trailing partial slot", func(t *testing.T) {
		// 09:00-17:45 with 30-minute slots: last full slot ends 17:30
		res := resourceWithHours(weekday, 9*60, 17*60+45)
		starts := slotStarts(res, day, 30)

		if len(starts) != 17 {
			t.Fatalf("expected 17 slots, got %d", len(starts))
		}
		last := starts[len(starts)-1].Add(30 * time.Minute)
		if last.After(day.Add(17*time.Hour + 45*time.Minute)) {
			t.Fatalf("last slot overruns closing time: ends %v", last)
		}
	})

	t.Run("empty on a day off", func(t *testing.T) {
		res := resourceWithHours(weekday, 0, 0)
		if starts := slotStarts(res, day, 30); len(starts) != 0 {
			t.Fatalf("expected no slots on a day off, got %d", len(starts))
		}
	})

	t.Run("empty on a weekday with no template row", func(t *testing.T) {
		res := resourceWithHours((weekday+1)%7, 9*60, 18*60)
		if starts := slotStarts(res, day, 30); len(starts) != 0 {
			t.Fatalf("expected no slots without a template row, got %d", len(starts))
		}
	})
}

func TestWindowWithinHours(t *testing.T) {
	t.Parallel()

	day := time.Date(2027, 5, 3, 0, 0, 0, 0, time.UTC)
	res := resourceWithHours(int(day.Weekday()), 9*60, 18*60)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside hours", day.Add(10 * time.Hour), day.Add(11 * time.Hour), true},
		{"flush against close", day.Add(17 * time.Hour), day.Add(18 * time.Hour), true},
		{"before open", day.Add(8 * time.Hour), day.Add(9 * time.Hour), false},
		{"spills past close", day.Add(17*time.Hour + 30*time.Minute), day.Add(18*time.Hour + 30*time.Minute), false},
		{"zero-length window", day.Add(10 * time.Hour), day.Add(10 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := windowWithinHours(res, tc.start, tc.end); got != tc.want {
				t.Fatalf("windowWithinHours(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
