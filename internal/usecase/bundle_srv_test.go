package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func makeService(name, skill string, durationMinutes int, price int64) *entity.Service {
	return &entity.Service{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:            name,
		Skill:           skill,
		DurationMinutes: durationMinutes,
		Price:           price,
		ResourceTypes:   []entity.ResourceType{entity.ResourceTypeHuman},
		Active:          true,
	}
}

func makeHuman(name string, skills ...string) *entity.Resource {
	hours := make([]entity.WorkingHours, 7)
	for wd := 0; wd < 7; wd++ {
		hours[wd] = entity.WorkingHours{Weekday: wd, OpenMinutes: 9 * 60, CloseMinutes: 18 * 60}
	}
	return &entity.Resource{
		Base:   entity.Base{ID: uuid.New()},
		Name:   name,
		Type:   entity.ResourceTypeHuman,
		Skills: skills,
		Hours:  hours,
	}
}

func makeBundle(serviceIDs []uuid.UUID, concurrency entity.Concurrency, policy entity.HumanPolicy, mode entity.PriceMode, discount int) *entity.Bundle {
	return &entity.Bundle{
		Base:            entity.Base{ID: uuid.New()},
		Name:            "Test bundle",
		ServiceIDs:      serviceIDs,
		Concurrency:     concurrency,
		HumanPolicy:     policy,
		PriceMode:       mode,
		DiscountPercent: discount,
		Active:          true,
	}
}

func TestRoundHalfUp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sum      int64
		discount int
		want     int64
	}{
		{4500, 15, 3825},
		{4500, 0, 4500},
		{101, 50, 51},  // 50.5 rounds up
		{333, 50, 167}, // 166.5 rounds up
		{100, 100, 0},
	}

	for _, tc := range cases {
		if got := roundHalfUp(tc.sum, tc.discount); got != tc.want {
			t.Errorf("roundHalfUp(%d, %d) = %d, want %d", tc.sum, tc.discount, got, tc.want)
		}
	}
}

func TestBundleCompose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func() (*fakeStore, BundleService) {
		repo, st := newFakeRepo()
		return st, NewBundleService(repo, zap.NewNop())
	}

	color := makeService("Color", "color", 60, 1000)
	cut := makeService("Cut", "cut", 30, 500)

	seed := func(st *fakeStore, services ...*entity.Service) {
		for _, svc := range services {
			st.services[svc.ID] = svc
		}
	}
	seedHumans := func(st *fakeStore, humans ...*entity.Resource) {
		for _, h := range humans {
			st.resources[h.ID] = h
		}
	}

	t.Run("serial sums durations and offsets members", func(t *testing.T) {
		st, bundles := setup()
		seed(st, color, cut)
		seedHumans(st, makeHuman("Anna", "color", "cut"))

		bundle := makeBundle([]uuid.UUID{color.ID, cut.ID}, entity.ConcurrencySerial, entity.HumanPolicyAny, entity.PriceModeSum, 0)

		comp, err := bundles.Compose(ctx, bundle)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if comp.DurationMinutes != 90 {
			t.Fatalf("expected duration 90, got %d", comp.DurationMinutes)
		}
		if comp.Price != 1500 {
			t.Fatalf("expected price 1500, got %d", comp.Price)
		}
		if comp.Items[0].OffsetMinutes != 0 || comp.Items[1].OffsetMinutes != 60 {
			t.Fatalf("expected offsets 0 and 60, got %d and %d", comp.Items[0].OffsetMinutes, comp.Items[1].OffsetMinutes)
		}
	})

	t.Run("parallel takes the longest member", func(t *testing.T) {
		st, bundles := setup()
		seed(st, color, cut)

		bundle := makeBundle([]uuid.UUID{color.ID, cut.ID}, entity.ConcurrencyParallel, entity.HumanPolicyAny, entity.PriceModeSum, 0)

		comp, err := bundles.Compose(ctx, bundle)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if comp.DurationMinutes != 60 {
			t.Fatalf("expected duration 60, got %d", comp.DurationMinutes)
		}
		if comp.Price != 1500 {
			t.Fatalf("expected price 1500, got %d", comp.Price)
		}
		if comp.Items[0].OffsetMinutes != 0 || comp.Items[1].OffsetMinutes != 0 {
			t.Fatalf("expected zero offsets for parallel members")
		}
	})

	t.Run("discount price rounds half up", func(t *testing.T) {
		st, bundles := setup()
		a := makeService("A", "color", 60, 3000)
		b := makeService("B", "cut", 30, 1500)
		seed(st, a, b)

		bundle := makeBundle([]uuid.UUID{a.ID, b.ID}, entity.ConcurrencySerial, entity.HumanPolicyAny, entity.PriceModeDiscount, 15)

		comp, err := bundles.Compose(ctx, bundle)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if comp.Price != 3825 {
			t.Fatalf("expected price 3825, got %d", comp.Price)
		}
	})

	t.Run("empty bundle is rejected", func(t *testing.T) {
		_, bundles := setup()
		bundle := makeBundle(nil, entity.ConcurrencySerial, entity.HumanPolicyAny, entity.PriceModeSum, 0)

		_, err := bundles.Compose(ctx, bundle)
		if !errors.Is(err, ErrEmptyBundle) {
			t.Fatalf("expected ErrEmptyBundle, got %v", err)
		}
	})

	t.Run("unknown member is rejected", func(t *testing.T) {
		st, bundles := setup()
		seed(st, color)
		bundle := makeBundle([]uuid.UUID{color.ID, uuid.New()}, entity.ConcurrencySerial, entity.HumanPolicyAny, entity.PriceModeSum, 0)

		_, err := bundles.Compose(ctx, bundle)
		if !errors.Is(err, ErrUnknownService) {
			t.Fatalf("expected ErrUnknownService, got %v", err)
		}
	})

	t.Run("inactive member is rejected", func(t *testing.T) {
		st, bundles := setup()
		retired := makeService("Retired", "color", 60, 1000)
		retired.Active = false
		seed(st, retired)
		bundle := makeBundle([]uuid.UUID{retired.ID}, entity.ConcurrencySerial, entity.HumanPolicyAny, entity.PriceModeSum, 0)

		_, err := bundles.Compose(ctx, bundle)
		if !errors.Is(err, ErrUnknownService) {
			t.Fatalf("expected ErrUnknownService, got %v", err)
		}
	})

	t.Run("same human with no covering staff is rejected", func(t *testing.T) {
		st, bundles := setup()
		seed(st, color, cut)
		// Two specialists, neither covers both skills.
		seedHumans(st, makeHuman("Colorist", "color"), makeHuman("Barber", "cut"))

		bundle := makeBundle([]uuid.UUID{color.ID, cut.ID}, entity.ConcurrencySerial, entity.HumanPolicySame, entity.PriceModeSum, 0)

		_, err := bundles.Compose(ctx, bundle)
		if !errors.Is(err, ErrIncompatibleSameHuman) {
			t.Fatalf("expected ErrIncompatibleSameHuman, got %v", err)
		}
	})

	t.Run("unknown concurrency variant is rejected", func(t *testing.T) {
		st, bundles := setup()
		seed(st, color)
		bundle := makeBundle([]uuid.UUID{color.ID}, entity.Concurrency("interleaved"), entity.HumanPolicyAny, entity.PriceModeSum, 0)

		_, err := bundles.Compose(ctx, bundle)
		if !errors.Is(err, ErrUnknownRuleVariant) {
			t.Fatalf("expected ErrUnknownRuleVariant, got %v", err)
		}
	})
}
