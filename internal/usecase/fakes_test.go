package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"

	"github.com/google/uuid"
)

// fakeStore is a mutex-guarded in-memory backing store shared by the
// fake repositories. The fake ledger enforces the same overlap and
// state-machine rules as the Postgres one, minus the transactions.
type fakeStore struct {
	mu        sync.Mutex
	services  map[uuid.UUID]*entity.Service
	bundles   map[uuid.UUID]*entity.Bundle
	resources map[uuid.UUID]*entity.Resource
	holds     map[uuid.UUID]*entity.Hold
	holdRes   map[uuid.UUID][]entity.HoldResource
	bookings  map[uuid.UUID]*entity.Booking
	bookRes   map[uuid.UUID][]entity.BookingResource
}

func newFakeRepo() (*repository.Repository, *fakeStore) {
	st := &fakeStore{
		services:  make(map[uuid.UUID]*entity.Service),
		bundles:   make(map[uuid.UUID]*entity.Bundle),
		resources: make(map[uuid.UUID]*entity.Resource),
		holds:     make(map[uuid.UUID]*entity.Hold),
		holdRes:   make(map[uuid.UUID][]entity.HoldResource),
		bookings:  make(map[uuid.UUID]*entity.Booking),
		bookRes:   make(map[uuid.UUID][]entity.BookingResource),
	}

	return &repository.Repository{
		Service:  &fakeServiceRepo{st},
		Bundle:   &fakeBundleRepo{st},
		Resource: &fakeResourceRepo{st},
		Hold:     &fakeHoldRepo{st},
		Booking:  &fakeBookingRepo{st},
		Ledger:   &fakeLedger{st},
	}, st
}

// occupied reports whether any confirmed/completed booking or pending,
// unexpired hold overlaps [start, end) on the resource. Caller holds the
// lock.
func (st *fakeStore) occupied(resourceID uuid.UUID, start, end, asOf time.Time) bool {
	for id, booking := range st.bookings {
		if booking.Status != entity.BookingStatusConfirmed && booking.Status != entity.BookingStatusCompleted {
			continue
		}
		for _, res := range st.bookRes[id] {
			if res.ResourceID == resourceID && res.StartTime.Before(end) && start.Before(res.EndTime) {
				return true
			}
		}
	}

	for id, hold := range st.holds {
		if hold.State != entity.HoldStatePending || !hold.ExpiresAt.After(asOf) {
			continue
		}
		for _, res := range st.holdRes[id] {
			if res.ResourceID == resourceID && res.StartTime.Before(end) && start.Before(res.EndTime) {
				return true
			}
		}
	}

	return false
}

type fakeServiceRepo struct{ st *fakeStore }

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.services[id], nil
}

func (f *fakeServiceRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Service, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Service
	for _, id := range ids {
		if svc, ok := f.st.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Service
	for _, svc := range f.st.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if svc, ok := f.st.services[id]; ok {
		svc.Active = active
	}
	return nil
}

type fakeBundleRepo struct{ st *fakeStore }

func (f *fakeBundleRepo) Create(ctx context.Context, bundle *entity.Bundle) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.bundles[bundle.ID] = bundle
	return nil
}

func (f *fakeBundleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bundle, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.bundles[id], nil
}

func (f *fakeBundleRepo) FindAllActive(ctx context.Context) ([]*entity.Bundle, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Bundle
	for _, bundle := range f.st.bundles {
		if bundle.Active {
			out = append(out, bundle)
		}
	}
	return out, nil
}

func (f *fakeBundleRepo) Update(ctx context.Context, bundle *entity.Bundle) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.bundles[bundle.ID] = bundle
	return nil
}

func (f *fakeBundleRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if bundle, ok := f.st.bundles[id]; ok {
		bundle.Active = active
	}
	return nil
}

type fakeResourceRepo struct{ st *fakeStore }

func (f *fakeResourceRepo) Create(ctx context.Context, resource *entity.Resource) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.resources[resource.ID] = resource
	return nil
}

func (f *fakeResourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.resources[id], nil
}

func (f *fakeResourceRepo) FindAll(ctx context.Context) ([]*entity.Resource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Resource
	for _, res := range f.st.resources {
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeResourceRepo) FindByType(ctx context.Context, resourceType entity.ResourceType) ([]*entity.Resource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Resource
	for _, res := range f.st.resources {
		if res.Type == resourceType {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) FindHumansWithSkills(ctx context.Context, skills []string) ([]*entity.Resource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Resource
	for _, res := range f.st.resources {
		if res.Type == entity.ResourceTypeHuman && res.HasSkills(skills) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) Update(ctx context.Context, resource *entity.Resource) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.resources[resource.ID] = resource
	return nil
}

func (f *fakeResourceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	delete(f.st.resources, id)
	return nil
}

type fakeHoldRepo struct{ st *fakeStore }

func (f *fakeHoldRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.holds[id], nil
}

func (f *fakeHoldRepo) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Hold, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	for _, hold := range f.st.holds {
		if hold.IdempotencyKey == key {
			return hold, nil
		}
	}
	return nil, nil
}

func (f *fakeHoldRepo) FindResources(ctx context.Context, holdID uuid.UUID) ([]entity.HoldResource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return append([]entity.HoldResource(nil), f.st.holdRes[holdID]...), nil
}

type fakeBookingRepo struct{ st *fakeStore }

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.bookings[id], nil
}

func (f *fakeBookingRepo) FindByResourceAndDate(ctx context.Context, resourceID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Booking, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var out []*entity.Booking
	for id, booking := range f.st.bookings {
		if booking.StartTime.Before(dayStart) || !booking.StartTime.Before(dayEnd) {
			continue
		}
		for _, res := range f.st.bookRes[id] {
			if res.ResourceID == resourceID {
				out = append(out, booking)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindResources(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingResource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return append([]entity.BookingResource(nil), f.st.bookRes[bookingID]...), nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, reason *string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	booking, ok := f.st.bookings[bookingID]
	if !ok {
		return fmt.Errorf("update booking %s: %w", bookingID.String(), repository.ErrBookingNotFound)
	}
	booking.Status = status
	booking.CancelReason = reason
	return nil
}

type fakeLedger struct{ st *fakeStore }

func (f *fakeLedger) IsFree(ctx context.Context, resourceID uuid.UUID, start, end time.Time, asOf time.Time) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return !f.st.occupied(resourceID, start, end, asOf), nil
}

func (f *fakeLedger) Reserve(ctx context.Context, hold *entity.Hold, resources []entity.HoldResource) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	for _, existing := range f.st.holds {
		if existing.IdempotencyKey == hold.IdempotencyKey {
			return fmt.Errorf("insert hold: %w", repository.ErrDuplicateIdempotencyKey)
		}
	}

	for _, res := range resources {
		if f.st.occupied(res.ResourceID, res.StartTime, res.EndTime, hold.CreatedAt) {
			return fmt.Errorf("window taken on %s: %w", res.ResourceID.String(), repository.ErrSlotUnavailable)
		}
	}

	copied := *hold
	f.st.holds[hold.ID] = &copied
	f.st.holdRes[hold.ID] = append([]entity.HoldResource(nil), resources...)
	return nil
}

func (f *fakeLedger) Confirm(ctx context.Context, holdID uuid.UUID, orderID string) (*entity.Booking, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	hold, ok := f.st.holds[holdID]
	if !ok {
		return nil, fmt.Errorf("confirm hold %s: %w", holdID.String(), repository.ErrHoldNotFound)
	}

	now := time.Now()
	switch hold.State {
	case entity.HoldStatePending:
		if hold.Expired(now) {
			return nil, fmt.Errorf("confirm hold %s: %w", holdID.String(), repository.ErrHoldExpired)
		}
	case entity.HoldStateExpired:
		return nil, fmt.Errorf("confirm hold %s: %w", holdID.String(), repository.ErrHoldExpired)
	default:
		return nil, fmt.Errorf("confirm hold %s in state %s: %w", holdID.String(), hold.State, repository.ErrHoldNotFound)
	}

	hold.State = entity.HoldStateConfirmed

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:         orderID,
		HoldID:          hold.ID,
		SubjectType:     hold.SubjectType,
		SubjectID:       hold.SubjectID,
		StartTime:       hold.StartTime,
		EndTime:         hold.StartTime.Add(time.Duration(hold.DurationMinutes) * time.Minute),
		DurationMinutes: hold.DurationMinutes,
		Price:           hold.Price,
		Status:          entity.BookingStatusConfirmed,
	}
	f.st.bookings[booking.ID] = booking

	var bookRes []entity.BookingResource
	for _, res := range f.st.holdRes[hold.ID] {
		bookRes = append(bookRes, entity.BookingResource{
			BookingID:  booking.ID,
			ServiceID:  res.ServiceID,
			Role:       res.Role,
			ResourceID: res.ResourceID,
			StartTime:  res.StartTime,
			EndTime:    res.EndTime,
		})
	}
	f.st.bookRes[booking.ID] = bookRes

	return booking, nil
}

func (f *fakeLedger) Release(ctx context.Context, holdID uuid.UUID) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	hold, ok := f.st.holds[holdID]
	if !ok {
		return fmt.Errorf("release hold %s: %w", holdID.String(), repository.ErrHoldNotFound)
	}
	if hold.State == entity.HoldStatePending {
		hold.State = entity.HoldStateReleased
	}
	return nil
}

func (f *fakeLedger) SweepExpired(ctx context.Context, asOf time.Time) ([]entity.HoldResource, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	var freed []entity.HoldResource
	for id, hold := range f.st.holds {
		if hold.State == entity.HoldStatePending && !hold.ExpiresAt.After(asOf) {
			hold.State = entity.HoldStateExpired
			freed = append(freed, f.st.holdRes[id]...)
		}
	}
	return freed, nil
}
