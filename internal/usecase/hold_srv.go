package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HoldService interface {
	CreateHold(ctx context.Context, req *request.CreateHoldRequest) (*response.HoldResponse, error)
	GetHold(ctx context.Context, holdID string) (*response.HoldResponse, error)
	ConfirmHold(ctx context.Context, holdID string) (*response.BookingResponse, error)
	ReleaseHold(ctx context.Context, holdID string) error
}

type holdService struct {
	repo     *repository.Repository
	bundles  BundleService
	planner  *planner
	cache    *cache.AvailabilityCache
	notifier Notifier
	ttl      time.Duration
	log      *zap.Logger
}

func NewHoldService(repo *repository.Repository, bundles BundleService, planner *planner, availCache *cache.AvailabilityCache, notifier Notifier, ttlSeconds int, log *zap.Logger) HoldService {
	return &holdService{
		repo:     repo,
		bundles:  bundles,
		planner:  planner,
		cache:    availCache,
		notifier: notifier,
		ttl:      time.Duration(ttlSeconds) * time.Second,
		log:      log.With(zap.String("service", "hold")),
	}
}

// CreateHold reserves every resource window the subject needs, starting
// at the requested slot. Retrying with the same idempotency key returns
// the original hold instead of reserving twice.
func (s *holdService) CreateHold(ctx context.Context, req *request.CreateHoldRequest) (*response.HoldResponse, error) {
	if existing, err := s.replayByKey(ctx, req.IdempotencyKey); err != nil || existing != nil {
		return existing, err
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject ID format: %s", req.SubjectID)
	}

	day, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s", req.Date)
	}
	clock, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time format: %s", req.StartTime)
	}
	start := day.Add(time.Duration(clock) * time.Minute)

	// Availability never reports past starts; holds refuse them the
	// same way.
	now := time.Now()
	if start.Before(now) {
		return nil, fmt.Errorf("start %s %s is already past: %w", req.Date, req.StartTime, repository.ErrSlotUnavailable)
	}

	comp, err := resolveSubject(ctx, s.repo, s.bundles, subjectID)
	if err != nil {
		return nil, err
	}

	pc, err := s.planner.prepare(ctx, comp)
	if err != nil {
		return nil, err
	}

	if !s.planner.onGrid(pc, start) {
		return nil, fmt.Errorf("start %s is not a slot boundary: %w", req.StartTime, repository.ErrSlotUnavailable)
	}

	plan, ok, err := s.planner.assignmentFor(ctx, pc, start, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no feasible assignment at %s %s: %w", req.Date, req.StartTime, repository.ErrSlotUnavailable)
	}

	hold := &entity.Hold{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		IdempotencyKey:  req.IdempotencyKey,
		SubjectType:     comp.SubjectType,
		SubjectID:       comp.SubjectID,
		StartTime:       start,
		DurationMinutes: comp.DurationMinutes,
		Price:           comp.Price,
		State:           entity.HoldStatePending,
		ExpiresAt:       now.Add(s.ttl),
	}
	for i := range plan {
		plan[i].HoldID = hold.ID
	}

	err = s.repo.Ledger.Reserve(ctx, hold, plan)
	if errors.Is(err, repository.ErrDuplicateIdempotencyKey) {
		// Lost a race against a concurrent request with the same key;
		// the winner's hold is the answer.
		replayed, replayErr := s.replayByKey(ctx, req.IdempotencyKey)
		if replayErr != nil {
			return nil, replayErr
		}
		if replayed != nil {
			return replayed, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.bumpWindows(ctx, plan)

	s.log.Info("Hold created",
		zap.String("hold_id", hold.ID.String()),
		zap.String("subject_id", hold.SubjectID.String()),
		zap.Time("start", hold.StartTime),
		zap.Time("expires_at", hold.ExpiresAt),
		zap.Int("windows", len(plan)),
	)

	return response.HoldToResponse(hold, plan), nil
}

// replayByKey returns the prior hold for an idempotency key, nil when
// the key is unseen.
func (s *holdService) replayByKey(ctx context.Context, key string) (*response.HoldResponse, error) {
	hold, err := s.repo.Hold.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, nil
	}

	resources, err := s.repo.Hold.FindResources(ctx, hold.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Idempotent hold replay",
		zap.String("hold_id", hold.ID.String()),
		zap.String("state", string(hold.State)),
	)

	return response.HoldToResponse(hold, resources), nil
}

func (s *holdService) GetHold(ctx context.Context, holdID string) (*response.HoldResponse, error) {
	id, err := uuid.Parse(holdID)
	if err != nil {
		return nil, fmt.Errorf("invalid hold ID format: %s", holdID)
	}

	hold, err := s.repo.Hold.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, fmt.Errorf("hold %s: %w", holdID, repository.ErrHoldNotFound)
	}

	resources, err := s.repo.Hold.FindResources(ctx, id)
	if err != nil {
		return nil, err
	}

	return response.HoldToResponse(hold, resources), nil
}

// ConfirmHold converts a pending, unexpired hold into a booking. The
// booking carries the hold's price and duration snapshot; later catalog
// edits never touch it.
func (s *holdService) ConfirmHold(ctx context.Context, holdID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(holdID)
	if err != nil {
		return nil, fmt.Errorf("invalid hold ID format: %s", holdID)
	}

	booking, err := s.repo.Ledger.Confirm(ctx, id, utils.GenerateOrderID())
	if err != nil {
		return nil, err
	}

	resources, err := s.repo.Booking.FindResources(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.bumpBookingWindows(ctx, resources)
	s.notifier.BookingCreated(ctx, booking)

	s.log.Info("Hold confirmed",
		zap.String("hold_id", holdID),
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
	)

	return response.BookingToResponse(booking, resources), nil
}

// ReleaseHold frees a pending hold's windows. Releasing a hold that
// already expired or was already released is a no-op.
func (s *holdService) ReleaseHold(ctx context.Context, holdID string) error {
	id, err := uuid.Parse(holdID)
	if err != nil {
		return fmt.Errorf("invalid hold ID format: %s", holdID)
	}

	resources, err := s.repo.Hold.FindResources(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Ledger.Release(ctx, id); err != nil {
		return err
	}

	s.bumpWindows(ctx, resources)

	return nil
}

func (s *holdService) bumpWindows(ctx context.Context, resources []entity.HoldResource) {
	byDate := make(map[string][]uuid.UUID)
	for _, res := range resources {
		date := res.StartTime.Format("2006-01-02")
		byDate[date] = append(byDate[date], res.ResourceID)
	}
	for date, ids := range byDate {
		s.cache.Bump(ctx, ids, date)
	}
}

func (s *holdService) bumpBookingWindows(ctx context.Context, resources []entity.BookingResource) {
	byDate := make(map[string][]uuid.UUID)
	for _, res := range resources {
		date := res.StartTime.Format("2006-01-02")
		byDate[date] = append(byDate[date], res.ResourceID)
	}
	for date, ids := range byDate {
		s.cache.Bump(ctx, ids, date)
	}
}
