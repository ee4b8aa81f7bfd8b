package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	Resolve(ctx context.Context, subjectID, date string) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo    *repository.Repository
	bundles BundleService
	planner *planner
	cache   *cache.AvailabilityCache
	log     *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, bundles BundleService, planner *planner, availCache *cache.AvailabilityCache, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:    repo,
		bundles: bundles,
		planner: planner,
		cache:   availCache,
		log:     log.With(zap.String("service", "availability")),
	}
}

// Resolve returns the feasible start times for a service or bundle on a
// date. Results are served from the advisory cache when the ledger has
// not moved for any involved resource since they were computed; cache
// failures degrade to recomputation, never to an error.
func (s *availabilityService) Resolve(ctx context.Context, subjectID, date string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject ID format: %s", subjectID)
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s", date)
	}

	comp, err := resolveSubject(ctx, s.repo, s.bundles, id)
	if err != nil {
		return nil, err
	}

	pc, err := s.planner.prepare(ctx, comp)
	if err != nil {
		return nil, err
	}

	// Version snapshot before computing; a ledger write landing mid-way
	// leaves the stored entry stale rather than wrong.
	versions, err := s.cache.Versions(ctx, pc.resourceIDs(), date)
	if err != nil {
		s.log.Warn("Ledger version read failed, bypassing cache", zap.Error(err))
		versions = nil
	}

	if versions != nil {
		if starts, ok := s.cache.Get(ctx, id, date, versions); ok {
			s.log.Debug("Availability served from cache",
				zap.String("subject_id", subjectID),
				zap.String("date", date),
			)
			return s.buildResponse(comp, date, starts), nil
		}
	}

	starts, err := s.planner.feasibleStarts(ctx, pc, day, time.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve availability for %s on %s: %w", subjectID, date, err)
	}

	if versions != nil {
		s.cache.Store(ctx, id, date, starts, versions)
	}

	s.log.Info("Availability resolved",
		zap.String("subject_id", subjectID),
		zap.String("date", date),
		zap.Int("feasible_starts", len(starts)),
	)

	return s.buildResponse(comp, date, starts), nil
}

func (s *availabilityService) buildResponse(comp *Composition, date string, starts []time.Time) *response.AvailabilityResponse {
	return &response.AvailabilityResponse{
		SubjectID:       comp.SubjectID.String(),
		SubjectType:     string(comp.SubjectType),
		Date:            date,
		DurationMinutes: comp.DurationMinutes,
		Price:           comp.Price,
		StartTimes:      response.FormatStartTimes(starts),
	}
}
