package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically flips pending holds past their TTL to expired
// and invalidates availability for the freed windows. Expiry is already
// enforced lazily by the ledger's overlap query; the sweep reconciles
// the stored state and wakes up cached availability.
type Sweeper struct {
	repo     *repository.Repository
	cache    *cache.AvailabilityCache
	interval int
	log      *zap.Logger
}

func NewSweeper(repo *repository.Repository, availCache *cache.AvailabilityCache, intervalSeconds int, log *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		cache:    availCache,
		interval: intervalSeconds,
		log:      log.With(zap.String("service", "sweeper")),
	}
}

// Start schedules the sweep and returns the scheduler so the caller can
// Stop it on shutdown.
func (s *Sweeper) Start() (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %ds", s.interval), s.sweep)
	if err != nil {
		return nil, fmt.Errorf("schedule hold sweep: %w", err)
	}

	c.Start()
	s.log.Info("Hold sweeper started", zap.Int("interval_seconds", s.interval))
	return c, nil
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	freed, err := s.repo.Ledger.SweepExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("Hold sweep failed", zap.Error(err))
		return
	}
	if len(freed) == 0 {
		return
	}

	byDate := make(map[string][]uuid.UUID)
	holds := make(map[uuid.UUID]bool)
	for _, res := range freed {
		date := res.StartTime.Format("2006-01-02")
		byDate[date] = append(byDate[date], res.ResourceID)
		holds[res.HoldID] = true
	}
	for date, ids := range byDate {
		s.cache.Bump(ctx, ids, date)
	}

	s.log.Info("Expired holds swept",
		zap.Int("holds", len(holds)),
		zap.Int("windows", len(freed)),
	)
}
