package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanItem is one member service placed inside a composition's window.
// OffsetMinutes is relative to the composition start: cumulative for
// serial bundles, zero for parallel ones.
type PlanItem struct {
	Service       *entity.Service
	OffsetMinutes int
}

// Composition is the derived schedule shape of a service or bundle:
// which services run when, how long the whole visit takes and what it
// costs. It is recomputed from the live catalog on every request and
// frozen into the hold at reservation time.
type Composition struct {
	SubjectType     entity.SubjectType
	SubjectID       uuid.UUID
	Concurrency     entity.Concurrency
	HumanPolicy     entity.HumanPolicy
	Items           []PlanItem
	DurationMinutes int
	Price           int64
	Skills          []string // distinct skills across members, in member order
}

type BundleService interface {
	CreateBundle(ctx context.Context, req *request.CreateBundleRequest) (*response.BundleResponse, error)
	GetBundle(ctx context.Context, bundleID string) (*response.BundleResponse, error)
	GetAllBundles(ctx context.Context) ([]*response.BundleResponse, error)
	UpdateBundle(ctx context.Context, bundleID string, req *request.UpdateBundleRequest) (*response.BundleResponse, error)
	DeactivateBundle(ctx context.Context, bundleID string) error
	Compose(ctx context.Context, bundle *entity.Bundle) (*Composition, error)
}

type bundleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBundleService(repo *repository.Repository, log *zap.Logger) BundleService {
	return &bundleService{
		repo: repo,
		log:  log.With(zap.String("service", "bundle")),
	}
}

// roundHalfUp applies a percentage discount to a minor-unit amount,
// rounding half cents up. 15% off 4500 is 3825.
func roundHalfUp(sum int64, discountPercent int) int64 {
	return (sum*int64(100-discountPercent) + 50) / 100
}

// Compose resolves a bundle's members against the live catalog and
// derives its schedule shape. Rule variants are closed sets: an unknown
// value is an error, never a silent default.
func (s *bundleService) Compose(ctx context.Context, bundle *entity.Bundle) (*Composition, error) {
	if len(bundle.ServiceIDs) == 0 {
		return nil, fmt.Errorf("compose bundle %s: %w", bundle.ID.String(), ErrEmptyBundle)
	}

	services, err := s.repo.Service.FindByIDs(ctx, bundle.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("compose bundle %s: %w", bundle.ID.String(), err)
	}

	byID := make(map[uuid.UUID]*entity.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	comp := &Composition{
		SubjectType: entity.SubjectTypeBundle,
		SubjectID:   bundle.ID,
		Concurrency: bundle.Concurrency,
		HumanPolicy: bundle.HumanPolicy,
		Items:       make([]PlanItem, 0, len(bundle.ServiceIDs)),
	}

	var sum int64
	seenSkills := make(map[string]bool)
	offset := 0
	for _, id := range bundle.ServiceIDs {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			return nil, fmt.Errorf("compose bundle %s member %s: %w", bundle.ID.String(), id.String(), ErrUnknownService)
		}

		switch bundle.Concurrency {
		case entity.ConcurrencySerial:
			comp.Items = append(comp.Items, PlanItem{Service: svc, OffsetMinutes: offset})
			offset += svc.DurationMinutes
			comp.DurationMinutes = offset
		case entity.ConcurrencyParallel:
			comp.Items = append(comp.Items, PlanItem{Service: svc, OffsetMinutes: 0})
			if svc.DurationMinutes > comp.DurationMinutes {
				comp.DurationMinutes = svc.DurationMinutes
			}
		default:
			return nil, fmt.Errorf("compose bundle %s concurrency %q: %w", bundle.ID.String(), bundle.Concurrency, ErrUnknownRuleVariant)
		}

		sum += svc.Price
		if !seenSkills[svc.Skill] {
			seenSkills[svc.Skill] = true
			comp.Skills = append(comp.Skills, svc.Skill)
		}
	}

	switch bundle.PriceMode {
	case entity.PriceModeSum:
		comp.Price = sum
	case entity.PriceModeDiscount:
		comp.Price = roundHalfUp(sum, bundle.DiscountPercent)
	default:
		return nil, fmt.Errorf("compose bundle %s price mode %q: %w", bundle.ID.String(), bundle.PriceMode, ErrUnknownRuleVariant)
	}

	switch bundle.HumanPolicy {
	case entity.HumanPolicySame:
		// At least one human must cover every member skill, or no
		// start time can ever satisfy the bundle.
		humans, err := s.repo.Resource.FindHumansWithSkills(ctx, comp.Skills)
		if err != nil {
			return nil, fmt.Errorf("compose bundle %s: %w", bundle.ID.String(), err)
		}
		if len(humans) == 0 {
			return nil, fmt.Errorf("compose bundle %s skills %v: %w", bundle.ID.String(), comp.Skills, ErrIncompatibleSameHuman)
		}
	case entity.HumanPolicyAny:
	default:
		return nil, fmt.Errorf("compose bundle %s human policy %q: %w", bundle.ID.String(), bundle.HumanPolicy, ErrUnknownRuleVariant)
	}

	return comp, nil
}

// composeService wraps a single service as a one-item composition so
// availability and holds treat services and bundles uniformly.
func composeService(service *entity.Service) *Composition {
	return &Composition{
		SubjectType:     entity.SubjectTypeService,
		SubjectID:       service.ID,
		Concurrency:     entity.ConcurrencySerial,
		HumanPolicy:     entity.HumanPolicyAny,
		Items:           []PlanItem{{Service: service, OffsetMinutes: 0}},
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Skills:          []string{service.Skill},
	}
}

// resolveSubject maps a subject id to its composition, trying the
// service catalog first and the bundle catalog second.
func resolveSubject(ctx context.Context, repo *repository.Repository, bundles BundleService, subjectID uuid.UUID) (*Composition, error) {
	service, err := repo.Service.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if service != nil && service.Active {
		return composeService(service), nil
	}

	bundle, err := repo.Bundle.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if bundle != nil && bundle.Active {
		return bundles.Compose(ctx, bundle)
	}

	return nil, fmt.Errorf("subject %s: %w", subjectID.String(), ErrUnknownService)
}

// ==================== ADMIN METHODS ====================

func (s *bundleService) CreateBundle(ctx context.Context, req *request.CreateBundleRequest) (*response.BundleResponse, error) {
	bundle, err := s.bundleFromRequest(req.Name, req.ServiceIDs, req.Concurrency, req.HumanPolicy, req.PriceMode, req.DiscountPercent)
	if err != nil {
		return nil, err
	}
	bundle.Active = true

	// Composing up front rejects bundles that reference unknown members
	// or carry a same-human policy no staff member can satisfy.
	if _, err := s.Compose(ctx, bundle); err != nil {
		return nil, err
	}

	if err := s.repo.Bundle.Create(ctx, bundle); err != nil {
		return nil, err
	}

	s.log.Info("Bundle created",
		zap.String("bundle_id", bundle.ID.String()),
		zap.String("name", bundle.Name),
		zap.Int("services", len(bundle.ServiceIDs)),
	)

	return response.BundleToResponse(bundle), nil
}

func (s *bundleService) GetBundle(ctx context.Context, bundleID string) (*response.BundleResponse, error) {
	id, err := uuid.Parse(bundleID)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle ID format: %s", bundleID)
	}

	bundle, err := s.repo.Bundle.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, fmt.Errorf("bundle with ID %s not found", bundleID)
	}

	return response.BundleToResponse(bundle), nil
}

func (s *bundleService) GetAllBundles(ctx context.Context) ([]*response.BundleResponse, error) {
	bundles, err := s.repo.Bundle.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.BundleResponse, len(bundles))
	for i, bundle := range bundles {
		responses[i] = response.BundleToResponse(bundle)
	}

	return responses, nil
}

func (s *bundleService) UpdateBundle(ctx context.Context, bundleID string, req *request.UpdateBundleRequest) (*response.BundleResponse, error) {
	id, err := uuid.Parse(bundleID)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle ID format: %s", bundleID)
	}

	existing, err := s.repo.Bundle.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("bundle with ID %s not found", bundleID)
	}

	bundle, err := s.bundleFromRequest(req.Name, req.ServiceIDs, req.Concurrency, req.HumanPolicy, req.PriceMode, req.DiscountPercent)
	if err != nil {
		return nil, err
	}
	bundle.ID = existing.ID
	bundle.CreatedAt = existing.CreatedAt
	bundle.Active = *req.Active

	if _, err := s.Compose(ctx, bundle); err != nil {
		return nil, err
	}

	if err := s.repo.Bundle.Update(ctx, bundle); err != nil {
		return nil, err
	}

	s.log.Info("Bundle updated", zap.String("bundle_id", bundle.ID.String()))

	return response.BundleToResponse(bundle), nil
}

func (s *bundleService) DeactivateBundle(ctx context.Context, bundleID string) error {
	id, err := uuid.Parse(bundleID)
	if err != nil {
		return fmt.Errorf("invalid bundle ID format: %s", bundleID)
	}

	if err := s.repo.Bundle.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.log.Info("Bundle deactivated", zap.String("bundle_id", bundleID))
	return nil
}

func (s *bundleService) bundleFromRequest(name string, serviceIDs []string, concurrency, humanPolicy, priceMode string, discountPercent int) (*entity.Bundle, error) {
	ids := make([]uuid.UUID, len(serviceIDs))
	for i, raw := range serviceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid service ID format: %s", raw)
		}
		ids[i] = id
	}

	now := time.Now()
	return &entity.Bundle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            name,
		ServiceIDs:      ids,
		Concurrency:     entity.Concurrency(concurrency),
		HumanPolicy:     entity.HumanPolicy(humanPolicy),
		PriceMode:       entity.PriceMode(priceMode),
		DiscountPercent: discountPercent,
	}, nil
}
