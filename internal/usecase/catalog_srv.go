package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the bookable services and the resources that
// perform them.
type CatalogService interface {
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	GetAllServices(ctx context.Context) ([]*response.ServiceResponse, error)
	UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeactivateService(ctx context.Context, serviceID string) error

	CreateResource(ctx context.Context, req *request.CreateResourceRequest) (*response.ResourceResponse, error)
	GetResource(ctx context.Context, resourceID string) (*response.ResourceResponse, error)
	GetAllResources(ctx context.Context) ([]*response.ResourceResponse, error)
	UpdateResource(ctx context.Context, resourceID string, req *request.UpdateResourceRequest) (*response.ResourceResponse, error)
	DeleteResource(ctx context.Context, resourceID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Skill:           req.Skill,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		ResourceTypes:   toResourceTypes(req.ResourceTypes),
		Active:          true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, err
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("name", service.Name),
		zap.String("skill", service.Skill),
	)

	return response.ServiceToResponse(service), nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format: %s", serviceID)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("service with ID %s not found", serviceID)
	}

	return response.ServiceToResponse(service), nil
}

func (s *catalogService) GetAllServices(ctx context.Context) ([]*response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.ServiceResponse, len(services))
	for i, service := range services {
		responses[i] = response.ServiceToResponse(service)
	}

	return responses, nil
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format: %s", serviceID)
	}

	existing, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("service with ID %s not found", serviceID)
	}

	existing.Name = req.Name
	existing.Skill = req.Skill
	existing.DurationMinutes = req.DurationMinutes
	existing.Price = req.Price
	existing.ResourceTypes = toResourceTypes(req.ResourceTypes)
	existing.Active = *req.Active
	existing.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info("Service updated", zap.String("service_id", serviceID))

	return response.ServiceToResponse(existing), nil
}

// DeactivateService soft-deletes: existing bookings keep their snapshot,
// new availability and holds stop offering the service.
func (s *catalogService) DeactivateService(ctx context.Context, serviceID string) error {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return fmt.Errorf("invalid service ID format: %s", serviceID)
	}

	if err := s.repo.Service.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.log.Info("Service deactivated", zap.String("service_id", serviceID))
	return nil
}

// ==================== RESOURCE METHODS ====================

func (s *catalogService) CreateResource(ctx context.Context, req *request.CreateResourceRequest) (*response.ResourceResponse, error) {
	hours, err := hoursFromRequest(req.Hours)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resource := &entity.Resource{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   req.Name,
		Type:   entity.ResourceType(req.Type),
		Skills: req.Skills,
		Hours:  hours,
	}
	for i := range resource.Hours {
		resource.Hours[i].ResourceID = resource.ID
	}

	if err := s.repo.Resource.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.log.Info("Resource created",
		zap.String("resource_id", resource.ID.String()),
		zap.String("name", resource.Name),
		zap.String("type", string(resource.Type)),
	)

	return response.ResourceToResponse(resource), nil
}

func (s *catalogService) GetResource(ctx context.Context, resourceID string) (*response.ResourceResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format: %s", resourceID)
	}

	resource, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, fmt.Errorf("resource with ID %s not found", resourceID)
	}

	return response.ResourceToResponse(resource), nil
}

func (s *catalogService) GetAllResources(ctx context.Context) ([]*response.ResourceResponse, error) {
	resources, err := s.repo.Resource.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.ResourceResponse, len(resources))
	for i, resource := range resources {
		responses[i] = response.ResourceToResponse(resource)
	}

	return responses, nil
}

func (s *catalogService) UpdateResource(ctx context.Context, resourceID string, req *request.UpdateResourceRequest) (*response.ResourceResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format: %s", resourceID)
	}

	existing, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("resource with ID %s not found", resourceID)
	}

	hours, err := hoursFromRequest(req.Hours)
	if err != nil {
		return nil, err
	}
	for i := range hours {
		hours[i].ResourceID = existing.ID
	}

	existing.Name = req.Name
	existing.Skills = req.Skills
	existing.Hours = hours
	existing.UpdatedAt = time.Now()

	if err := s.repo.Resource.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info("Resource updated", zap.String("resource_id", resourceID))

	return response.ResourceToResponse(existing), nil
}

func (s *catalogService) DeleteResource(ctx context.Context, resourceID string) error {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return fmt.Errorf("invalid resource ID format: %s", resourceID)
	}

	if err := s.repo.Resource.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Resource deleted", zap.String("resource_id", resourceID))
	return nil
}

func toResourceTypes(values []string) []entity.ResourceType {
	types := make([]entity.ResourceType, len(values))
	for i, v := range values {
		types[i] = entity.ResourceType(v)
	}
	return types
}

// hoursFromRequest parses and checks a weekly template. Open equal to
// close marks a day off; open after close is rejected.
func hoursFromRequest(reqs []request.WorkingHoursRequest) ([]entity.WorkingHours, error) {
	seen := make(map[int]bool)
	hours := make([]entity.WorkingHours, 0, len(reqs))
	for _, h := range reqs {
		if seen[h.Weekday] {
			return nil, fmt.Errorf("duplicate working hours for weekday %d", h.Weekday)
		}
		seen[h.Weekday] = true

		open, err := utils.ParseClock(h.Open)
		if err != nil {
			return nil, fmt.Errorf("invalid open time %q for weekday %d", h.Open, h.Weekday)
		}
		closeMin, err := utils.ParseClock(h.Close)
		if err != nil {
			return nil, fmt.Errorf("invalid close time %q for weekday %d", h.Close, h.Weekday)
		}
		if open > closeMin {
			return nil, fmt.Errorf("open after close on weekday %d", h.Weekday)
		}

		hours = append(hours, entity.WorkingHours{
			Weekday:      h.Weekday,
			OpenMinutes:  open,
			CloseMinutes: closeMin,
		})
	}

	return hours, nil
}
