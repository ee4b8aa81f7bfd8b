package response

import (
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Skill           string    `json:"skill"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int64     `json:"price"`
	ResourceTypes   []string  `json:"resource_types"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

type WorkingHoursResponse struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

type ResourceResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Type      string                 `json:"type"`
	Skills    []string               `json:"skills"`
	Hours     []WorkingHoursResponse `json:"hours"`
	CreatedAt time.Time              `json:"created_at"`
}

func ServiceToResponse(service *entity.Service) *ServiceResponse {
	types := make([]string, len(service.ResourceTypes))
	for i, t := range service.ResourceTypes {
		types[i] = string(t)
	}

	return &ServiceResponse{
		ID:              service.ID.String(),
		Name:            service.Name,
		Skill:           service.Skill,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		ResourceTypes:   types,
		Active:          service.Active,
		CreatedAt:       service.CreatedAt,
	}
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ResourceToResponse(resource *entity.Resource) *ResourceResponse {
	hours := make([]WorkingHoursResponse, len(resource.Hours))
	for i, h := range resource.Hours {
		hours[i] = WorkingHoursResponse{
			Weekday: h.Weekday,
			Open:    clockString(h.OpenMinutes),
			Close:   clockString(h.CloseMinutes),
		}
	}

	return &ResourceResponse{
		ID:        resource.ID.String(),
		Name:      resource.Name,
		Type:      string(resource.Type),
		Skills:    resource.Skills,
		Hours:     hours,
		CreatedAt: resource.CreatedAt,
	}
}
