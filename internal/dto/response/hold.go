package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type ReservedResourceResponse struct {
	ServiceID  string    `json:"service_id"`
	Role       string    `json:"role"`
	ResourceID string    `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

type HoldResponse struct {
	ID              string                     `json:"id"`
	SubjectType     string                     `json:"subject_type"`
	SubjectID       string                     `json:"subject_id"`
	StartTime       time.Time                  `json:"start_time"`
	DurationMinutes int                        `json:"duration_minutes"`
	Price           int64                      `json:"price"`
	State           string                     `json:"state"`
	ExpiresAt       time.Time                  `json:"expires_at"`
	Resources       []ReservedResourceResponse `json:"resources"`
	CreatedAt       time.Time                  `json:"created_at"`
}

func HoldToResponse(hold *entity.Hold, resources []entity.HoldResource) *HoldResponse {
	reserved := make([]ReservedResourceResponse, len(resources))
	for i, res := range resources {
		reserved[i] = ReservedResourceResponse{
			ServiceID:  res.ServiceID.String(),
			Role:       string(res.Role),
			ResourceID: res.ResourceID.String(),
			StartTime:  res.StartTime,
			EndTime:    res.EndTime,
		}
	}

	return &HoldResponse{
		ID:              hold.ID.String(),
		SubjectType:     string(hold.SubjectType),
		SubjectID:       hold.SubjectID.String(),
		StartTime:       hold.StartTime,
		DurationMinutes: hold.DurationMinutes,
		Price:           hold.Price,
		State:           string(hold.State),
		ExpiresAt:       hold.ExpiresAt,
		Resources:       reserved,
		CreatedAt:       hold.CreatedAt,
	}
}
