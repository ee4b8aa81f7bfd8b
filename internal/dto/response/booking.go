package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string                     `json:"id"`
	OrderID         string                     `json:"order_id"`
	SubjectType     string                     `json:"subject_type"`
	SubjectID       string                     `json:"subject_id"`
	StartTime       time.Time                  `json:"start_time"`
	EndTime         time.Time                  `json:"end_time"`
	DurationMinutes int                        `json:"duration_minutes"`
	Price           int64                      `json:"price"`
	Status          string                     `json:"status"`
	CancelReason    *string                    `json:"cancel_reason,omitempty"`
	Resources       []ReservedResourceResponse `json:"resources"`
	CreatedAt       time.Time                  `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, resources []entity.BookingResource) *BookingResponse {
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

	return &BookingResponse{
		ID:              booking.ID.String(),
		OrderID:         booking.OrderID,
		SubjectType:     string(booking.SubjectType),
		SubjectID:       booking.SubjectID.String(),
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		DurationMinutes: booking.DurationMinutes,
		Price:           booking.Price,
		Status:          string(booking.Status),
		CancelReason:    booking.CancelReason,
		Resources:       reserved,
		CreatedAt:       booking.CreatedAt,
	}
}
