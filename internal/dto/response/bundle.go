package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type BundleResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ServiceIDs      []string  `json:"service_ids"`
	Concurrency     string    `json:"concurrency"`
	HumanPolicy     string    `json:"human_policy"`
	PriceMode       string    `json:"price_mode"`
	DiscountPercent int       `json:"discount_percent"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

func BundleToResponse(bundle *entity.Bundle) *BundleResponse {
	ids := make([]string, len(bundle.ServiceIDs))
	for i, id := range bundle.ServiceIDs {
		ids[i] = id.String()
	}

	return &BundleResponse{
		ID:              bundle.ID.String(),
		Name:            bundle.Name,
		ServiceIDs:      ids,
		Concurrency:     string(bundle.Concurrency),
		HumanPolicy:     string(bundle.HumanPolicy),
		PriceMode:       string(bundle.PriceMode),
		DiscountPercent: bundle.DiscountPercent,
		Active:          bundle.Active,
		CreatedAt:       bundle.CreatedAt,
	}
}
