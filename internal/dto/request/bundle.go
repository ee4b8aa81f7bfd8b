package request

type CreateBundleRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	ServiceIDs      []string `json:"service_ids" validate:"required,min=1,max=10,dive,uuid4"`
	Concurrency     string   `json:"concurrency" validate:"required,oneof=serial parallel"`
	HumanPolicy     string   `json:"human_policy" validate:"required,oneof=same_human any_human"`
	PriceMode       string   `json:"price_mode" validate:"required,oneof=sum discount"`
	DiscountPercent int      `json:"discount_percent" validate:"gte=0,lte=100"`
}

type UpdateBundleRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	ServiceIDs      []string `json:"service_ids" validate:"required,min=1,max=10,dive,uuid4"`
	Concurrency     string   `json:"concurrency" validate:"required,oneof=serial parallel"`
	HumanPolicy     string   `json:"human_policy" validate:"required,oneof=same_human any_human"`
	PriceMode       string   `json:"price_mode" validate:"required,oneof=sum discount"`
	DiscountPercent int      `json:"discount_percent" validate:"gte=0,lte=100"`
	Active          *bool    `json:"active" validate:"required"`
}
