package request

type WorkingHoursRequest struct {
	Weekday int    `json:"weekday" validate:"gte=0,lte=6"`
	Open    string `json:"open" validate:"required,datetime=15:04"`
	Close   string `json:"close" validate:"required,datetime=15:04"`
}

type CreateServiceRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	Skill           string   `json:"skill" validate:"required,min=2,max=50"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	Price           int64    `json:"price" validate:"gte=0"`
	ResourceTypes   []string `json:"resource_types" validate:"required,min=1,dive,oneof=human room equipment"`
}

type UpdateServiceRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	Skill           string   `json:"skill" validate:"required,min=2,max=50"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	Price           int64    `json:"price" validate:"gte=0"`
	ResourceTypes   []string `json:"resource_types" validate:"required,min=1,dive,oneof=human room equipment"`
	Active          *bool    `json:"active" validate:"required"`
}

type CreateResourceRequest struct {
	Name   string                `json:"name" validate:"required,min=2,max=100"`
	Type   string                `json:"type" validate:"required,oneof=human room equipment"`
	Skills []string              `json:"skills" validate:"dive,min=1,max=50"`
	Hours  []WorkingHoursRequest `json:"hours" validate:"required,min=1,max=7,dive"`
}

type UpdateResourceRequest struct {
	Name   string                `json:"name" validate:"required,min=2,max=100"`
	Skills []string              `json:"skills" validate:"dive,min=1,max=50"`
	Hours  []WorkingHoursRequest `json:"hours" validate:"required,min=1,max=7,dive"`
}
