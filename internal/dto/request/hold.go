package request

type CreateHoldRequest struct {
	SubjectID      string `json:"subject_id" validate:"required,uuid4"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time" validate:"required,datetime=15:04"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,min=8,max=128"`
}
