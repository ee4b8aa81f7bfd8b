package request

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=2,max=200"`
}

// RescheduleBookingRequest moves a booking onto an already created hold
// for the new slot. The new slot is confirmed before the old one is
// cancelled, so the customer never loses both.
type RescheduleBookingRequest struct {
	HoldID string `json:"hold_id" validate:"required,uuid4"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed no_show"`
}
