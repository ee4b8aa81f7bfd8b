package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingsByResource(ctx context.Context, resourceID, date string) ([]*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	RescheduleBooking(ctx context.Context, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	cache    *cache.AvailabilityCache
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, availCache *cache.AvailabilityCache, notifier Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		cache:    availCache,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resources, err := s.repo.Booking.FindResources(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return response.BookingToResponse(booking, resources), nil
}

func (s *bookingService) GetBookingsByResource(ctx context.Context, resourceID, date string) ([]*response.BookingResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format: %s", resourceID)
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s", date)
	}

	bookings, err := s.repo.Booking.FindByResourceAndDate(ctx, id, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	responses := make([]*response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resources, err := s.repo.Booking.FindResources(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = response.BookingToResponse(booking, resources)
	}

	return responses, nil
}

// CancelBooking flips a confirmed booking to cancelled and frees its
// windows for new reservations.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s in status %s cannot be cancelled", bookingID, booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled, &req.Reason); err != nil {
		return nil, err
	}
	booking.Status = entity.BookingStatusCancelled
	booking.CancelReason = &req.Reason

	resources, err := s.repo.Booking.FindResources(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.bumpWindows(ctx, resources)
	s.notifier.BookingCancelled(ctx, booking)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("reason", req.Reason),
	)

	return response.BookingToResponse(booking, resources), nil
}

// RescheduleBooking moves a booking onto a pending hold for the new
// slot: the hold is confirmed first, then the old booking is cancelled.
// A failure in the first step leaves the original booking untouched.
func (s *bookingService) RescheduleBooking(ctx context.Context, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s in status %s cannot be rescheduled", bookingID, booking.Status)
	}

	holdID, err := uuid.Parse(req.HoldID)
	if err != nil {
		return nil, fmt.Errorf("invalid hold ID format: %s", req.HoldID)
	}

	hold, err := s.repo.Hold.FindByID(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, fmt.Errorf("hold %s: %w", req.HoldID, repository.ErrHoldNotFound)
	}
	if hold.SubjectType != booking.SubjectType || hold.SubjectID != booking.SubjectID {
		return nil, fmt.Errorf("hold %s is for a different subject than booking %s", req.HoldID, bookingID)
	}

	replacement, err := s.repo.Ledger.Confirm(ctx, holdID, utils.GenerateOrderID())
	if err != nil {
		return nil, err
	}

	reason := "rescheduled"
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled, &reason); err != nil {
		// The new slot is already confirmed; report the failure and
		// leave the old booking for manual reconciliation.
		s.log.Error("Reschedule cancelled-new-slot cleanup failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("new_booking_id", replacement.ID.String()),
		)
		return nil, err
	}

	oldResources, err := s.repo.Booking.FindResources(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	newResources, err := s.repo.Booking.FindResources(ctx, replacement.ID)
	if err != nil {
		return nil, err
	}

	s.bumpWindows(ctx, oldResources)
	s.bumpWindows(ctx, newResources)
	s.notifier.BookingRescheduled(ctx, booking, replacement)

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", bookingID),
		zap.String("new_booking_id", replacement.ID.String()),
		zap.Time("new_start", replacement.StartTime),
	)

	return response.BookingToResponse(replacement, newResources), nil
}

// UpdateBookingStatus marks a confirmed booking completed or no_show.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s in status %s cannot move to %s", bookingID, booking.Status, req.Status)
	}

	status := entity.BookingStatus(req.Status)
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, status, nil); err != nil {
		return nil, err
	}
	booking.Status = status

	resources, err := s.repo.Booking.FindResources(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status),
	)

	return response.BookingToResponse(booking, resources), nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format: %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrBookingNotFound)
	}

	return booking, nil
}

func (s *bookingService) bumpWindows(ctx context.Context, resources []entity.BookingResource) {
	byDate := make(map[string][]uuid.UUID)
	for _, res := range resources {
		date := res.StartTime.Format("2006-01-02")
		byDate[date] = append(byDate[date], res.ResourceID)
	}
	for date, ids := range byDate {
		s.cache.Bump(ctx, ids, date)
	}
}
