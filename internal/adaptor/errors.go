package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"salon-booking/internal/data/repository"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// respondServiceError maps service errors onto HTTP statuses. Conflict
// errors (409) tell the caller to re-query availability and pick again;
// 410 marks a hold that outlived its TTL.
func respondServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, repository.ErrSlotUnavailable):
		log.Warn(operation+" failed - slot unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, repository.ErrHoldExpired):
		log.Warn(operation+" failed - hold expired",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseGone(w, errMsg)

	case errors.Is(err, repository.ErrHoldNotFound),
		errors.Is(err, repository.ErrBookingNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, repository.ErrDuplicateIdempotencyKey):
		log.Warn(operation+" failed - duplicate idempotency key",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrEmptyBundle),
		errors.Is(err, usecase.ErrUnknownService),
		errors.Is(err, usecase.ErrIncompatibleSameHuman),
		errors.Is(err, usecase.ErrUnknownRuleVariant):
		log.Warn(operation+" failed - invalid subject",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "duplicate"),
		strings.Contains(errMsg, "cannot"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
