package http

import (
	"errors"
	"net/http"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/recipient"
	"communitydelivery/internal/core/domain/model/volunteer"
	"communitydelivery/internal/core/domain/services"
	"communitydelivery/internal/core/ports"
	"communitydelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use-case error onto an HTTP status. Conflicts are
// distinguished from authorization failures and from bad input so clients can
// react: a 409 claim race is retryable with a different delivery, a 403 is
// not.
func writeError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), ErrorResponse{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case isNotFound(err):
		return http.StatusNotFound
	case isConflict(err):
		return http.StatusConflict
	case isForbidden(err):
		return http.StatusForbidden
	case errors.Is(err, services.ErrOutOfServiceArea),
		errors.Is(err, commands.ErrOutsideOperatingArea):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrExternalLookupFailed):
		return http.StatusBadGateway
	case isBadRequest(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, commands.ErrDeliveryNotFound) ||
		errors.Is(err, commands.ErrVolunteerNotFound) ||
		errors.Is(err, commands.ErrRecipientNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, commands.ErrNotClaimable) ||
		errors.Is(err, commands.ErrAlreadyRated) ||
		errors.Is(err, commands.ErrDeliveryNotCompleted) ||
		errors.Is(err, delivery.ErrInvalidTransition) ||
		errors.Is(err, services.ErrCapacityExceeded) ||
		errors.Is(err, recipient.ErrRecipientDeleted) ||
		errors.Is(err, commands.ErrFulfillerUnknown) ||
		errors.Is(err, commands.ErrConversationClosed)
}

func isForbidden(err error) bool {
	return errors.Is(err, delivery.ErrNotAssigned) ||
		errors.Is(err, commands.ErrNotDeliveryOwner) ||
		errors.Is(err, volunteer.ErrNotApproved)
}

func isBadRequest(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, commands.ErrReasonIsRequired) ||
		errors.Is(err, commands.ErrReviewReasonIsRequired) ||
		errors.Is(err, commands.ErrReviewDecisionIsInvalid)
}
