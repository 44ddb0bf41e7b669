package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	reminderdomain "github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		isMissingClinicScope(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authdomain.ErrUserDisabled):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// isMissingClinicScope catches requests whose clinic tenant never made it
// into the context. The session layer normally seeds it, so an escape means
// the caller is effectively unauthenticated.
func isMissingClinicScope(err error) bool {
	switch {
	case errors.Is(err, clinicdomain.ErrInvalidClinic),
		errors.Is(err, ownerdomain.ErrInvalidClinic),
		errors.Is(err, petdomain.ErrInvalidClinic),
		errors.Is(err, visitdomain.ErrInvalidClinic),
		errors.Is(err, reminderdomain.ErrInvalidClinic):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, clinicdomain.ErrInvalidID),
		errors.Is(err, clinicdomain.ErrInvalidName),
		errors.Is(err, clinicdomain.ErrInvalidTimezone),
		errors.Is(err, clinicdomain.ErrInvalidLimit),
		errors.Is(err, ownerdomain.ErrInvalidID),
		errors.Is(err, ownerdomain.ErrInvalidName),
		errors.Is(err, petdomain.ErrInvalidID),
		errors.Is(err, petdomain.ErrInvalidName),
		errors.Is(err, petdomain.ErrInvalidOwner),
		errors.Is(err, visitdomain.ErrInvalidID),
		errors.Is(err, visitdomain.ErrInvalidPet),
		errors.Is(err, visitdomain.ErrInvalidVisitDate),
		errors.Is(err, visitdomain.ErrInvalidDaysAhead),
		errors.Is(err, reminderdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clinicdomain.ErrNotFound),
		errors.Is(err, ownerdomain.ErrNotFound),
		errors.Is(err, petdomain.ErrNotFound),
		errors.Is(err, visitdomain.ErrNotFound),
		errors.Is(err, reminderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
