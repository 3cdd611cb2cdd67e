package server

import (
	"errors"
	"net/http"
	"strings"

	authdomain "github.com/bluedrop/aquarate/internal/auth/domain"
	"github.com/bluedrop/aquarate/internal/pricing"
	profiledomain "github.com/bluedrop/aquarate/internal/profile/domain"
	quotedomain "github.com/bluedrop/aquarate/internal/quote/domain"
	ratedomain "github.com/bluedrop/aquarate/internal/rate/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
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

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, authdomain.ErrAccountExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "username already taken",
		}
	case errors.Is(err, authdomain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many login attempts",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ratedomain.ErrUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "base rate unavailable",
		}
	case errors.Is(err, quotedomain.ErrStorageConflict):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "could not record quote",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, quotedomain.ErrInvalidGallons),
		errors.Is(err, quotedomain.ErrInvalidDate),
		errors.Is(err, quotedomain.ErrInvalidState),
		errors.Is(err, quotedomain.ErrInvalidCursor),
		errors.Is(err, ratedomain.ErrInvalidRate),
		errors.Is(err, profiledomain.ErrInvalidUsername),
		errors.Is(err, profiledomain.ErrInvalidFullName),
		errors.Is(err, profiledomain.ErrInvalidAddress),
		errors.Is(err, profiledomain.ErrInvalidCity),
		errors.Is(err, profiledomain.ErrInvalidZipCode),
		errors.Is(err, profiledomain.ErrInvalidState):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, quotedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	if errors.Is(err, pricing.ErrInvalidInput) {
		return "invalid_gallons"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

// classifyErrorForLog buckets handler errors for the request log.
func classifyErrorForLog(err error) string {
	if err == nil {
		return ""
	}
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "server_error"
	}
	return payload.Type
}
