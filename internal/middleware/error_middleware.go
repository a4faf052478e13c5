package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ozan/academix/internal/app/models/dto"
	"github.com/ozan/academix/internal/pkg/apperrors"
	"github.com/ozan/academix/internal/pkg/logger"
)

// HandleAPIError converts service errors into standard JSON error responses.
// Conflict errors carry their CustomError details so clients see what blocked
// the operation (dependent counts, capacity numbers, existing pair).
func HandleAPIError(c *gin.Context, err error) {
	details := apperrors.ErrorDetails(err)

	respond := func(status int, code dto.ErrorCode) {
		errorDetail := dto.NewErrorDetail(code, err.Error())
		if details != nil {
			errorDetail = errorDetail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	// Not found
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrDepartmentNotFound,
		apperrors.ErrProgramNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrSemesterNotFound,
		apperrors.ErrEnrollmentNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrAllocationNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound)

	// Uniqueness conflicts
	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrDepartmentCodeExists,
		apperrors.ErrProgramCodeExists,
		apperrors.ErrCourseCodeExists,
		apperrors.ErrAlreadyEnrolled,
		apperrors.ErrAlreadyAssigned,
		apperrors.ErrAlreadyAllocated):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists)

	// Dependent and capacity conflicts
	case apperrors.Is(err, apperrors.ErrDepartmentHasDependents,
		apperrors.ErrProgramHasEnrollments,
		apperrors.ErrCourseFull,
		apperrors.ErrInvalidStatusChange):
		respond(http.StatusConflict, dto.ErrorCodeResourceConflict)

	// Authentication
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials)
	case apperrors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken)
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken)
	case apperrors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound)
	case apperrors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden)

	// Authorization
	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden)

	// Bad input
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrNotALecturer,
		apperrors.ErrNotAStudent):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed)

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// HandleValidationError converts a request binding failure into a 400
// response. Field-level validation failures are expanded into readable
// per-field messages.
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			messages = append(messages, formatValidationError(fieldErr))
		}
		errorDetail = errorDetail.WithDetails(strings.Join(messages, "; "))
	} else {
		errorDetail = errorDetail.WithDetails(err.Error())
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gtfield":
		return e.Field() + " must be after " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
