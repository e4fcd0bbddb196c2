package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dopust-hr/leave-backend-go/internal/domain/auth"
	"github.com/dopust-hr/leave-backend-go/internal/domain/leave"
	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		BadRequest(w, "Invalid credentials", nil)
	case errors.Is(err, auth.ErrInvalidToken):
		Forbidden(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAuthenticationRequired):
		Forbidden(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserAlreadyExists):
		BadRequest(w, "User already exists", nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrInvalidUserID):
		BadRequest(w, "Invalid user ID", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveIDRequired):
		BadRequest(w, "Leave ID is required", nil)
	case errors.Is(err, leave.ErrInvalidLeaveID):
		BadRequest(w, "Invalid leave ID", nil)
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		BadRequest(w, "Unknown leave type", nil)
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, "Invalid request status", nil)
	case errors.Is(err, leave.ErrInvalidYear):
		BadRequest(w, "Invalid year", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "Server error")
	}
}
