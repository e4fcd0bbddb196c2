package leave

import (
	"context"
)

type LeaveService interface {
	// Request
	CreateRequest(ctx context.Context, userID int64, req CreateRequestRequest) (CreateRequestResponse, error)
	ListMyRequests(ctx context.Context, userID int64) ([]RequestWithLeaves, error)
	ListAllRequests(ctx context.Context) ([]RequestWithLeaves, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error
	Stats(ctx context.Context, year *int) ([]UserLeaveStats, error)
	// Leave
	ListAllLeaves(ctx context.Context) ([]LeaveListing, error)
	DeleteLeave(ctx context.Context, callerID int64, isAdmin bool, leaveID int64) error
	// Type
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
}
