package leave

import (
	"context"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	List(ctx context.Context) ([]LeaveType, error)
}

// RequestRepository - interface for requests table
type RequestRepository interface {
	// Create stores the request row and all of its leaves in one transaction.
	Create(ctx context.Context, request Request) (Request, error)
	ListByUserID(ctx context.Context, userID int64) ([]RequestWithLeaves, error)
	ListAll(ctx context.Context) ([]RequestWithLeaves, error)
	UpdateStatus(ctx context.Context, id int64, status RequestStatus) error
	Stats(ctx context.Context, filter StatsFilter) ([]UserLeaveStats, error)
}

// LeaveRepository - interface for leaves table
type LeaveRepository interface {
	ListAll(ctx context.Context) ([]LeaveListing, error)
	GetOwner(ctx context.Context, id int64) (LeaveOwner, error)
	Delete(ctx context.Context, id int64) error
}
