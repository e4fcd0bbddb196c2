package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dopust-hr/leave-backend-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	leave.LeaveTypeRepository
	leave.RequestRepository
	leave.LeaveRepository
	annualCap int
}

func NewLeaveService(
	leaveTypeRepository leave.LeaveTypeRepository,
	requestRepository leave.RequestRepository,
	leaveRepository leave.LeaveRepository,
	annualCap int,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveTypeRepository: leaveTypeRepository,
		RequestRepository:   requestRepository,
		LeaveRepository:     leaveRepository,
		annualCap:           annualCap,
	}
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, userID int64, req leave.CreateRequestRequest) (leave.CreateRequestResponse, error) {
	created, err := s.RequestRepository.Create(ctx, req.ToRequest(userID))
	if err != nil {
		return leave.CreateRequestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Info("leave request created", "request_id", created.ID, "user_id", userID, "leaves", len(created.Leaves))

	return leave.CreateRequestResponse{
		ID:         created.ID,
		Status:     string(created.Status),
		LeaveCount: len(created.Leaves),
	}, nil
}

// ListMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, userID int64) ([]leave.RequestWithLeaves, error) {
	requests, err := s.RequestRepository.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests of user %d: %w", userID, err)
	}
	return requests, nil
}

// ListAllRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAllRequests(ctx context.Context) ([]leave.RequestWithLeaves, error) {
	requests, err := s.RequestRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) error {
	status, err := leave.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	if err := s.RequestRepository.UpdateStatus(ctx, req.ID, status); err != nil {
		return fmt.Errorf("failed to update status of request %d: %w", req.ID, err)
	}

	slog.Info("leave request status updated", "request_id", req.ID, "status", string(status))
	return nil
}

// Stats implements leave.LeaveService.
func (s *LeaveServiceImpl) Stats(ctx context.Context, year *int) ([]leave.UserLeaveStats, error) {
	if year != nil && (*year < 1900 || *year > 9999) {
		return nil, fmt.Errorf("%w: %d", leave.ErrInvalidYear, *year)
	}

	stats, err := s.RequestRepository.Stats(ctx, leave.StatsFilter{
		AnnualCap: s.annualCap,
		Year:      year,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute leave stats: %w", err)
	}
	return stats, nil
}

// ListAllLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAllLeaves(ctx context.Context) ([]leave.LeaveListing, error) {
	leaves, err := s.LeaveRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leaves, nil
}

// DeleteLeave implements leave.LeaveService.
// Employees may only delete leaves of their own requests; a foreign leave is
// reported as not found.
func (s *LeaveServiceImpl) DeleteLeave(ctx context.Context, callerID int64, isAdmin bool, leaveID int64) error {
	if leaveID <= 0 {
		return leave.ErrInvalidLeaveID
	}

	if !isAdmin {
		owner, err := s.LeaveRepository.GetOwner(ctx, leaveID)
		if err != nil {
			return err
		}
		if owner.UserID != callerID {
			slog.Warn("leave delete denied", "leave_id", leaveID, "user_id", callerID)
			return leave.ErrLeaveNotFound
		}
	}

	if err := s.LeaveRepository.Delete(ctx, leaveID); err != nil {
		return err
	}

	slog.Info("leave deleted", "leave_id", leaveID, "user_id", callerID)
	return nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}
