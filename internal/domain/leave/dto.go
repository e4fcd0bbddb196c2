package leave

import (
	"fmt"
	"strings"

	"github.com/dopust-hr/leave-backend-go/internal/pkg/validator"
)

type CreateLeaveItem struct {
	Reason    string `json:"reason" validate:"max=500"`
	Type      int16  `json:"type" validate:"gt=0"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
}

type CreateRequestRequest struct {
	Comment *string           `json:"comment,omitempty" validate:"omitempty,max=1000"`
	Leaves  []CreateLeaveItem `json:"leaves" validate:"min=1,dive"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		tagErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, tagErrs...)
	}

	// Date order, only when both dates parsed
	for i, item := range r.Leaves {
		start, okStart := validator.IsValidDate(item.StartDate)
		end, okEnd := validator.IsValidDate(item.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("leaves[%d].end_date", i),
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToRequest converts a validated payload into a Request owned by userID.
func (r *CreateRequestRequest) ToRequest(userID int64) Request {
	request := Request{
		UserID:  userID,
		Status:  RequestStatusInProgress,
		Comment: r.Comment,
		Leaves:  make([]Leave, 0, len(r.Leaves)),
	}
	for _, item := range r.Leaves {
		start, _ := validator.IsValidDate(item.StartDate)
		end, _ := validator.IsValidDate(item.EndDate)
		request.Leaves = append(request.Leaves, Leave{
			LeaveTypeID: item.Type,
			StartDate:   start,
			EndDate:     end,
			Reason:      item.Reason,
		})
	}
	return request
}

type CreateRequestResponse struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	LeaveCount int    `json:"leave_count"`
}

type UpdateStatusRequest struct {
	ID     int64  `json:"id" validate:"gt=0"`
	Status string `json:"status" validate:"required"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		tagErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, tagErrs...)
	}

	if !validator.IsEmpty(r.Status) {
		if _, err := ParseStatus(r.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(StatusValues(), ", "),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveItem is a leave nested inside a grouped request listing.
type LeaveItem struct {
	ID        int64  `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	LeaveType string `json:"leave_type"`
}

type RequestWithLeaves struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Email       string      `json:"email,omitempty"`
	FirstName   string      `json:"first_name,omitempty"`
	LastName    string      `json:"last_name,omitempty"`
	SubmittedOn string      `json:"submitted_on"`
	Status      string      `json:"status"`
	Comment     *string     `json:"comment"`
	Leaves      []LeaveItem `json:"leaves"`
}

// LeaveListing is one row of the flat admin view.
type LeaveListing struct {
	LeaveID   int64  `json:"leave_id"`
	RequestID int64  `json:"request_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

type UserLeaveStats struct {
	UserID       int64  `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ApprovedDays int    `json:"approved_days"`
	CountedDays  int    `json:"counted_days"`
}

// StatsFilter narrows the statistics query.
type StatsFilter struct {
	AnnualCap int
	Year      *int
}
