package leave

import (
	"fmt"
	"strings"
	"time"
)

// LeaveType is a reference category such as vacation or sick leave.
type LeaveType struct {
	ID    int16  `json:"id"`
	Label string `json:"label"`
}

type RequestStatus string

const (
	RequestStatusInProgress RequestStatus = "in progress"
	RequestStatusAccepted   RequestStatus = "accepted"
	RequestStatusRejected   RequestStatus = "rejected"
)

var requestStatuses = []RequestStatus{
	RequestStatusInProgress,
	RequestStatusAccepted,
	RequestStatusRejected,
}

// ParseStatus matches s case-insensitively against the known statuses and
// returns the canonical lower-case value.
func ParseStatus(s string) (RequestStatus, error) {
	normalized := RequestStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range requestStatuses {
		if normalized == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// StatusValues lists the accepted status strings, in display order.
func StatusValues() []string {
	values := make([]string, 0, len(requestStatuses))
	for _, status := range requestStatuses {
		values = append(values, string(status))
	}
	return values
}

// Request entity
type Request struct {
	ID          int64
	UserID      int64
	SubmittedOn time.Time
	Status      RequestStatus
	Comment     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Leaves []Leave
}

// Leave is a single date range inside a request.
type Leave struct {
	ID          int64
	RequestID   int64
	LeaveTypeID int16
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// Days counts both boundary dates.
func (l Leave) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// LeaveOwner is the minimal projection used to authorize a delete.
type LeaveOwner struct {
	LeaveID   int64
	RequestID int64
	UserID    int64
}
