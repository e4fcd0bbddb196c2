package leave

import "errors"

var (
	ErrLeaveNotFound     = errors.New("leave not found")
	ErrLeaveIDRequired   = errors.New("leave id is required")
	ErrInvalidLeaveID    = errors.New("invalid leave id")
	ErrRequestNotFound   = errors.New("request not found")
	ErrLeaveTypeNotFound = errors.New("unknown leave type")
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrInvalidYear       = errors.New("invalid year")
)
