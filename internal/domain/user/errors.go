package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidUserID          = errors.New("invalid user id")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
