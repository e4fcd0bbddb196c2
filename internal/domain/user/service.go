package user

import "context"

type UserService interface {
	GetProfile(ctx context.Context, id int64) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	ToggleType(ctx context.Context, id int64) (UserResponse, error)
	PromoteByEmail(ctx context.Context, email string) (UserResponse, error)
}
