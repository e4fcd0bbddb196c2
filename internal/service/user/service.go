package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return user.NewUserResponses(users), nil
}

// ToggleType implements user.UserService.
func (s *UserServiceImpl) ToggleType(ctx context.Context, id int64) (user.UserResponse, error) {
	if id <= 0 {
		return user.UserResponse{}, user.ErrInvalidUserID
	}

	current, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.UpdateType(ctx, id, current.Type.Toggled())
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user type changed", "user_id", id, "from", current.Type.String(), "to", updated.Type.String())
	return user.NewUserResponse(updated), nil
}

// PromoteByEmail implements user.UserService.
func (s *UserServiceImpl) PromoteByEmail(ctx context.Context, email string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return user.UserResponse{}, err
	}
	if u.IsAdmin() {
		return user.NewUserResponse(u), nil
	}

	updated, err := s.UserRepository.UpdateType(ctx, u.ID, user.TypeAdmin)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}
