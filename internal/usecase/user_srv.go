package usecase

import (
	"context"

	"movie-review/internal/data/repository"
	"movie-review/internal/dto/response"
	"movie-review/pkg/apperror"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, callerID string) (*response.MeResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, callerID string) (*response.MeResponse, error) {
	id, err := parseCaller(callerID)
	if err != nil {
		us.log.Warn("Invalid caller ID", zap.String("user_id", callerID))
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to get profile", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	return &response.MeResponse{User: response.UserToResponse(user)}, nil
}
