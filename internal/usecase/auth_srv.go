package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/apperror"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Seed account created when SEED_DEFAULT_USER is enabled.
const (
	DefaultUserEmail    = "admin@example.com"
	DefaultUserPassword = "password123"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	EnsureDefaultUser(ctx context.Context) error
}

type authService struct {
	repo          *repository.Repository
	tokens        *utils.TokenIssuer
	clock         clockwork.Clock
	checkPassword func(password, hash string) bool
	log           *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *utils.TokenIssuer,
	clock clockwork.Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:          repo,
		tokens:        tokens,
		clock:         clock,
		checkPassword: utils.CheckPasswordHash,
		log:           log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Validation failed", errs)
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("Failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("User already exists")
	}

	user, err := s.createUser(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Validation failed", errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, apperror.Internal("Failed to find user", err)
	}

	// unknown emails still pay for a bcrypt comparison
	hash := utils.DummyPasswordHash()
	if user != nil {
		hash = user.PasswordHash
	}
	if !s.checkPassword(req.Password, hash) || user == nil {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issue(user)
}

// EnsureDefaultUser creates the seed account unless it already exists.
func (s *authService) EnsureDefaultUser(ctx context.Context) error {
	existing, err := s.repo.User.FindByEmail(ctx, DefaultUserEmail)
	if err != nil {
		return apperror.Internal("Failed to check default user", err)
	}
	if existing != nil {
		s.log.Debug("Default user already present")
		return nil
	}

	user, err := s.createUser(ctx, DefaultUserEmail, DefaultUserPassword)
	if apperror.Is(err, apperror.TypeConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info("Default user created", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) createUser(ctx context.Context, email, password string) (*entity.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("Failed to process password", err)
	}

	now := s.clock.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Internal("Failed to create account", err)
	}
	return user, nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal("Failed to issue token", err)
	}
	return &response.AuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Emails are stored and matched exactly as given, case included.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
