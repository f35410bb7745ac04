package auth

import (
	"context"
	"os"
	"strconv"
	"time"

	autherrors "worklane/internal/auth/errors"
	"worklane/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTLMinutes = 480

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	GetMe(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	users  user.Service
	repo   user.Repository
	logger *zap.Logger
}

func NewService(users user.Service, repo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	s.logger.Debug("register requested", zap.String("email", req.Email))

	created, err := s.users.Create(ctx, user.CreateUserRequest{
		Email:              req.Email,
		Password:           req.Password,
		Name:               req.Name,
		Role:               req.Role,
		DateOfJoining:      req.DateOfJoining,
		DateOfBirth:        req.DateOfBirth,
		Designation:        req.Designation,
		Practice:           req.Practice,
		ReportingManagerID: req.ReportingManagerID,
	})
	if err != nil {
		return AuthResponse{}, err
	}

	token, err := generateToken(created.ID, created.Role, tokenTTL())
	if err != nil {
		s.logger.Error("register token generation failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("register success", zap.String("user_id", created.ID))
	return AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        created,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// same failure for unknown email and bad password
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := generateToken(u.ID.String(), u.Role, tokenTTL())
	if err != nil {
		s.logger.Error("login token generation failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))

	resp, err := s.users.GetByID(ctx, u.ID.String())
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        resp,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return user.UserResponse{}, autherrors.ErrPrincipalNotFound
	}
	resp, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, autherrors.ErrPrincipalNotFound
	}
	return resp, nil
}

func tokenTTL() time.Duration {
	minutes := defaultTokenTTLMinutes
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	return time.Duration(minutes) * time.Minute
}

func generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
