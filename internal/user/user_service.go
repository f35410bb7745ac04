package user

import (
	"context"
	"database/sql"

	"worklane/internal/domain"
	usererrors "worklane/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actor domain.Principal, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested", zap.String("email", req.Email), zap.String("role", req.Role))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash failed", zap.Error(err))
		return UserResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}

	u := &User{
		ID:            uuid.New(),
		Email:         req.Email,
		Password:      string(hashed),
		Name:          req.Name,
		Role:          role,
		DateOfJoining: req.DateOfJoining,
		DateOfBirth:   req.DateOfBirth,
		Designation:   req.Designation,
		Practice:      req.Practice,
		LeaveBalance:  20,
		Documents:     DocumentList{},
	}
	if req.ReportingManagerID != nil {
		managerID, err := uuid.Parse(*req.ReportingManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidManagerID
		}
		u.ReportingManagerID = &managerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		s.logger.Warn("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("create user success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// mutableFields is the per-role allow-list for partial updates. Admin may
// touch everything; a manager only a report's leave balance.
var mutableFields = map[string]map[string]bool{
	domain.RoleAdmin: {
		"email": true, "password": true, "name": true, "role": true,
		"date_of_joining": true, "date_of_birth": true, "designation": true,
		"practice": true, "reporting_manager_id": true, "leave_balance": true,
	},
	domain.RoleManager: {
		"leave_balance": true,
	},
}

func requestedFields(req UpdateUserRequest) []string {
	var fields []string
	if req.Email != nil {
		fields = append(fields, "email")
	}
	if req.Password != nil {
		fields = append(fields, "password")
	}
	if req.Name != nil {
		fields = append(fields, "name")
	}
	if req.Role != nil {
		fields = append(fields, "role")
	}
	if req.DateOfJoining != nil {
		fields = append(fields, "date_of_joining")
	}
	if req.DateOfBirth != nil {
		fields = append(fields, "date_of_birth")
	}
	if req.Designation != nil {
		fields = append(fields, "designation")
	}
	if req.Practice != nil {
		fields = append(fields, "practice")
	}
	if req.ReportingManagerID != nil {
		fields = append(fields, "reporting_manager_id")
	}
	if req.LeaveBalance != nil {
		fields = append(fields, "leave_balance")
	}
	return fields
}

func (s *service) Update(ctx context.Context, actor domain.Principal, id string, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested",
		zap.String("user_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("actor_role", actor.Role),
	)

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	allowed := mutableFields[actor.Role]
	for _, field := range requestedFields(req) {
		if !allowed[field] {
			s.logger.Warn("update user field not allowed",
				zap.String("actor_role", actor.Role),
				zap.String("field", field),
			)
			return UserResponse{}, usererrors.ErrFieldNotAllowed
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.Password = string(hashed)
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.DateOfJoining != nil {
		u.DateOfJoining = req.DateOfJoining
	}
	if req.DateOfBirth != nil {
		u.DateOfBirth = req.DateOfBirth
	}
	if req.Designation != nil {
		u.Designation = req.Designation
	}
	if req.Practice != nil {
		u.Practice = req.Practice
	}
	if req.ReportingManagerID != nil {
		managerID, err := uuid.Parse(*req.ReportingManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidManagerID
		}
		u.ReportingManagerID = &managerID
	}
	if req.LeaveBalance != nil {
		u.LeaveBalance = *req.LeaveBalance
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return usererrors.ErrUserNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}
