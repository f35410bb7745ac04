package project

import (
	"context"
	"database/sql"

	"worklane/internal/domain"
	projecterrors "worklane/internal/project/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context, actor domain.Principal) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	s.logger.Debug("create project requested", zap.String("project_code", req.ProjectCode))

	managerID, err := uuid.Parse(req.ProjectManagerID)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidManagerID
	}

	p := &Project{
		ID:               uuid.New(),
		ProjectCode:      req.ProjectCode,
		Description:      req.Description,
		ProjectManagerID: managerID,
		EstimatedHours:   req.EstimatedHours,
		SubCodes:         req.SubCodes,
		TeamMembers:      req.TeamMembers,
		Documents:        []domain.FileDocument{},
		Milestones:       req.Milestones,
	}
	if p.SubCodes == nil {
		p.SubCodes = []SubCode{}
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	if p.Milestones == nil {
		p.Milestones = []Milestone{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Warn("create project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success",
		zap.String("project_id", p.ID.String()),
		zap.String("project_code", p.ProjectCode),
	)
	return mapToResponse(*p), nil
}

// GetAll scopes the listing: admins and managers see every project,
// employees only those they are a team member of.
func (s *service) GetAll(ctx context.Context, actor domain.Principal) ([]ProjectResponse, error) {
	var (
		projects []Project
		err      error
	)
	if actor.CanReviewWorkflows() {
		projects, err = s.repo.FindAll(ctx)
	} else {
		projects, err = s.repo.FindAllForMember(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(projects), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	s.logger.Debug("update project requested", zap.String("project_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ProjectManagerID != nil {
		managerID, err := uuid.Parse(*req.ProjectManagerID)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidManagerID
		}
		p.ProjectManagerID = managerID
	}
	if req.EstimatedHours != nil {
		p.EstimatedHours = *req.EstimatedHours
	}
	if req.SubCodes != nil {
		p.SubCodes = *req.SubCodes
	}
	if req.TeamMembers != nil {
		p.TeamMembers = *req.TeamMembers
	}
	if req.Milestones != nil {
		p.Milestones = *req.Milestones
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed", zap.String("project_id", id), zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update project commit failed", zap.String("project_id", id), zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("update project success", zap.String("project_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return projecterrors.ErrInvalidProjectID
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
		return projecterrors.ErrProjectNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete project success", zap.String("project_id", id))
	return nil
}
