package document

import (
	"context"
	"errors"
	"slices"

	documenterrors "worklane/internal/document/errors"
	"worklane/internal/domain"
	"worklane/internal/project"
	"worklane/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	EntityUser    = "user"
	EntityProject = "project"
)

// Service attaches uploaded files to user and project records and
// serves them back by index.
//
//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	UploadUserDocument(ctx context.Context, actor domain.Principal, userID string, doc domain.FileDocument) (int, error)
	UploadProjectDocument(ctx context.Context, actor domain.Principal, projectID string, doc domain.FileDocument) (int, error)
	Download(ctx context.Context, actor domain.Principal, entityType, entityID string, docIndex int) (domain.FileDocument, error)
}

type service struct {
	users    user.Repository
	projects project.Repository
	logger   *zap.Logger
}

func NewService(users user.Repository, projects project.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{users: users, projects: projects, logger: l}
}

func (s *service) UploadUserDocument(ctx context.Context, actor domain.Principal, userID string, doc domain.FileDocument) (int, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, documenterrors.ErrInvalidEntityID
	}
	if !actor.CanReviewWorkflows() && actor.ID != userID {
		return 0, documenterrors.ErrNotOwnRecord
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, documenterrors.ErrDocumentNotFound
		}
		return 0, err
	}

	u.Documents = append(u.Documents, doc)
	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Error("upload user document persist failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("upload user document success",
		zap.String("user_id", userID),
		zap.String("filename", doc.Filename),
	)
	return len(u.Documents) - 1, nil
}

func (s *service) UploadProjectDocument(ctx context.Context, actor domain.Principal, projectID string, doc domain.FileDocument) (int, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return 0, documenterrors.ErrInvalidEntityID
	}
	if !actor.CanReviewWorkflows() {
		return 0, documenterrors.ErrNotOwnRecord
	}

	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, documenterrors.ErrDocumentNotFound
		}
		return 0, err
	}

	p.Documents = append(p.Documents, doc)
	if err := s.projects.Update(ctx, p); err != nil {
		s.logger.Error("upload project document persist failed", zap.String("project_id", projectID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("upload project document success",
		zap.String("project_id", projectID),
		zap.String("filename", doc.Filename),
	)
	return len(p.Documents) - 1, nil
}

func (s *service) Download(ctx context.Context, actor domain.Principal, entityType, entityID string, docIndex int) (domain.FileDocument, error) {
	if _, err := uuid.Parse(entityID); err != nil {
		return domain.FileDocument{}, documenterrors.ErrInvalidEntityID
	}
	if docIndex < 0 {
		return domain.FileDocument{}, documenterrors.ErrInvalidDocIndex
	}

	var docs []domain.FileDocument
	switch entityType {
	case EntityUser:
		if !actor.CanReviewWorkflows() && actor.ID != entityID {
			return domain.FileDocument{}, documenterrors.ErrDocumentNotFound
		}
		u, err := s.users.FindByID(ctx, entityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.FileDocument{}, documenterrors.ErrDocumentNotFound
			}
			return domain.FileDocument{}, err
		}
		docs = u.Documents
	case EntityProject:
		p, err := s.projects.FindByID(ctx, entityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.FileDocument{}, documenterrors.ErrDocumentNotFound
			}
			return domain.FileDocument{}, err
		}
		if !actor.CanReviewWorkflows() && !slices.Contains(p.TeamMembers, actor.ID) {
			return domain.FileDocument{}, documenterrors.ErrDocumentNotFound
		}
		docs = p.Documents
	default:
		return domain.FileDocument{}, documenterrors.ErrInvalidEntityType
	}

	if docIndex >= len(docs) {
		return domain.FileDocument{}, documenterrors.ErrDocumentNotFound
	}
	return docs[docIndex], nil
}
