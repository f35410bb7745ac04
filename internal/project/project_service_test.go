package project

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"worklane/internal/domain"
	projecterrors "worklane/internal/project/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn           func(ctx context.Context, p *Project) error
	findAllFn          func(ctx context.Context) ([]Project, error)
	findAllForMemberFn func(ctx context.Context, userID string) ([]Project, error)
	findByIDFn         func(ctx context.Context, id string) (*Project, error)
	updateFn           func(ctx context.Context, p *Project) error
	deleteFn           func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Project) error {
	return f.createFn(ctx, p)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Project, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllForMember(ctx context.Context, userID string) ([]Project, error) {
	return f.findAllForMemberFn(ctx, userID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Project, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, p *Project) error {
	return f.updateFn(ctx, p)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}

func TestService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	managerID := uuid.New().String()
	var created *Project
	repo := &fakeRepo{
		createFn: func(ctx context.Context, p *Project) error {
			created = p
			return nil
		},
	}

	svc := NewService(db, repo)
	resp, err := svc.Create(context.Background(), CreateProjectRequest{
		ProjectCode:      "PRJ-100",
		Description:      "Platform rebuild",
		ProjectManagerID: managerID,
		EstimatedHours:   320,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "PRJ-100", resp.ProjectCode)
	assert.Equal(t, managerID, resp.ProjectManagerID)
	assert.NotNil(t, resp.SubCodes)
	assert.NotNil(t, resp.TeamMembers)
	assert.NotNil(t, resp.Milestones)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.Create(context.Background(), CreateProjectRequest{
		ProjectCode:      "PRJ-101",
		Description:      "x",
		ProjectManagerID: "not-a-uuid",
	})
	assert.ErrorIs(t, err, projecterrors.ErrInvalidManagerID)
}

func TestService_Create_DuplicateCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, p *Project) error {
			return errors.New(`duplicate key value violates unique constraint "uq_projects_code"`)
		},
	}

	svc := NewService(db, repo)
	_, err = svc.Create(context.Background(), CreateProjectRequest{
		ProjectCode:      "PRJ-100",
		Description:      "Platform rebuild",
		ProjectManagerID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, projecterrors.ErrProjectCodeExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_Scoping(t *testing.T) {
	memberID := uuid.New().String()
	all := []Project{
		{ID: uuid.New(), ProjectCode: "PRJ-1", ProjectManagerID: uuid.New()},
		{ID: uuid.New(), ProjectCode: "PRJ-2", ProjectManagerID: uuid.New()},
	}
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]Project, error) {
			return all, nil
		},
		findAllForMemberFn: func(ctx context.Context, userID string) ([]Project, error) {
			assert.Equal(t, memberID, userID)
			return all[:1], nil
		},
	}

	svc := NewService(nil, repo)

	got, err := svc.GetAll(context.Background(), domain.Principal{ID: uuid.New().String(), Role: domain.RoleManager})
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.GetAll(context.Background(), domain.Principal{ID: memberID, Role: domain.RoleEmployee})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "PRJ-1", got[0].ProjectCode)
}

func TestService_Update_Patch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	existing := &Project{
		ID:               uuid.New(),
		ProjectCode:      "PRJ-100",
		Description:      "old description",
		ProjectManagerID: uuid.New(),
		EstimatedHours:   100,
	}
	var updated *Project
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Project, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, p *Project) error {
			updated = p
			return nil
		},
	}

	newDesc := "new description"
	member := uuid.New().String()
	svc := NewService(db, repo)
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdateProjectRequest{
		Description: &newDesc,
		TeamMembers: &[]string{member},
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, newDesc, resp.Description)
	assert.Equal(t, []string{member}, resp.TeamMembers)
	// untouched fields survive the patch
	assert.Equal(t, "PRJ-100", resp.ProjectCode)
	assert.Equal(t, 100.0, resp.EstimatedHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Project, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)
	_, err = svc.Update(context.Background(), uuid.New().String(), UpdateProjectRequest{})
	assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.Update(context.Background(), "bad-id", UpdateProjectRequest{})
	assert.ErrorIs(t, err, projecterrors.ErrInvalidProjectID)
}

func TestService_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	deleted := int64(1)
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			d := deleted
			deleted = 0
			return d, nil
		},
	}

	svc := NewService(db, repo)
	assert.NoError(t, svc.Delete(context.Background(), uuid.New().String()))

	err = svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
