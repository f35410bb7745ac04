package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"worklane/internal/domain"
	"worklane/internal/events"
	leaveerrors "worklane/internal/leave/errors"
	"worklane/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, l *Leave) error
	findAllFn         func(ctx context.Context) ([]Leave, error)
	findAllByUserFn   func(ctx context.Context, userID string) ([]Leave, error)
	findByIDFn        func(ctx context.Context, id string) (*Leave, error)
	deleteFn          func(ctx context.Context, id string) (int64, error)
	getUserBalanceFn  func(ctx context.Context, userID string) (float64, error)
	reviewIfPendingFn func(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error)
	deductBalanceFn   func(ctx context.Context, userID string, days float64) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f }
func (f *fakeRepo) Create(ctx context.Context, l *Leave) error { return f.createFn(ctx, l) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Leave, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllByUser(ctx context.Context, userID string) ([]Leave, error) {
	return f.findAllByUserFn(ctx, userID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Leave, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) GetUserBalance(ctx context.Context, userID string) (float64, error) {
	return f.getUserBalanceFn(ctx, userID)
}
func (f *fakeRepo) ReviewIfPending(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
	return f.reviewIfPendingFn(ctx, id, target, reviewerID, comments, at)
}
func (f *fakeRepo) DeductBalanceIfSufficient(ctx context.Context, userID string, days float64) (bool, error) {
	return f.deductBalanceFn(ctx, userID, days)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListDue(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestService_Create_InsufficientBalance(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	actor := domain.Principal{ID: uuid.New().String(), Role: domain.RoleEmployee}
	repo := &fakeRepo{
		getUserBalanceFn: func(ctx context.Context, userID string) (float64, error) { return 3, nil },
	}

	svc := NewService(db, repo, &fakeOutbox{})

	_, err := svc.Create(context.Background(), actor, CreateLeaveRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Days:      5,
		Reason:    "vacation",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
}

func TestService_Create(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	actor := domain.Principal{ID: uuid.New().String(), Role: domain.RoleEmployee}
	var saved Leave
	repo := &fakeRepo{
		getUserBalanceFn: func(ctx context.Context, userID string) (float64, error) { return 20, nil },
		createFn:         func(ctx context.Context, l *Leave) error { saved = *l; return nil },
	}

	svc := NewService(db, repo, &fakeOutbox{})

	resp, err := svc.Create(context.Background(), actor, CreateLeaveRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Days:      5,
		Reason:    "vacation",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(StatusPending), resp.Status)
	assert.Equal(t, actor.ID, saved.UserID.String())

	_, err = svc.Create(context.Background(), actor, CreateLeaveRequest{
		StartDate: "next monday",
		EndDate:   "2026-09-11",
		Days:      5,
		Reason:    "vacation",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestService_Approve_DeductsBalance(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	reviewer := domain.Principal{ID: uuid.New().String(), Role: domain.RoleManager}
	l := &Leave{ID: uuid.New(), UserID: uuid.New(), Days: 5, Status: StatusPending}

	var deductedFor string
	var deductedDays float64
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) { return l, nil },
		reviewIfPendingFn: func(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
			assert.Equal(t, StatusApproved, target)
			return true, nil
		},
		deductBalanceFn: func(ctx context.Context, userID string, days float64) (bool, error) {
			deductedFor = userID
			deductedDays = days
			return true, nil
		},
	}
	outbox := &fakeOutbox{}

	svc := NewService(db, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Approve(context.Background(), reviewer, l.ID.String(), "")
	assert.NoError(t, err)
	assert.Equal(t, string(StatusApproved), resp.Status)
	assert.Equal(t, l.UserID.String(), deductedFor)
	assert.Equal(t, 5.0, deductedDays)

	if assert.Len(t, outbox.created, 1) {
		var payload events.ReviewCompletedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &payload))
		assert.Equal(t, events.EntityLeave, payload.EntityType)
		assert.Equal(t, events.DecisionApproved, payload.Decision)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_BalanceRaceAborts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	reviewer := domain.Principal{ID: uuid.New().String(), Role: domain.RoleManager}
	l := &Leave{ID: uuid.New(), UserID: uuid.New(), Days: 15, Status: StatusPending}

	outbox := &fakeOutbox{}
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) { return l, nil },
		reviewIfPendingFn: func(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
			return true, nil
		},
		deductBalanceFn: func(ctx context.Context, userID string, days float64) (bool, error) {
			// balance dropped below the requested days since creation
			return false, nil
		},
	}

	svc := NewService(db, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), reviewer, l.ID.String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	assert.Empty(t, outbox.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_AlreadyReviewed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	reviewer := domain.Principal{ID: uuid.New().String(), Role: domain.RoleManager}
	l := &Leave{ID: uuid.New(), UserID: uuid.New(), Days: 5, Status: StatusPending}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) { return l, nil },
		reviewIfPendingFn: func(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(db, repo, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), reviewer, l.ID.String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Reject_RequiresComments(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeOutbox{})

	reviewer := domain.Principal{ID: uuid.New().String(), Role: domain.RoleAdmin}
	_, err := svc.Reject(context.Background(), reviewer, uuid.New().String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrCommentsRequired)
}

func TestService_Delete_Rules(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := domain.Principal{ID: uuid.New().String(), Role: domain.RoleEmployee}
	l := &Leave{ID: uuid.New(), UserID: uuid.MustParse(owner.ID), Status: StatusApproved}
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) { return l, nil },
		deleteFn:   func(ctx context.Context, id string) (int64, error) { return 1, nil },
	}

	svc := NewService(db, repo, &fakeOutbox{})

	stranger := domain.Principal{ID: uuid.New().String(), Role: domain.RoleEmployee}
	err := svc.Delete(context.Background(), stranger, l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)

	err = svc.Delete(context.Background(), owner, l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrDeleteNotPending)

	l.Status = StatusPending
	assert.NoError(t, svc.Delete(context.Background(), owner, l.ID.String()))
}
