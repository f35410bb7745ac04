package timesheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"worklane/internal/domain"
	"worklane/internal/events"
	"worklane/internal/messaging/kafka"
	timesheeterrors "worklane/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetAll(ctx context.Context, actor domain.Principal) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, actor domain.Principal, id string) (TimesheetResponse, error)
	Update(ctx context.Context, actor domain.Principal, id string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Submit(ctx context.Context, actor domain.Principal, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, actor domain.Principal, id, comments string) (TimesheetResponse, error)
	Reject(ctx context.Context, actor domain.Principal, id, comments string) (TimesheetResponse, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateTimesheetRequest) (TimesheetResponse, error) {
	s.logger.Debug("create timesheet requested",
		zap.String("actor_id", actor.ID),
		zap.String("week_start", req.WeekStart),
	)

	if _, err := time.Parse("2006-01-02", req.WeekStart); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidWeekStart
	}
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByUserAndWeek(ctx, actor.ID, req.WeekStart); err == nil {
		return TimesheetResponse{}, timesheeterrors.ErrWeekAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimesheetResponse{}, err
	}

	t := &Timesheet{
		ID:         uuid.New(),
		UserID:     ownerID,
		WeekStart:  req.WeekStart,
		Entries:    req.Entries,
		TotalHours: req.TotalHours,
		Status:     StatusDraft,
	}
	if t.Entries == nil {
		t.Entries = []Entry{}
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Warn("create timesheet persist failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create timesheet commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("create timesheet success",
		zap.String("timesheet_id", t.ID.String()),
		zap.String("user_id", actor.ID),
		zap.String("week_start", req.WeekStart),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal) ([]TimesheetResponse, error) {
	var (
		timesheets []Timesheet
		err        error
	)
	if actor.CanReviewWorkflows() {
		timesheets, err = s.repo.FindAll(ctx)
	} else {
		timesheets, err = s.repo.FindAllByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(timesheets), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id string) (TimesheetResponse, error) {
	t, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !actor.CanReviewWorkflows() && t.UserID.String() != actor.ID {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, actor domain.Principal, id string, req UpdateTimesheetRequest) (TimesheetResponse, error) {
	s.logger.Debug("update timesheet requested",
		zap.String("timesheet_id", id),
		zap.String("actor_id", actor.ID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	// Drafts belong to their owner; anything past draft is reviewer
	// territory.
	if t.Status == StatusDraft {
		if t.UserID.String() != actor.ID && !actor.CanReviewWorkflows() {
			return TimesheetResponse{}, timesheeterrors.ErrNotOwner
		}
	} else if !actor.CanReviewWorkflows() {
		return TimesheetResponse{}, timesheeterrors.ErrNotEditable
	}

	if req.WeekStart != nil {
		if _, err := time.Parse("2006-01-02", *req.WeekStart); err != nil {
			return TimesheetResponse{}, timesheeterrors.ErrInvalidWeekStart
		}
		t.WeekStart = *req.WeekStart
	}
	if req.Entries != nil {
		t.Entries = *req.Entries
	}
	if req.TotalHours != nil {
		t.TotalHours = *req.TotalHours
	}

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update timesheet persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update timesheet commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("update timesheet success", zap.String("timesheet_id", id))
	return mapToResponse(*t), nil
}

func (s *service) Submit(ctx context.Context, actor domain.Principal, id string) (TimesheetResponse, error) {
	s.logger.Debug("submit timesheet requested",
		zap.String("timesheet_id", id),
		zap.String("actor_id", actor.ID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if t.UserID.String() != actor.ID {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
	}
	if _, ok := nextStatus(t.Status, ActionSubmit); !ok {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	ok, err := qtx.SubmitIfDraft(ctx, id, actor.ID, now)
	if err != nil {
		s.logger.Error("submit timesheet persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}
	if !ok {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit timesheet commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	t.Status = StatusSubmitted
	t.SubmittedAt = &now
	s.logger.Info("submit timesheet success", zap.String("timesheet_id", id))
	return mapToResponse(*t), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Principal, id, comments string) (TimesheetResponse, error) {
	return s.review(ctx, actor, id, ActionApprove, comments)
}

func (s *service) Reject(ctx context.Context, actor domain.Principal, id, comments string) (TimesheetResponse, error) {
	if comments == "" {
		return TimesheetResponse{}, timesheeterrors.ErrCommentsRequired
	}
	return s.review(ctx, actor, id, ActionReject, comments)
}

// review performs the terminal transition and writes the notification
// outbox row in the same transaction.
func (s *service) review(ctx context.Context, actor domain.Principal, id string, action Action, comments string) (TimesheetResponse, error) {
	s.logger.Debug("review timesheet requested",
		zap.String("timesheet_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("action", string(action)),
	)

	reviewerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	target, ok := nextStatus(t.Status, action)
	if !ok {
		s.logger.Warn("review timesheet invalid transition",
			zap.String("timesheet_id", id),
			zap.String("from_status", string(t.Status)),
			zap.String("action", string(action)),
		)
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	var commentsPtr *string
	if comments != "" {
		commentsPtr = &comments
	}

	applied, err := qtx.ReviewIfSubmitted(ctx, id, target, actor.ID, commentsPtr, now)
	if err != nil {
		s.logger.Error("review timesheet persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}
	if !applied {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}

	if err := s.enqueueReviewEvent(ctx, tx, t, target, actor.ID, comments, now); err != nil {
		s.logger.Error("enqueue timesheet review event failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review timesheet commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	t.Status = target
	t.ReviewedBy = &reviewerID
	t.ReviewedAt = &now
	t.Comments = commentsPtr
	s.logger.Info("review timesheet success",
		zap.String("timesheet_id", id),
		zap.String("status", string(target)),
	)
	return mapToResponse(*t), nil
}

func (s *service) enqueueReviewEvent(ctx context.Context, tx *sql.Tx, t *Timesheet, target Status, reviewerID, comments string, now time.Time) error {
	event := events.ReviewCompletedEvent{
		EventType:  events.EntityTimesheet + "." + string(target),
		EntityType: events.EntityTimesheet,
		EntityID:   t.ID.String(),
		OwnerID:    t.UserID.String(),
		ReviewerID: reviewerID,
		Decision:   string(target),
		Comments:   comments,
		OccurredAt: now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: events.EntityTimesheet,
		AggregateID:   t.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ReviewCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, actor domain.Principal, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return err
	}
	if t.UserID.String() != actor.ID {
		return timesheeterrors.ErrNotOwner
	}
	if t.Status != StatusDraft {
		return timesheeterrors.ErrDeleteNotDraft
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return timesheeterrors.ErrTimesheetNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete timesheet success", zap.String("timesheet_id", id))
	return nil
}

func (s *service) findByID(ctx context.Context, repo Repository, id string) (*Timesheet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, timesheeterrors.ErrInvalidTimesheetID
	}
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return t, nil
}
