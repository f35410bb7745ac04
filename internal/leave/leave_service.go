package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"worklane/internal/domain"
	"worklane/internal/events"
	leaveerrors "worklane/internal/leave/errors"
	"worklane/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor domain.Principal) ([]LeaveResponse, error)
	Approve(ctx context.Context, actor domain.Principal, id, comments string) (LeaveResponse, error)
	Reject(ctx context.Context, actor domain.Principal, id, comments string) (LeaveResponse, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actor.ID),
		zap.Float64("days", req.Days),
	)

	for _, d := range []string{req.StartDate, req.EndDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
		}
	}
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	balance, err := s.repo.GetUserBalance(ctx, actor.ID)
	if err != nil {
		s.logger.Error("create leave balance lookup failed", zap.String("user_id", actor.ID), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if balance < req.Days {
		s.logger.Warn("create leave insufficient balance",
			zap.String("user_id", actor.ID),
			zap.Float64("balance", balance),
			zap.Float64("days", req.Days),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &Leave{
		ID:        uuid.New(),
		UserID:    ownerID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Days:      req.Days,
		Reason:    req.Reason,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Warn("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", actor.ID),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if actor.CanReviewWorkflows() {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Principal, id, comments string) (LeaveResponse, error) {
	return s.review(ctx, actor, id, StatusApproved, comments)
}

func (s *service) Reject(ctx context.Context, actor domain.Principal, id, comments string) (LeaveResponse, error) {
	if comments == "" {
		return LeaveResponse{}, leaveerrors.ErrCommentsRequired
	}
	return s.review(ctx, actor, id, StatusRejected, comments)
}

// review flips the request out of pending, deducts the balance on
// approval, and writes the notification outbox row, all in one
// transaction. A concurrent reviewer loses the conditional update and
// gets ErrInvalidTransition instead of double-deducting.
func (s *service) review(ctx context.Context, actor domain.Principal, id string, target Status, comments string) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("target_status", string(target)),
	)

	reviewerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	var commentsPtr *string
	if comments != "" {
		commentsPtr = &comments
	}

	applied, err := qtx.ReviewIfPending(ctx, id, target, actor.ID, commentsPtr, now)
	if err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !applied {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	if target == StatusApproved {
		deducted, err := qtx.DeductBalanceIfSufficient(ctx, l.UserID.String(), l.Days)
		if err != nil {
			s.logger.Error("review leave balance deduction failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if !deducted {
			s.logger.Warn("review leave balance no longer sufficient",
				zap.String("leave_id", id),
				zap.String("user_id", l.UserID.String()),
				zap.Float64("days", l.Days),
			)
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	if err := s.enqueueReviewEvent(ctx, tx, l, target, actor.ID, comments, now); err != nil {
		s.logger.Error("enqueue leave review event failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Status = target
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.Comments = commentsPtr
	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", string(target)),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueueReviewEvent(ctx context.Context, tx *sql.Tx, l *Leave, target Status, reviewerID, comments string, now time.Time) error {
	event := events.ReviewCompletedEvent{
		EventType:  events.EntityLeave + "." + string(target),
		EntityType: events.EntityLeave,
		EntityID:   l.ID.String(),
		OwnerID:    l.UserID.String(),
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
		AggregateType: events.EntityLeave,
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ReviewCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, actor domain.Principal, id string) error {
	l, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if l.UserID.String() != actor.ID {
		return leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrDeleteNotPending
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return leaveerrors.ErrLeaveNotFound
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) findByID(ctx context.Context, repo Repository, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return l, nil
}
