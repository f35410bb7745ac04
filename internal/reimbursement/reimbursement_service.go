package reimbursement

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"worklane/internal/domain"
	"worklane/internal/events"
	"worklane/internal/messaging/kafka"
	reimbursementerrors "worklane/internal/reimbursement/errors"
	"worklane/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=reimbursement_service.go -destination=mock/reimbursement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateReimbursementRequest) (ReimbursementResponse, error)
	CreateWithFile(ctx context.Context, actor domain.Principal, amount float64, description string, receipt domain.FileDocument) (ReimbursementResponse, error)
	GetAll(ctx context.Context, actor domain.Principal) ([]ReimbursementResponse, error)
	DownloadReceipt(ctx context.Context, actor domain.Principal, id string) (domain.FileDocument, error)
	Approve(ctx context.Context, actor domain.Principal, id, comments string) (ReimbursementResponse, error)
	Reject(ctx context.Context, actor domain.Principal, id, comments string) (ReimbursementResponse, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("reimbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateReimbursementRequest) (ReimbursementResponse, error) {
	var receipt *domain.FileDocument
	if req.Receipt != nil && *req.Receipt != "" {
		// reject undecodable payloads now rather than at download time
		if _, err := base64.StdEncoding.DecodeString(*req.Receipt); err != nil {
			return ReimbursementResponse{}, apperror.InvalidField("receipt", "must be base64 encoded")
		}
		receipt = &domain.FileDocument{
			Filename:    "receipt",
			ContentType: "application/octet-stream",
			Data:        *req.Receipt,
		}
	}
	return s.create(ctx, actor, req.Amount, req.Description, receipt)
}

func (s *service) CreateWithFile(ctx context.Context, actor domain.Principal, amount float64, description string, receipt domain.FileDocument) (ReimbursementResponse, error) {
	return s.create(ctx, actor, amount, description, &receipt)
}

func (s *service) create(ctx context.Context, actor domain.Principal, amount float64, description string, receipt *domain.FileDocument) (ReimbursementResponse, error) {
	s.logger.Debug("create reimbursement requested",
		zap.String("actor_id", actor.ID),
		zap.Float64("amount", amount),
	)

	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return ReimbursementResponse{}, reimbursementerrors.ErrInvalidReimbursementID
	}

	m := &Reimbursement{
		ID:          uuid.New(),
		UserID:      ownerID,
		Amount:      amount,
		Description: description,
		Receipt:     receipt,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Warn("create reimbursement persist failed", zap.Error(err))
		return ReimbursementResponse{}, err
	}

	s.logger.Info("create reimbursement success",
		zap.String("reimbursement_id", m.ID.String()),
		zap.String("user_id", actor.ID),
	)
	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal) ([]ReimbursementResponse, error) {
	var (
		reimbursements []Reimbursement
		err            error
	)
	if actor.CanReviewWorkflows() {
		reimbursements, err = s.repo.FindAll(ctx)
	} else {
		reimbursements, err = s.repo.FindAllByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reimbursements), nil
}

func (s *service) DownloadReceipt(ctx context.Context, actor domain.Principal, id string) (domain.FileDocument, error) {
	m, err := s.findByID(ctx, id)
	if err != nil {
		return domain.FileDocument{}, err
	}
	if !actor.CanReviewWorkflows() && m.UserID.String() != actor.ID {
		return domain.FileDocument{}, reimbursementerrors.ErrReimbursementNotFound
	}
	if m.Receipt == nil {
		return domain.FileDocument{}, reimbursementerrors.ErrReceiptNotFound
	}
	return *m.Receipt, nil
}

func (s *service) Approve(ctx context.Context, actor domain.Principal, id, comments string) (ReimbursementResponse, error) {
	return s.review(ctx, actor, id, StatusApproved, comments)
}

func (s *service) Reject(ctx context.Context, actor domain.Principal, id, comments string) (ReimbursementResponse, error) {
	if comments == "" {
		return ReimbursementResponse{}, reimbursementerrors.ErrCommentsRequired
	}
	return s.review(ctx, actor, id, StatusRejected, comments)
}

func (s *service) review(ctx context.Context, actor domain.Principal, id string, target Status, comments string) (ReimbursementResponse, error) {
	s.logger.Debug("review reimbursement requested",
		zap.String("reimbursement_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("target_status", string(target)),
	)

	reviewerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return ReimbursementResponse{}, reimbursementerrors.ErrInvalidReimbursementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review reimbursement begin tx failed", zap.Error(err))
		return ReimbursementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m, err := s.findByID(ctx, id)
	if err != nil {
		return ReimbursementResponse{}, err
	}

	now := time.Now().UTC()
	var commentsPtr *string
	if comments != "" {
		commentsPtr = &comments
	}

	applied, err := qtx.ReviewIfPending(ctx, id, target, actor.ID, commentsPtr, now)
	if err != nil {
		s.logger.Error("review reimbursement persist failed", zap.String("reimbursement_id", id), zap.Error(err))
		return ReimbursementResponse{}, err
	}
	if !applied {
		return ReimbursementResponse{}, reimbursementerrors.ErrInvalidTransition
	}

	if err := s.enqueueReviewEvent(ctx, tx, m, target, actor.ID, comments, now); err != nil {
		s.logger.Error("enqueue reimbursement review event failed", zap.String("reimbursement_id", id), zap.Error(err))
		return ReimbursementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review reimbursement commit failed", zap.String("reimbursement_id", id), zap.Error(err))
		return ReimbursementResponse{}, err
	}

	m.Status = target
	m.ReviewedBy = &reviewerID
	m.ReviewedAt = &now
	m.Comments = commentsPtr
	s.logger.Info("review reimbursement success",
		zap.String("reimbursement_id", id),
		zap.String("status", string(target)),
	)
	return mapToResponse(*m), nil
}

func (s *service) enqueueReviewEvent(ctx context.Context, tx *sql.Tx, m *Reimbursement, target Status, reviewerID, comments string, now time.Time) error {
	event := events.ReviewCompletedEvent{
		EventType:  events.EntityReimbursement + "." + string(target),
		EntityType: events.EntityReimbursement,
		EntityID:   m.ID.String(),
		OwnerID:    m.UserID.String(),
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
		AggregateType: events.EntityReimbursement,
		AggregateID:   m.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ReviewCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, actor domain.Principal, id string) error {
	m, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if m.UserID.String() != actor.ID {
		return reimbursementerrors.ErrNotOwner
	}
	if m.Status != StatusPending {
		return reimbursementerrors.ErrDeleteNotPending
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return reimbursementerrors.ErrReimbursementNotFound
	}

	s.logger.Info("delete reimbursement success", zap.String("reimbursement_id", id))
	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*Reimbursement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reimbursementerrors.ErrInvalidReimbursementID
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reimbursementerrors.ErrReimbursementNotFound
		}
		return nil, err
	}
	return m, nil
}
