package invoice

import (
	"context"
	"errors"

	invoiceerrors "worklane/internal/invoice/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetAll(ctx context.Context) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceResponse, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (InvoiceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error) {
	s.logger.Debug("create invoice requested", zap.String("project_id", req.ProjectID))

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidProjectID
	}

	i := &Invoice{
		ID:             uuid.New(),
		ProjectID:      projectID,
		Milestone:      req.Milestone,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		Status:         StatusDraft,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		s.logger.Warn("create invoice persist failed", zap.Error(err))
		return InvoiceResponse{}, err
	}

	s.logger.Info("create invoice success",
		zap.String("invoice_id", i.ID.String()),
		zap.String("project_id", req.ProjectID),
	)
	return mapToResponse(*i), nil
}

func (s *service) GetAll(ctx context.Context) ([]InvoiceResponse, error) {
	invoices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(invoices), nil
}

func (s *service) GetByID(ctx context.Context, id string) (InvoiceResponse, error) {
	i, err := s.findByID(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return mapToResponse(*i), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	s.logger.Debug("update invoice requested", zap.String("invoice_id", id))

	i, err := s.findByID(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	if req.Milestone != nil {
		i.Milestone = req.Milestone
	}
	if req.EstimatedHours != nil {
		i.EstimatedHours = *req.EstimatedHours
	}
	if req.EstimatedCost != nil {
		i.EstimatedCost = *req.EstimatedCost
	}
	if req.ActualHours != nil {
		i.ActualHours = *req.ActualHours
	}
	if req.ActualCost != nil {
		i.ActualCost = *req.ActualCost
	}
	if req.Status != nil {
		next := Status(*req.Status)
		if !validStatus(next) {
			return InvoiceResponse{}, invoiceerrors.ErrInvalidStatus
		}
		i.Status = next
	}

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("update invoice persist failed", zap.String("invoice_id", id), zap.Error(err))
		return InvoiceResponse{}, err
	}

	s.logger.Info("update invoice success", zap.String("invoice_id", id))
	return mapToResponse(*i), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invoiceerrors.ErrInvalidInvoiceID
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return invoiceerrors.ErrInvoiceNotFound
	}

	s.logger.Info("delete invoice success", zap.String("invoice_id", id))
	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invoiceerrors.ErrInvalidInvoiceID
	}
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoiceerrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return i, nil
}
