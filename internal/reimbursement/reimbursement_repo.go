package reimbursement

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=reimbursement_repo.go -destination=mock/reimbursement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Reimbursement) error
	FindAll(ctx context.Context) ([]Reimbursement, error)
	FindAllByUser(ctx context.Context, userID string) ([]Reimbursement, error)
	FindByID(ctx context.Context, id string) (*Reimbursement, error)
	Delete(ctx context.Context, id string) (int64, error)

	// ReviewIfPending reports false when the row was already reviewed,
	// fencing concurrent double-review.
	ReviewIfPending(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, m *Reimbursement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Reimbursement, error) {
	var reimbursements []Reimbursement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reimbursements).Error
	return reimbursements, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Reimbursement, error) {
	var reimbursements []Reimbursement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reimbursements).Error
	return reimbursements, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Reimbursement, error) {
	var m Reimbursement
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Reimbursement{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) ReviewIfPending(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
	query := `
UPDATE reimbursements
SET status = $2, reviewed_by = $3, reviewed_at = $4, comments = $5, updated_at = $4
WHERE id = $1 AND status = $6
`
	res, err := r.execer().ExecContext(ctx, query, id, target, reviewerID, at, comments, StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, _ := r.db.DB()
	return sqlDB
}
