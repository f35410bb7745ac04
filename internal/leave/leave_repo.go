package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindAllByUser(ctx context.Context, userID string) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	Delete(ctx context.Context, id string) (int64, error)

	// GetUserBalance reads the requester's balance through the current
	// transaction so the check and the later decrement see the same row.
	GetUserBalance(ctx context.Context, userID string) (float64, error)

	// ReviewIfPending flips pending to the target status and reports
	// false when the row was already reviewed. DeductBalanceIfSufficient
	// decrements only when the balance covers the request. Running both
	// in one transaction fences concurrent double-approval.
	ReviewIfPending(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error)
	DeductBalanceIfSufficient(ctx context.Context, userID string, days float64) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) GetUserBalance(ctx context.Context, userID string) (float64, error) {
	query := `SELECT leave_balance FROM users WHERE id = $1`

	var balance float64
	if err := r.querier().QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, gorm.ErrRecordNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (r *repository) ReviewIfPending(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
	query := `
UPDATE leaves
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

func (r *repository) DeductBalanceIfSufficient(ctx context.Context, userID string, days float64) (bool, error) {
	query := `
UPDATE users
SET leave_balance = leave_balance - $2, updated_at = NOW()
WHERE id = $1 AND leave_balance >= $2
`
	res, err := r.execer().ExecContext(ctx, query, userID, days)
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

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, _ := r.db.DB()
	return sqlDB
}
