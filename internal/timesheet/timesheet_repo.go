package timesheet

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	FindAll(ctx context.Context) ([]Timesheet, error)
	FindAllByUser(ctx context.Context, userID string) ([]Timesheet, error)
	FindAllByStatus(ctx context.Context, status Status) ([]Timesheet, error)
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	FindByUserAndWeek(ctx context.Context, userID, weekStart string) (*Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
	Delete(ctx context.Context, id string) (int64, error)

	// SubmitIfDraft and ReviewIfSubmitted are conditional transitions:
	// they report false when the row was not in the required state, which
	// fences concurrent double-submission/review.
	SubmitIfDraft(ctx context.Context, id, ownerID string, at time.Time) (bool, error)
	ReviewIfSubmitted(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Timesheet, error) {
	var timesheets []Timesheet
	err := r.db.WithContext(ctx).
		Order("week_start DESC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Timesheet, error) {
	var timesheets []Timesheet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *repository) FindAllByStatus(ctx context.Context, status Status) ([]Timesheet, error) {
	var timesheets []Timesheet
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("week_start ASC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindByUserAndWeek(ctx context.Context, userID, weekStart string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&t, "week_start = ?", weekStart).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Timesheet{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) SubmitIfDraft(ctx context.Context, id, ownerID string, at time.Time) (bool, error) {
	query := `
UPDATE timesheets
SET status = $4, submitted_at = $3, updated_at = $3
WHERE id = $1 AND user_id = $2 AND status = $5
`
	res, err := r.execer().ExecContext(ctx, query, id, ownerID, at, StatusSubmitted, StatusDraft)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *repository) ReviewIfSubmitted(ctx context.Context, id string, target Status, reviewerID string, comments *string, at time.Time) (bool, error) {
	query := `
UPDATE timesheets
SET status = $2, reviewed_by = $3, reviewed_at = $4, comments = $5, updated_at = $4
WHERE id = $1 AND status = $6
`
	res, err := r.execer().ExecContext(ctx, query, id, target, reviewerID, at, comments, StatusSubmitted)
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
