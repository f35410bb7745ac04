package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"worklane/internal/leave"
	"worklane/internal/timesheet"
	"worklane/internal/user"

	"go.uber.org/zap"
)

// UserSummary accumulates approved timesheet totals for one user.
type UserSummary struct {
	TotalHours float64 `json:"total_hours"`
	Weeks      int     `json:"weeks"`
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	TimesheetSummary(ctx context.Context) (map[string]UserSummary, error)
	ProjectHours(ctx context.Context) (map[string]float64, error)
	ExportTimesheetsCSV(ctx context.Context) ([]byte, error)
	ExportLeavesCSV(ctx context.Context) ([]byte, error)
}

type service struct {
	timesheets timesheet.Repository
	leaves     leave.Repository
	users      user.Repository
	logger     *zap.Logger
}

func NewService(timesheets timesheet.Repository, leaves leave.Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{timesheets: timesheets, leaves: leaves, users: users, logger: l}
}

func (s *service) TimesheetSummary(ctx context.Context) (map[string]UserSummary, error) {
	timesheets, err := s.timesheets.FindAllByStatus(ctx, timesheet.StatusApproved)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]UserSummary)
	for _, t := range timesheets {
		userID := t.UserID.String()
		entry := summary[userID]
		entry.TotalHours += t.TotalHours
		entry.Weeks++
		summary[userID] = entry
	}

	s.logger.Debug("timesheet summary built",
		zap.Int("timesheets", len(timesheets)),
		zap.Int("users", len(summary)),
	)
	return summary, nil
}

func (s *service) ProjectHours(ctx context.Context) (map[string]float64, error) {
	timesheets, err := s.timesheets.FindAllByStatus(ctx, timesheet.StatusApproved)
	if err != nil {
		return nil, err
	}

	hours := make(map[string]float64)
	for _, t := range timesheets {
		for _, e := range t.Entries {
			if e.ProjectCode == "" {
				continue
			}
			hours[e.ProjectCode] += e.Hours()
		}
	}

	s.logger.Debug("project hours built",
		zap.Int("timesheets", len(timesheets)),
		zap.Int("projects", len(hours)),
	)
	return hours, nil
}

func (s *service) ExportTimesheetsCSV(ctx context.Context) ([]byte, error) {
	timesheets, err := s.timesheets.FindAllByStatus(ctx, timesheet.StatusApproved)
	if err != nil {
		return nil, err
	}
	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"user_id", "user_name", "week_start", "total_hours", "status"}); err != nil {
		return nil, err
	}
	for _, t := range timesheets {
		userID := t.UserID.String()
		record := []string{
			userID,
			names[userID],
			t.WeekStart,
			strconv.FormatFloat(t.TotalHours, 'f', -1, 64),
			string(t.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) ExportLeavesCSV(ctx context.Context) ([]byte, error) {
	leaves, err := s.leaves.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"user_id", "user_name", "start_date", "end_date", "days", "reason", "status"}); err != nil {
		return nil, err
	}
	for _, l := range leaves {
		userID := l.UserID.String()
		record := []string{
			userID,
			names[userID],
			l.StartDate,
			l.EndDate,
			strconv.FormatFloat(l.Days, 'f', -1, 64),
			l.Reason,
			string(l.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) userNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID.String()] = u.Name
	}
	return names, nil
}
