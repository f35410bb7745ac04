package timesheet

import "time"

type CreateTimesheetRequest struct {
	WeekStart  string  `json:"week_start" binding:"required"`
	Entries    []Entry `json:"entries" binding:"required"`
	TotalHours float64 `json:"total_hours" binding:"gte=0"`
}

type UpdateTimesheetRequest struct {
	WeekStart  *string  `json:"week_start"`
	Entries    *[]Entry `json:"entries"`
	TotalHours *float64 `json:"total_hours" binding:"omitempty,gte=0"`
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

type TimesheetResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	WeekStart   string  `json:"week_start"`
	Entries     []Entry `json:"entries"`
	TotalHours  float64 `json:"total_hours"`
	Status      string  `json:"status"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
	Comments    *string `json:"comments,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func mapToResponse(t Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:         t.ID.String(),
		UserID:     t.UserID.String(),
		WeekStart:  t.WeekStart,
		Entries:    t.Entries,
		TotalHours: t.TotalHours,
		Status:     string(t.Status),
		Comments:   t.Comments,
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if resp.Entries == nil {
		resp.Entries = []Entry{}
	}
	if t.SubmittedAt != nil {
		v := t.SubmittedAt.UTC().Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if t.ReviewedBy != nil {
		v := t.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if t.ReviewedAt != nil {
		v := t.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(timesheets []Timesheet) []TimesheetResponse {
	resp := make([]TimesheetResponse, len(timesheets))
	for i, t := range timesheets {
		resp[i] = mapToResponse(t)
	}
	return resp
}
