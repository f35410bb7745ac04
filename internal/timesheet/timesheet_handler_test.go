package timesheet_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"worklane/internal/domain"
	"worklane/internal/middleware"
	"worklane/internal/timesheet"
	timesheeterrors "worklane/internal/timesheet/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

func setPrincipal(c *gin.Context, id, role string) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, role)
	c.Set(middleware.CtxEmail, "user@example.com")
	c.Set(middleware.CtxName, "Test User")
}

type fakeTimesheetService struct {
	createFn  func(ctx context.Context, actor domain.Principal, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error)
	getAllFn  func(ctx context.Context, actor domain.Principal) ([]timesheet.TimesheetResponse, error)
	getByIDFn func(ctx context.Context, actor domain.Principal, id string) (timesheet.TimesheetResponse, error)
	updateFn  func(ctx context.Context, actor domain.Principal, id string, req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetResponse, error)
	submitFn  func(ctx context.Context, actor domain.Principal, id string) (timesheet.TimesheetResponse, error)
	approveFn func(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error)
	rejectFn  func(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error)
	deleteFn  func(ctx context.Context, actor domain.Principal, id string) error
}

func (f *fakeTimesheetService) Create(ctx context.Context, actor domain.Principal, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeTimesheetService) GetAll(ctx context.Context, actor domain.Principal) ([]timesheet.TimesheetResponse, error) {
	return f.getAllFn(ctx, actor)
}
func (f *fakeTimesheetService) GetByID(ctx context.Context, actor domain.Principal, id string) (timesheet.TimesheetResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}
func (f *fakeTimesheetService) Update(ctx context.Context, actor domain.Principal, id string, req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	return f.updateFn(ctx, actor, id, req)
}
func (f *fakeTimesheetService) Submit(ctx context.Context, actor domain.Principal, id string) (timesheet.TimesheetResponse, error) {
	return f.submitFn(ctx, actor, id)
}
func (f *fakeTimesheetService) Approve(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error) {
	return f.approveFn(ctx, actor, id, comments)
}
func (f *fakeTimesheetService) Reject(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error) {
	return f.rejectFn(ctx, actor, id, comments)
}
func (f *fakeTimesheetService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	return f.deleteFn(ctx, actor, id)
}

func TestTimesheetHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeTimesheetService{
			createFn: func(ctx context.Context, actor domain.Principal, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
				assert.Equal(t, actorID, actor.ID)
				assert.Equal(t, domain.RoleEmployee, actor.Role)
				assert.Equal(t, "2026-03-02", req.WeekStart)
				assert.Len(t, req.Entries, 1)
				return timesheet.TimesheetResponse{
					ID:         uuid.New().String(),
					UserID:     actor.ID,
					WeekStart:  req.WeekStart,
					Entries:    req.Entries,
					TotalHours: req.TotalHours,
					Status:     string(timesheet.StatusDraft),
				}, nil
			},
		}

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"week_start":"2026-03-02","entries":[{"project_code":"PRJ1","mon":8}],"total_hours":8}`
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		setPrincipal(c, actorID, domain.RoleEmployee)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got timesheet.TimesheetResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, actorID, got.UserID)
		assert.Equal(t, "2026-03-02", got.WeekStart)
		assert.Equal(t, string(timesheet.StatusDraft), got.Status)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := timesheet.NewHandler(&fakeTimesheetService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative duplicate week", func(t *testing.T) {
		svc := &fakeTimesheetService{
			createFn: func(ctx context.Context, actor domain.Principal, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
				return timesheet.TimesheetResponse{}, timesheeterrors.ErrWeekAlreadyExists
			},
		}
		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"week_start":"2026-03-02","entries":[],"total_hours":0}`
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		setPrincipal(c, uuid.New().String(), domain.RoleEmployee)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "timesheet for this week already exists", env.Error.Message)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeTimesheetService{
			createFn: func(ctx context.Context, actor domain.Principal, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
				return timesheet.TimesheetResponse{}, errors.New("create failed")
			},
		}
		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"week_start":"2026-03-02","entries":[],"total_hours":0}`
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		setPrincipal(c, uuid.New().String(), domain.RoleEmployee)

		h.Create(c)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestTimesheetHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeTimesheetService{
			getAllFn: func(ctx context.Context, actor domain.Principal) ([]timesheet.TimesheetResponse, error) {
				assert.Equal(t, actorID, actor.ID)
				return []timesheet.TimesheetResponse{
					{ID: uuid.New().String(), UserID: actorID, Status: string(timesheet.StatusSubmitted)},
				}, nil
			},
		}

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/timesheets", nil)
		setPrincipal(c, actorID, domain.RoleEmployee)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []timesheet.TimesheetResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, string(timesheet.StatusSubmitted), got[0].Status)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeTimesheetService{
			getAllFn: func(ctx context.Context, actor domain.Principal) ([]timesheet.TimesheetResponse, error) {
				return nil, errors.New("db error")
			},
		}
		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/timesheets", nil)
		setPrincipal(c, uuid.New().String(), domain.RoleEmployee)

		h.GetAll(c)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestTimesheetHandler_ApproveReject(t *testing.T) {
	t.Run("approve tolerates empty body", func(t *testing.T) {
		actorID := uuid.New().String()
		timesheetID := uuid.New().String()
		svc := &fakeTimesheetService{
			approveFn: func(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error) {
				assert.Equal(t, actorID, actor.ID)
				assert.Equal(t, timesheetID, id)
				assert.Empty(t, comments)
				return timesheet.TimesheetResponse{ID: id, Status: string(timesheet.StatusApproved)}, nil
			},
		}
		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets/"+timesheetID+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: timesheetID}}
		setPrincipal(c, actorID, domain.RoleManager)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got timesheet.TimesheetResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, string(timesheet.StatusApproved), got.Status)
	})

	t.Run("reject passes comments through", func(t *testing.T) {
		timesheetID := uuid.New().String()
		svc := &fakeTimesheetService{
			rejectFn: func(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error) {
				assert.Equal(t, "hours do not match the project log", comments)
				return timesheet.TimesheetResponse{ID: id, Status: string(timesheet.StatusRejected), Comments: &comments}, nil
			},
		}
		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"comments":"hours do not match the project log"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets/"+timesheetID+"/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: timesheetID}}
		setPrincipal(c, uuid.New().String(), domain.RoleAdmin)

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative approve already reviewed", func(t *testing.T) {
		svc := &fakeTimesheetService{
			approveFn: func(ctx context.Context, actor domain.Principal, id, comments string) (timesheet.TimesheetResponse, error) {
				return timesheet.TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
			},
		}
		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/timesheets/"+uuid.New().String()+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}
		setPrincipal(c, uuid.New().String(), domain.RoleManager)

		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestTimesheetHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		timesheetID := uuid.New().String()
		svc := &fakeTimesheetService{
			deleteFn: func(ctx context.Context, actor domain.Principal, id string) error {
				assert.Equal(t, actorID, actor.ID)
				assert.Equal(t, timesheetID, id)
				return nil
			},
		}

		h := timesheet.NewHandler(svc)
		r := gin.New()
		r.Use(func(c *gin.Context) {
			setPrincipal(c, actorID, domain.RoleEmployee)
			c.Next()
		})
		r.DELETE("/timesheets/:id", h.Delete)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/timesheets/"+timesheetID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative not draft", func(t *testing.T) {
		svc := &fakeTimesheetService{
			deleteFn: func(ctx context.Context, actor domain.Principal, id string) error {
				return timesheeterrors.ErrDeleteNotDraft
			},
		}

		h := timesheet.NewHandler(svc)
		r := gin.New()
		r.Use(func(c *gin.Context) {
			setPrincipal(c, uuid.New().String(), domain.RoleEmployee)
			c.Next()
		})
		r.DELETE("/timesheets/:id", h.Delete)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/timesheets/"+uuid.New().String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}
