package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"worklane/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeReportService struct {
	timesheetSummaryFn func(ctx context.Context) (map[string]report.UserSummary, error)
	projectHoursFn     func(ctx context.Context) (map[string]float64, error)
}

func (f *fakeReportService) TimesheetSummary(ctx context.Context) (map[string]report.UserSummary, error) {
	return f.timesheetSummaryFn(ctx)
}
func (f *fakeReportService) ProjectHours(ctx context.Context) (map[string]float64, error) {
	return f.projectHoursFn(ctx)
}
func (f *fakeReportService) ExportTimesheetsCSV(ctx context.Context) ([]byte, error) {
	return nil, nil
}
func (f *fakeReportService) ExportLeavesCSV(ctx context.Context) ([]byte, error) {
	return nil, nil
}

func TestReportHandler_ProjectHours_CacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	calls := 0
	svc := &fakeReportService{
		projectHoursFn: func(ctx context.Context) (map[string]float64, error) {
			calls++
			return nil, nil
		},
	}

	cached, _ := json.Marshal(map[string]float64{"PRJ1": 40})
	mock.ExpectGet("reports:project-hours").SetVal(string(cached))

	h := report.NewHandler(svc, rdb)
	r := gin.New()
	r.GET("/reports/project-hours", h.ProjectHours)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/project-hours", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, calls)
	assert.Contains(t, w.Body.String(), `"PRJ1":40`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportHandler_ProjectHours_CacheMissRepopulates(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	calls := 0
	svc := &fakeReportService{
		projectHoursFn: func(ctx context.Context) (map[string]float64, error) {
			calls++
			return map[string]float64{"PRJ1": 40}, nil
		},
	}

	raw, _ := json.Marshal(map[string]float64{"PRJ1": 40})
	mock.ExpectGet("reports:project-hours").RedisNil()
	mock.ExpectSet("reports:project-hours", raw, 60*time.Second).SetVal("OK")

	h := report.NewHandler(svc, rdb)
	r := gin.New()
	r.GET("/reports/project-hours", h.ProjectHours)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/project-hours", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportHandler_TimesheetSummary_ConcurrentMissesCollapse(t *testing.T) {
	var calls int64
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	svc := &fakeReportService{
		timesheetSummaryFn: func(ctx context.Context) (map[string]report.UserSummary, error) {
			atomic.AddInt64(&calls, 1)
			entered <- struct{}{}
			<-release
			return map[string]report.UserSummary{}, nil
		},
	}

	h := report.NewHandler(svc, nil)
	r := gin.New()
	r.GET("/reports/timesheet-summary", h.TimesheetSummary)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/timesheet-summary", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}

	<-entered
	// let the remaining requests join the in-flight rebuild
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}
