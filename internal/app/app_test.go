package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/config"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "payroll.db"),
			MaxRetries: 1,
		},
		Payroll: config.PayrollConfig{
			RunLockTTL:      time.Minute,
			SummaryCacheTTL: time.Minute,
		},
	}

	router := gin.New()
	cleanup, err := BuildApp(router, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return router
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildApp_Health(t *testing.T) {
	r := newTestApp(t)

	w := do(t, r, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBuildApp_PayrollFlow(t *testing.T) {
	r := newTestApp(t)

	w := do(t, r, http.MethodPost, "/api/employees", `{
		"name": "Asha",
		"email": "asha@example.com",
		"department": "Engineering",
		"designation": "Engineer",
		"baseSalary": 50000,
		"hraPercent": 20,
		"daPercent": 10,
		"taxPercent": 10,
		"pfPercent": 5,
		"otherDeduction": 500
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/payroll/run", `{"month":3,"year":2024}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var run struct {
		Run struct {
			ID string `json:"id"`
		} `json:"run"`
		Items []struct {
			EmployeeID string  `json:"employeeId"`
			Net        float64 `json:"net"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.Len(t, run.Items, 1)
	assert.Equal(t, 55500.0, run.Items[0].Net)

	w = do(t, r, http.MethodGet, "/api/reports/summary?month=3&year=2024", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalNet":55500`)
	assert.Contains(t, w.Body.String(), `"department":"Engineering"`)

	w = do(t, r, http.MethodGet, "/api/reports/run/"+run.Run.ID+".csv", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `attachment; filename="payroll_2024_03.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "55500.00")

	w = do(t, r, http.MethodGet, "/api/payroll/runs/"+run.Run.ID+"/payslips/"+run.Items[0].EmployeeID, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestBuildApp_SummaryRequiresPeriod(t *testing.T) {
	r := newTestApp(t)

	w := do(t, r, http.MethodGet, "/api/reports/summary", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month and year are required")
}
