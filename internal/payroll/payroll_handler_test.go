package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePayrollService struct {
	RunPayrollFn func(ctx context.Context, month, year int) (payroll.RunDetailResponse, error)
	ListRunsFn   func(ctx context.Context) ([]payroll.RunResponse, error)
	GetRunFn     func(ctx context.Context, runID string) (payroll.RunDetailResponse, error)
	PayslipFn    func(ctx context.Context, runID, employeeID string) (payroll.Payslip, error)
}

func (f *fakePayrollService) RunPayroll(ctx context.Context, month, year int) (payroll.RunDetailResponse, error) {
	return f.RunPayrollFn(ctx, month, year)
}
func (f *fakePayrollService) ListRuns(ctx context.Context) ([]payroll.RunResponse, error) {
	return f.ListRunsFn(ctx)
}
func (f *fakePayrollService) GetRun(ctx context.Context, runID string) (payroll.RunDetailResponse, error) {
	return f.GetRunFn(ctx, runID)
}
func (f *fakePayrollService) Payslip(ctx context.Context, runID, employeeID string) (payroll.Payslip, error) {
	return f.PayslipFn(ctx, runID, employeeID)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestPayrollHandler_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{
			RunPayrollFn: func(ctx context.Context, month, year int) (payroll.RunDetailResponse, error) {
				assert.Equal(t, 3, month)
				assert.Equal(t, 2024, year)
				return payroll.RunDetailResponse{
					Run:   payroll.RunResponse{ID: "run-1", Month: month, Year: year},
					Items: []payroll.ItemResponse{{ID: "i1", Name: "Asha", Net: 55500}},
				}, nil
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/payroll/run", `{"month":3,"year":2024}`)

		h.Run(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"run":{"id":"run-1"`)
		assert.Contains(t, w.Body.String(), `"net":55500`)
	})

	t.Run("missing month", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		c, w := newTestContext(http.MethodPost, "/api/payroll/run", `{"year":2024}`)

		h.Run(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("non numeric month", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		c, w := newTestContext(http.MethodPost, "/api/payroll/run", `{"month":"march","year":2024}`)

		h.Run(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty registry", func(t *testing.T) {
		svc := &fakePayrollService{
			RunPayrollFn: func(ctx context.Context, month, year int) (payroll.RunDetailResponse, error) {
				return payroll.RunDetailResponse{}, payrollerrors.ErrEmptyRegistry
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/payroll/run", `{"month":1,"year":2024}`)

		h.Run(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), payrollerrors.CodeEmptyRegistry)
	})

	t.Run("run in progress", func(t *testing.T) {
		svc := &fakePayrollService{
			RunPayrollFn: func(ctx context.Context, month, year int) (payroll.RunDetailResponse, error) {
				return payroll.RunDetailResponse{}, payrollerrors.ErrRunInProgress
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/payroll/run", `{"month":1,"year":2024}`)

		h.Run(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), payrollerrors.CodeRunInProgress)
	})
}

func TestPayrollHandler_GetRun(t *testing.T) {
	svc := &fakePayrollService{
		GetRunFn: func(ctx context.Context, runID string) (payroll.RunDetailResponse, error) {
			assert.Equal(t, "missing", runID)
			return payroll.RunDetailResponse{}, payrollerrors.ErrRunNotFound
		},
	}
	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/payroll/runs/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.GetRun(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestPayrollHandler_ListRuns(t *testing.T) {
	svc := &fakePayrollService{
		ListRunsFn: func(ctx context.Context) ([]payroll.RunResponse, error) {
			return []payroll.RunResponse{{ID: "r2", Month: 2, Year: 2024}, {ID: "r1", Month: 1, Year: 2024}}, nil
		},
	}
	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/payroll/runs", "")

	h.ListRuns(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), `[{"id":"r2"`))
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	svc := &fakePayrollService{
		PayslipFn: func(ctx context.Context, runID, employeeID string) (payroll.Payslip, error) {
			assert.Equal(t, "run-1", runID)
			assert.Equal(t, "emp-1", employeeID)
			return payroll.Payslip{Filename: "payslip.pdf", Content: []byte("%PDF-1.3")}, nil
		},
	}
	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/payroll/runs/run-1/payslips/emp-1", "")
	c.Params = gin.Params{{Key: "id", Value: "run-1"}, {Key: "employeeId", Value: "emp-1"}}

	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payslip.pdf"`, w.Header().Get("Content-Disposition"))
}
