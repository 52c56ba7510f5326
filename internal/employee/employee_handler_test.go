package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success returns the employee", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.Name)
				assert.Equal(t, 40000.0, *req.BaseSalary)
				assert.Equal(t, 0.0, req.TaxPercent)
				return employee.EmployeeResponse{
					ID:         uuid.New().String(),
					Name:       req.Name,
					BaseSalary: *req.BaseSalary,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		c, w := newJSONContext(http.MethodPost, "/api/employees", `{"name":"John Doe","baseSalary":40000}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"John Doe"`)
		assert.Contains(t, w.Body.String(), `"baseSalary":40000`)
	})

	t.Run("missing base salary fails validation", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		c, w := newJSONContext(http.MethodPost, "/api/employees", `{"name":"John"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidation)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})

	t.Run("negative percent fails validation", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		c, w := newJSONContext(http.MethodPost, "/api/employees", `{"name":"John","baseSalary":100,"pfPercent":-1}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid email fails validation", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		c, w := newJSONContext(http.MethodPost, "/api/employees", `{"name":"John","baseSalary":100,"email":"nope"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error hides internals", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}
		h := employee.NewHandler(svc)
		c, w := newJSONContext(http.MethodPost, "/api/employees", `{"name":"HR","baseSalary":1}`)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database connection failed")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}, nil
		},
	}
	h := employee.NewHandler(svc)
	c, w := newJSONContext(http.MethodGet, "/api/employees", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "["))
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "abc", id)
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)
		c, w := newJSONContext(http.MethodPut, "/api/employees/abc", `{"name":"A","baseSalary":10}`)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.Update(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeNotFound)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return nil },
		}
		h := employee.NewHandler(svc)
		c, w := newJSONContext(http.MethodDelete, "/api/employees/x", "")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return employeeerrors.ErrEmployeeNotFound },
		}
		h := employee.NewHandler(svc)
		c, w := newJSONContext(http.MethodDelete, "/api/employees/x", "")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
