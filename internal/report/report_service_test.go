package report_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/report"
	reporterrors "go-payroll/internal/report/errors"
	"go-payroll/internal/shared/cachekey"
	"go-payroll/internal/shared/testutil"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	repo    payroll.Repository
	payroll payroll.Service
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t,
		&employee.Employee{},
		&payroll.PayrollRun{},
		&payroll.PayrollItem{},
		&kafka.OutboxEvent{},
	)
	repo := payroll.NewRepository(db)
	return &fixture{
		db:      db,
		repo:    repo,
		payroll: payroll.NewService(db, repo, nil, nil, 0, zap.NewNop()),
	}
}

func (f *fixture) addEmployee(t *testing.T, name, dept string, base float64, standard bool) *employee.Employee {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&employee.Employee{}).Unscoped().Count(&n).Error)

	emp := &employee.Employee{
		ID:          uuid.New(),
		Name:        name,
		Email:       strings.ToLower(name) + "@example.com",
		Department:  dept,
		Designation: "Staff",
		BaseSalary:  base,
		CreatedAt:   seedTime.Add(time.Duration(n) * time.Minute),
	}
	if standard {
		emp.HRAPercent, emp.DAPercent, emp.TaxPercent, emp.PFPercent, emp.OtherDeduction = 20, 10, 10, 5, 500
	}
	require.NoError(t, f.db.Create(emp).Error)
	return emp
}

func (f *fixture) seedStandardRun(t *testing.T) payroll.RunDetailResponse {
	t.Helper()
	f.addEmployee(t, "Asha", "Engineering", 50000, true)
	f.addEmployee(t, "Bilal", "Engineering", 50000, true)
	f.addEmployee(t, "Chen", "Sales", 30000, false)
	f.addEmployee(t, "Dana", "", 10000, false)

	run, err := f.payroll.RunPayroll(context.Background(), 3, 2024)
	require.NoError(t, err)
	return run
}

func TestSummary_TotalsAndDepartments(t *testing.T) {
	f := setupFixture(t)
	f.seedStandardRun(t)
	svc := report.NewService(f.repo, nil, 0, zap.NewNop())

	res, err := svc.Summary(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, report.Totals{
		EmployeeCount:   4,
		TotalGross:      170000,
		TotalDeductions: 19000,
		TotalNet:        151000,
	}, res.Totals)
	assert.Equal(t, []report.DepartmentTotals{
		{Department: "Engineering", EmployeeCount: 2, TotalGross: 130000, TotalDeductions: 19000, TotalNet: 111000},
		{Department: "Sales", EmployeeCount: 1, TotalGross: 30000, TotalDeductions: 0, TotalNet: 30000},
		{Department: report.UnassignedDepartment, EmployeeCount: 1, TotalGross: 10000, TotalDeductions: 0, TotalNet: 10000},
	}, res.ByDepartment)
	assert.Equal(t, 3, res.Run.Month)
}

func TestSummary_TiesOrderedByDepartmentName(t *testing.T) {
	f := setupFixture(t)
	f.addEmployee(t, "Zed", "Support", 1000, false)
	f.addEmployee(t, "Amy", "Finance", 1000, false)
	_, err := f.payroll.RunPayroll(context.Background(), 8, 2024)
	require.NoError(t, err)

	res, err := report.NewService(f.repo, nil, 0).Summary(context.Background(), 8, 2024)

	require.NoError(t, err)
	require.Len(t, res.ByDepartment, 2)
	assert.Equal(t, "Finance", res.ByDepartment[0].Department)
	assert.Equal(t, "Support", res.ByDepartment[1].Department)
}

func TestSummary_DeletedEmployeeKeepsDepartment(t *testing.T) {
	f := setupFixture(t)
	run := f.seedStandardRun(t)
	svc := report.NewService(f.repo, nil, 0)

	var chen employee.Employee
	require.NoError(t, f.db.Where("name = ?", "Chen").First(&chen).Error)
	require.NoError(t, f.db.Delete(&chen).Error)

	res, err := svc.Summary(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, len(run.Items), res.Totals.EmployeeCount)
	assert.Equal(t, "Sales", res.ByDepartment[1].Department)
}

func TestSummary_IsStableAcrossCalls(t *testing.T) {
	f := setupFixture(t)
	f.seedStandardRun(t)
	svc := report.NewService(f.repo, nil, 0)

	first, err := svc.Summary(context.Background(), 3, 2024)
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummary_Errors(t *testing.T) {
	f := setupFixture(t)
	svc := report.NewService(f.repo, nil, 0)
	ctx := context.Background()

	_, err := svc.Summary(ctx, 3, 2030)
	assert.ErrorIs(t, err, reporterrors.ErrRunNotFound)

	_, err = svc.Summary(ctx, 13, 2024)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)

	_, err = svc.Summary(ctx, 1, 1990)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidYear)
}

type cachedSummary struct {
	Version int64                  `json:"version"`
	Summary report.SummaryResponse `json:"summary"`
}

func (f *fixture) runVersion(t *testing.T, month, year int) int64 {
	t.Helper()
	run, err := f.repo.FindRunByPeriod(context.Background(), month, year)
	require.NoError(t, err)
	return run.UpdatedAt.UnixNano()
}

func cachePayload(t *testing.T, version int64, summary report.SummaryResponse) string {
	t.Helper()
	payload, err := json.Marshal(cachedSummary{Version: version, Summary: summary})
	require.NoError(t, err)
	return string(payload)
}

func TestSummary_CacheMissStoresResult(t *testing.T) {
	f := setupFixture(t)
	f.seedStandardRun(t)

	expected, err := report.NewService(f.repo, nil, 0).Summary(context.Background(), 3, 2024)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	key := cachekey.ReportSummary(3, 2024)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, cachePayload(t, f.runVersion(t, 3, 2024), expected), report.DefaultSummaryCacheTTL).SetVal("OK")

	got, err := report.NewService(f.repo, rdb, 0).Summary(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_CacheHitSkipsStore(t *testing.T) {
	f := setupFixture(t)
	f.seedStandardRun(t)
	cached := report.SummaryResponse{
		Run:          payroll.RunResponse{ID: "cached-run", Month: 3, Year: 2024},
		Totals:       report.Totals{EmployeeCount: 1, TotalNet: 10},
		ByDepartment: []report.DepartmentTotals{{Department: "Ops", EmployeeCount: 1, TotalNet: 10}},
	}

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cachekey.ReportSummary(3, 2024)).SetVal(cachePayload(t, f.runVersion(t, 3, 2024), cached))

	got, err := report.NewService(f.repo, rdb, 0).Summary(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_StaleCacheEntryIsRebuilt(t *testing.T) {
	f := setupFixture(t)
	f.seedStandardRun(t)
	ctx := context.Background()

	before, err := report.NewService(f.repo, nil, 0).Summary(ctx, 3, 2024)
	require.NoError(t, err)
	oldVersion := f.runVersion(t, 3, 2024)

	f.addEmployee(t, "Eve", "Sales", 5000, false)
	_, err = f.payroll.RunPayroll(ctx, 3, 2024)
	require.NoError(t, err)

	after, err := report.NewService(f.repo, nil, 0).Summary(ctx, 3, 2024)
	require.NoError(t, err)
	newVersion := f.runVersion(t, 3, 2024)
	require.NotEqual(t, oldVersion, newVersion)

	rdb, mock := redismock.NewClientMock()
	key := cachekey.ReportSummary(3, 2024)
	mock.ExpectGet(key).SetVal(cachePayload(t, oldVersion, before))
	mock.ExpectSet(key, cachePayload(t, newVersion, after), report.DefaultSummaryCacheTTL).SetVal("OK")

	got, err := report.NewService(f.repo, rdb, 0).Summary(ctx, 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, 5, got.Totals.EmployeeCount)
	assert.Equal(t, after, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportCSV(t *testing.T) {
	f := setupFixture(t)
	run := f.seedStandardRun(t)
	svc := report.NewService(f.repo, nil, 0)

	export, err := svc.ExportCSV(context.Background(), run.Run.ID)
	require.NoError(t, err)

	assert.Equal(t, "payroll_2024_03.csv", export.Filename)

	records, err := csv.NewReader(strings.NewReader(string(export.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(run.Items)+1)
	assert.Equal(t, []string{
		"employeeId", "name", "email", "department", "designation",
		"base", "hra", "da", "gross", "tax", "pf", "other", "deductions", "net",
		"month", "year",
	}, records[0])

	asha := records[1]
	assert.Equal(t, "Asha", asha[1])
	assert.Equal(t, "asha@example.com", asha[2])
	assert.Equal(t, []string{"50000.00", "10000.00", "5000.00", "65000.00", "6500.00", "2500.00", "500.00", "9500.00", "55500.00"}, asha[5:14])
	assert.Equal(t, []string{"3", "2024"}, asha[14:])

	dana := records[4]
	assert.Equal(t, "Dana", dana[1])
	assert.Equal(t, "", dana[3])
	assert.Equal(t, "0.00", dana[6])
}

func TestExportCSV_NotFound(t *testing.T) {
	f := setupFixture(t)
	svc := report.NewService(f.repo, nil, 0)

	_, err := svc.ExportCSV(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, reporterrors.ErrExportNotFound)

	_, err = svc.ExportCSV(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, reporterrors.ErrExportNotFound)
}
