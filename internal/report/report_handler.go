package report

import (
	"net/http"
	"strconv"
	"strings"

	reporterrors "go-payroll/internal/report/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Summary(c *gin.Context) {
	month, mErr := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	year, yErr := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if mErr != nil || yErr != nil || month == 0 || year == 0 {
		h.writeServiceError(c, reporterrors.ErrPeriodRequired)
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// ExportCSV serves /reports/run/<id>.csv.
func (h *Handler) ExportCSV(c *gin.Context) {
	runID, ok := strings.CutSuffix(c.Param("file"), ".csv")
	if !ok {
		h.writeServiceError(c, reporterrors.ErrExportNotFound)
		return
	}

	export, err := h.service.ExportCSV(c.Request.Context(), runID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Attachment(c, http.StatusOK, "text/csv", export.Filename, export.Content)
}
