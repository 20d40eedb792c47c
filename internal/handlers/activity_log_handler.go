package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
	"comlab/internal/pagination"
	"comlab/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ActivityLogHandler handles activity log requests.
type ActivityLogHandler struct {
	logService services.ActivityLogServicer
}

// NewActivityLogHandler creates a new ActivityLogHandler.
func NewActivityLogHandler(logService services.ActivityLogServicer) *ActivityLogHandler {
	return &ActivityLogHandler{logService: logService}
}

// logFilterFromQuery reads ?action= and ?search=. An unknown action is a 400.
func logFilterFromQuery(c *gin.Context) (services.LogFilter, error) {
	filter := services.LogFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := strings.TrimSpace(c.Query("action")); raw != "" {
		action := models.ActivityAction(raw)
		if !action.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid log action")
		}
		filter.Action = action
	}
	return filter, nil
}

// ListLogs handles listing the activity log.
// @Summary     List activity log entries
// @Description Newest first, twenty per page
// @Tags        logs
// @Produce     json
// @Param       action query string false "sign-in or sign-out"
// @Param       search query string false "Matches student ID, name, station or notes"
// @Param       page   query int    false "Page number"
// @Success     200 {object} map[string]interface{} "Log page"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /logs [get]
func (h *ActivityLogHandler) ListLogs(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page := pagination.FromQuery(c.Query("page"), pagination.LogsPageSize)
	logs, err := h.logService.ListLogs(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}

// ExportLogs streams the filtered log as an xlsx workbook.
// @Summary     Export activity log
// @Tags        logs
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param       action query string false "sign-in or sign-out"
// @Param       search query string false "Search text"
// @Success     200 {file} file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /logs/export [get]
func (h *ActivityLogHandler) ExportLogs(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	buf, filename, err := h.logService.ExportLogs(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// LogsPage returns the activity log screen context.
func (h *ActivityLogHandler) LogsPage(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page := pagination.FromQuery(c.Query("page"), pagination.LogsPageSize)
	logs, err := h.logService.ListLogs(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.logService.CountLogs()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"current_page":  "activity_logs",
		"logs":          logs,
		"total_logs":    total,
		"action_filter": string(filter.Action),
		"search":        filter.Search,
		"flash":         popFlash(c),
	})
}
