package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comlab/internal/services"
)

// DashboardResponse wraps the dashboard statistics.
type DashboardResponse struct {
	Success bool                     `json:"success"`
	Stats   *services.DashboardStats `json:"stats"`
}

// DashboardHandler serves the admin dashboard.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles the dashboard summary.
// @Summary     Dashboard statistics
// @Description User and unit totals with the unit IDs in each status
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} DashboardResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Success: true, Stats: stats})
}

// DashboardPage returns the admin landing page context.
func (h *DashboardHandler) DashboardPage(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"current_page": "dashboard",
		"stats":        stats,
		"flash":        popFlash(c),
	})
}
