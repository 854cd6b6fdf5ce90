package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tijori/internal/services"
)

// DashboardHandler serves the combined portfolio view.
type DashboardHandler struct {
	portfolioService services.PortfolioServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(portfolioService services.PortfolioServicer) *DashboardHandler {
	return &DashboardHandler{portfolioService: portfolioService}
}

// GetDashboard handles the combined stocks and funds view.
// @Summary     Dashboard
// @Description Stocks and mutual funds with live values and portfolio totals
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dash, err := h.portfolioService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
