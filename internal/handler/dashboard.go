package handler

import (
	"net/http"

	"cloudledger/internal/apierror"
	"cloudledger/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute stats"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesSeries returns the time-bucketed sales chart. ?interval=weekly buckets
// the current month by week; anything else falls back to monthly.
func (h *DashboardHandler) SalesSeries(c *gin.Context) {
	interval := c.DefaultQuery("interval", "monthly")
	resp, err := h.svc.SalesSeries(c.Request.Context(), interval)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute sales series"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
