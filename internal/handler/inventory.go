package handler

import (
	"net/http"

	"cloudledger/internal/apierror"
	"cloudledger/internal/dto"
	"cloudledger/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	alerts    service.AlertService
	inventory service.InventoryService
}

func NewInventoryHandler(alerts service.AlertService, inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{alerts: alerts, inventory: inventory}
}

func (h *InventoryHandler) Alerts(c *gin.Context) {
	alerts, err := h.alerts.Evaluate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to evaluate alerts"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid filter"))
		return
	}
	resp, err := h.inventory.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
