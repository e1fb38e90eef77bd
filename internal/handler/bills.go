package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"cloudledger/internal/apierror"
	"cloudledger/internal/dto"
	"cloudledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BillsHandler struct{ svc service.BillingService }

func NewBillsHandler(svc service.BillingService) *BillsHandler {
	return &BillsHandler{svc: svc}
}

func (h *BillsHandler) Create(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBill(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrDuplicateBillNumber):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BillsHandler) List(c *gin.Context) {
	var filter dto.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListBills(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list bills"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetBill(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("bill not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF streams the invoice PDF as an attachment named {billNumber}.pdf.
func (h *BillsHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	path, err := h.svc.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("bill not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to render invoice"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
