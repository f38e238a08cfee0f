package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vehicle-shipping-backend/internal/usecase/invoice"
	"vehicle-shipping-backend/pkg/utils"
)

type InvoiceHandler struct {
	service *invoice.Service
}

func NewInvoiceHandler(service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:invoice_id", h.Get)
		invoices.PUT("/:invoice_id", h.Update)
		invoices.PATCH("/:invoice_id/status", h.SetStatus)
	}

	router.GET("/containers/:container_id/invoices", h.ListByContainer)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoice.CreateInvoiceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Invoice created successfully", resp)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoice_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice retrieved successfully", resp)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var req invoice.InvoiceFilterRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoices retrieved successfully", resp)
}

func (h *InvoiceHandler) ListByContainer(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("container_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	resp, err := h.service.ListByContainer(c.Request.Context(), containerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoices retrieved successfully", resp)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoice_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req invoice.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), invoiceID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice updated successfully", resp)
}

func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoice_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req invoice.SetInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.SetStatus(c.Request.Context(), invoiceID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice status updated successfully", resp)
}
