package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vehicle-shipping-backend/internal/usecase/shipment"
	"vehicle-shipping-backend/pkg/utils"
)

type ShipmentHandler struct {
	service *shipment.Service
}

func NewShipmentHandler(service *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.POST("", h.Book)
		shipments.GET("", h.List)
		shipments.GET("/:shipment_id", h.Get)
	}
}

func (h *ShipmentHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.PATCH("/:shipment_id/status", h.UpdateStatus)
		shipments.PATCH("/:shipment_id/payment", h.UpdatePaymentStatus)
	}
	router.GET("/statistics", h.GetStatistics)
}

func (h *ShipmentHandler) Book(c *gin.Context) {
	var req shipment.BookShipmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Origin = utils.SanitizeString(req.Origin)
	req.Destination = utils.SanitizeString(req.Destination)
	req.VehicleDescription = utils.SanitizeString(req.VehicleDescription)
	if req.Notes != nil {
		sanitized := utils.SanitizeString(*req.Notes)
		req.Notes = &sanitized
	}

	resp, err := h.service.Book(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment booked successfully", resp)
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("shipment_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), shipmentID, currentUserID(c), isAdminCaller(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", resp)
}

func (h *ShipmentHandler) List(c *gin.Context) {
	var req shipment.ShipmentFilterRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), currentUserID(c), isAdminCaller(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", resp)
}

func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("shipment_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	var req shipment.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment status updated successfully", resp)
}

func (h *ShipmentHandler) UpdatePaymentStatus(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("shipment_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	var req shipment.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdatePaymentStatus(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment status updated successfully", resp)
}

func (h *ShipmentHandler) GetStatistics(c *gin.Context) {
	resp, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", resp)
}
