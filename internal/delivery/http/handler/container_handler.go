package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vehicle-shipping-backend/internal/usecase/container"
	"vehicle-shipping-backend/pkg/utils"
)

type ContainerHandler struct {
	service *container.Service
}

func NewContainerHandler(service *container.Service) *ContainerHandler {
	return &ContainerHandler{service: service}
}

func (h *ContainerHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	containers := router.Group("/containers")
	{
		containers.POST("", h.Create)
		containers.GET("", h.List)
		containers.GET("/:container_id", h.Get)
		containers.PATCH("/:container_id/status", h.UpdateStatus)
		containers.POST("/:container_id/shipment", h.LinkShipment)

		containers.POST("/:container_id/items", h.CreateItem)
		containers.GET("/:container_id/items", h.ListItems)
	}

	items := router.Group("/items")
	{
		items.GET("/:item_id", h.GetItem)
		items.PUT("/:item_id", h.UpdateItem)
		items.DELETE("/:item_id", h.DeleteItem)
	}
}

func (h *ContainerHandler) Create(c *gin.Context) {
	var req container.CreateContainerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Container created successfully", resp)
}

func (h *ContainerHandler) Get(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("container_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), containerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container retrieved successfully", resp)
}

func (h *ContainerHandler) List(c *gin.Context) {
	var req container.ContainerFilterRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Containers retrieved successfully", resp)
}

func (h *ContainerHandler) UpdateStatus(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("container_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	var req container.UpdateContainerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), containerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container status updated successfully", resp)
}

func (h *ContainerHandler) LinkShipment(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("container_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	var req container.LinkShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.LinkShipment(c.Request.Context(), containerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container linked to shipment successfully", resp)
}

func (h *ContainerHandler) CreateItem(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("container_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	var req container.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateItem(c.Request.Context(), containerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Item added successfully", resp)
}

func (h *ContainerHandler) ListItems(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("container_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid container ID")
		return
	}

	resp, err := h.service.ListItems(c.Request.Context(), containerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Items retrieved successfully", resp)
}

func (h *ContainerHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	resp, err := h.service.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item retrieved successfully", resp)
}

func (h *ContainerHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req container.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), itemID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item updated successfully", resp)
}

func (h *ContainerHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item deleted successfully", nil)
}
