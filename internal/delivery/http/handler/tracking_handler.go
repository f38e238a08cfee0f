package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vehicle-shipping-backend/internal/usecase/tracking"
	"vehicle-shipping-backend/pkg/utils"
)

type TrackingHandler struct {
	service *tracking.Service
}

func NewTrackingHandler(service *tracking.Service) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// RegisterRoutes mounts the public tracking lookup. No authentication:
// anyone holding a tracking number may query it.
func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tracking/:tracking_number", h.Track)
}

func (h *TrackingHandler) Track(c *gin.Context) {
	withRoute, _ := strconv.ParseBool(c.DefaultQuery("route", "false"))

	details, err := h.service.Track(c.Request.Context(), c.Param("tracking_number"), withRoute)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tracking details retrieved successfully", details)
}
