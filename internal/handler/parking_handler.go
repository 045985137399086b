package handler

import (
	"net/http"
	"strconv"

	"campus-parking/internal/middleware"
	"campus-parking/internal/model"
	"campus-parking/internal/service"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type ParkingHandler struct {
	allocation service.AllocationService
}

func NewParkingHandler(allocation service.AllocationService) *ParkingHandler {
	return &ParkingHandler{allocation: allocation}
}

// RegisterPublicRoutes 可用名額查詢不需要登入，給到場前的看板與 app 首頁用
func (h *ParkingHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/sections/:id/availability", h.SectionAvailability)
}

func (h *ParkingHandler) RegisterRoutes(r *gin.RouterGroup) {
	attendant := r.Group("", middleware.RequireRole(model.RoleAttendant, model.RoleAdmin))
	{
		attendant.POST("/spots/:id/release", h.ReleaseSpot)
		attendant.PUT("/spots/:id/unavailable", h.SetSpotUnavailable)
		attendant.PUT("/spots/:id/available", h.SetSpotAvailable)
		attendant.POST("/sections/:id/slots/:number/release", h.ReleaseSectionSlot)
		attendant.PUT("/sections/:id/withdraw", h.WithdrawSectionSlot)
		attendant.PUT("/sections/:id/restore", h.RestoreSectionSlot)
	}
}

func (h *ParkingHandler) SectionAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "SectionAvailability")
		return
	}

	availability, err := h.allocation.SectionAvailability(c, id)
	if err != nil {
		handleError(c, err, "SectionAvailability")
		return
	}

	handleSuccess(c, availability, http.StatusOK)
}

func (h *ParkingHandler) ReleaseSpot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "ReleaseSpot")
		return
	}

	if err := h.allocation.ReleaseSpot(c, id); err != nil {
		handleError(c, err, "ReleaseSpot")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}

func (h *ParkingHandler) ReleaseSectionSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "ReleaseSectionSlot")
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "ReleaseSectionSlot")
		return
	}

	if err := h.allocation.ReleaseSectionSlot(c, id, number); err != nil {
		handleError(c, err, "ReleaseSectionSlot")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}

func (h *ParkingHandler) SetSpotUnavailable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "SetSpotUnavailable")
		return
	}

	if err := h.allocation.SetSpotUnavailable(c, id); err != nil {
		handleError(c, err, "SetSpotUnavailable")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}

func (h *ParkingHandler) SetSpotAvailable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "SetSpotAvailable")
		return
	}

	if err := h.allocation.SetSpotAvailable(c, id); err != nil {
		handleError(c, err, "SetSpotAvailable")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}

func (h *ParkingHandler) WithdrawSectionSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "WithdrawSectionSlot")
		return
	}

	if err := h.allocation.WithdrawSectionSlot(c, id); err != nil {
		handleError(c, err, "WithdrawSectionSlot")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}

func (h *ParkingHandler) RestoreSectionSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "RestoreSectionSlot")
		return
	}

	if err := h.allocation.RestoreSectionSlot(c, id); err != nil {
		handleError(c, err, "RestoreSectionSlot")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}
