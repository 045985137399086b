package handler

import (
	"net/http"
	"strconv"

	"campus-parking/internal/middleware"
	"campus-parking/internal/model"
	"campus-parking/internal/service"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	allocation  service.AllocationService
	reservation service.ReservationService
}

func NewReservationHandler(allocation service.AllocationService, reservation service.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		allocation:  allocation,
		reservation: reservation,
	}
}

func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup) {
	router := r.Group("/reservations")
	{
		router.POST("/spot", h.ReserveSpot)
		router.POST("/section", h.ReserveSection)
		router.GET("", h.ListMine)
		router.GET("/:id", h.GetReservation)
		router.PUT("/:id/cancel", h.CancelReservation)
		router.POST("/checkin", h.CheckIn)
		router.POST("/checkout", h.CheckOut)
	}

	attendant := r.Group("/attendant", middleware.RequireRole(model.RoleAttendant, model.RoleAdmin))
	{
		attendant.POST("/assign", h.AssignGuest)
	}
}

func (h *ReservationHandler) ReserveSpot(c *gin.Context) {
	var req model.ReserveSpotRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	identity := middleware.GetIdentity(c)
	reservation, err := h.allocation.ReserveSpot(c, identity.UserID, req)
	if err != nil {
		handleError(c, err, "ReserveSpot")
		return
	}

	handleSuccess(c, model.NewReservationResponse(reservation), http.StatusCreated)
}

func (h *ReservationHandler) ReserveSection(c *gin.Context) {
	var req model.ReserveSectionRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	identity := middleware.GetIdentity(c)
	reservation, err := h.allocation.ReserveSectionSlot(c, identity.UserID, req)
	if err != nil {
		handleError(c, err, "ReserveSection")
		return
	}

	handleSuccess(c, model.NewReservationResponse(reservation), http.StatusCreated)
}

func (h *ReservationHandler) AssignGuest(c *gin.Context) {
	var req model.GuestAssignRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	reservation, err := h.allocation.AssignGuest(c, req)
	if err != nil {
		handleError(c, err, "AssignGuest")
		return
	}

	handleSuccess(c, model.NewReservationResponse(reservation), http.StatusCreated)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	reservations, err := h.reservation.ListByUser(c, identity.UserID)
	if err != nil {
		handleError(c, err, "ListMine")
		return
	}

	handleSuccess(c, reservations, http.StatusOK)
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "GetReservation")
		return
	}

	identity := middleware.GetIdentity(c)
	reservation, err := h.reservation.GetByID(c, id, identity)
	if err != nil {
		handleError(c, err, "GetReservation")
		return
	}

	handleSuccess(c, reservation, http.StatusOK)
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "CancelReservation")
		return
	}

	identity := middleware.GetIdentity(c)
	reservation, err := h.allocation.Cancel(c, id, identity)
	if err != nil {
		handleError(c, err, "CancelReservation")
		return
	}

	handleSuccess(c, reservation, http.StatusOK)
}

// QRScanRequest QR 掃碼 payload 就是 reservation_uid
type QRScanRequest struct {
	QRPayload string `json:"qr_payload" binding:"required"`
}

func (h *ReservationHandler) CheckIn(c *gin.Context) {
	var req QRScanRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	uid, err := uuid.Parse(req.QRPayload)
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "CheckIn")
		return
	}

	identity := middleware.GetIdentity(c)
	reservation, err := h.allocation.CheckIn(c, uid, identity)
	if err != nil {
		handleError(c, err, "CheckIn")
		return
	}

	handleSuccess(c, model.NewReservationResponse(reservation), http.StatusOK)
}

func (h *ReservationHandler) CheckOut(c *gin.Context) {
	var req QRScanRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	uid, err := uuid.Parse(req.QRPayload)
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "CheckOut")
		return
	}

	identity := middleware.GetIdentity(c)
	reservation, charge, err := h.allocation.CheckOut(c, uid, identity)
	if err != nil {
		handleError(c, err, "CheckOut")
		return
	}

	handleSuccess(c, gin.H{
		"reservation": model.NewReservationResponse(reservation),
		"charge":      charge,
	}, http.StatusOK)
}
