package handler

import (
	"net/http"

	"campus-parking/internal/middleware"
	"campus-parking/internal/model"
	"campus-parking/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing service.BillingService
}

func NewBillingHandler(billing service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

func (h *BillingHandler) RegisterRoutes(r *gin.RouterGroup) {
	router := r.Group("/billing")
	{
		router.GET("/balance", h.GetBalance)
		// PayPal capture 成功後由外部收單流程呼叫，與其他加值共用同一條路徑
		router.POST("/topup", h.TopUp)
	}
}

func (h *BillingHandler) GetBalance(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	balance, err := h.billing.GetBalance(c, identity.UserID)
	if err != nil {
		handleError(c, err, "GetBalance")
		return
	}

	handleSuccess(c, balance, http.StatusOK)
}

func (h *BillingHandler) TopUp(c *gin.Context) {
	var req model.TopUpRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	identity := middleware.GetIdentity(c)
	subscription, balance, err := h.billing.TopUp(c, identity.UserID, req.Hours)
	if err != nil {
		handleError(c, err, "TopUp")
		return
	}

	handleSuccess(c, gin.H{
		"subscription": subscription,
		"hour_balance": balance,
	}, http.StatusCreated)
}
