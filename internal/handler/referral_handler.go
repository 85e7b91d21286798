package handler

import (
	"net/http"

	"goodturn/internal/middleware"
	"goodturn/internal/service"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	svc *service.ReferralService
}

func NewReferralHandler(svc *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{svc: svc}
}

// MyCode returns the caller's invite code, creating one on first use.
func (h *ReferralHandler) MyCode(c *gin.Context) {
	userID := middleware.GetUserID(c)
	code, err := h.svc.MyCode(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code.Code})
}

// List returns the members the caller has referred.
func (h *ReferralHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c, 50, 200)
	list, err := h.svc.ListMine(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": list})
}
