package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"goodturn/internal/domain"
	"goodturn/internal/middleware"
	"goodturn/internal/points"
	"goodturn/internal/repository"
	"goodturn/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	awardSvc        *service.AwardService
	verificationSvc *service.VerificationService
	userRepo        *repository.UserRepository
	verifRepo       *repository.VerificationRepository
	settingRepo     *repository.SettingRepository
}

func NewAdminHandler(
	awardSvc *service.AwardService,
	verificationSvc *service.VerificationService,
	userRepo *repository.UserRepository,
	verifRepo *repository.VerificationRepository,
	settingRepo *repository.SettingRepository,
) *AdminHandler {
	return &AdminHandler{
		awardSvc:        awardSvc,
		verificationSvc: verificationSvc,
		userRepo:        userRepo,
		verifRepo:       verifRepo,
		settingRepo:     settingRepo,
	}
}

type awardRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Description     string `json:"description"`
	ConsecutiveDays int    `json:"consecutive_days"`
}

// Award credits points to a member on behalf of the platform, for example
// after confirming a completed help request.
func (h *AdminHandler) Award(c *gin.Context) {
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	tx, err := h.awardSvc.Award(req.UserID, points.Category(req.Category), req.Description,
		points.Metadata{ConsecutiveDays: req.ConsecutiveDays}, domain.SourceManual, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, points.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCooldownActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "award failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// PendingVerifications lists DBS submissions awaiting review.
func (h *AdminHandler) PendingVerifications(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)
	list, err := h.verifRepo.ListPending(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": list})
}

type reviewRequest struct {
	Approve   bool   `json:"approve"`
	Note      string `json:"note"`
	ExpiresAt string `json:"expires_at"` // ISO date, required on approval
}

// ReviewVerification approves or rejects a DBS submission.
func (h *AdminHandler) ReviewVerification(c *gin.Context) {
	docID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var expiresAt *time.Time
	if req.Approve {
		if req.ExpiresAt == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at required on approval (use YYYY-MM-DD)"})
			return
		}
		t, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expires_at format (use YYYY-MM-DD)"})
			return
		}
		expiresAt = &t
	}
	doc, err := h.verificationSvc.Review(uint(docID), middleware.GetUserID(c), req.Approve, req.Note, expiresAt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "review failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": doc})
}

// Settings returns all platform settings.
func (h *AdminHandler) Settings(c *gin.Context) {
	settings, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting upserts one setting key.
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingRepo.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
