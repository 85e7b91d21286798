package handler

import (
	"fmt"
	"net/http"

	"goodturn/internal/middleware"
	"goodturn/internal/repository"
	"goodturn/internal/service"
	"goodturn/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo *repository.UserRepository
	statsSvc *service.StatsService
	uploads  cloudinary.Client
}

func NewMeHandler(userRepo *repository.UserRepository, statsSvc *service.StatsService, uploads cloudinary.Client) *MeHandler {
	return &MeHandler{userRepo: userRepo, statsSvc: statsSvc, uploads: uploads}
}

// GetProfile returns the current user together with their points stats.
func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	stats, err := h.statsSvc.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  u,
		"stats": stats,
	})
}

// UpdateProfile updates display name and postcode.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		DisplayName *string `json:"display_name"`
		Postcode    *string `json:"postcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.Postcode != nil {
		u.Postcode = *req.Postcode
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UploadAvatar accepts a multipart image and stores it on Cloudinary.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()
	url, _, err := h.uploads.UploadImage(c.Request.Context(), file, "avatars", fmt.Sprintf("user_%d", userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	u.AvatarURL = url
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
