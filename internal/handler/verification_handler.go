package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"goodturn/internal/middleware"
	"goodturn/internal/repository"
	"goodturn/internal/service"
	"goodturn/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	svc     *service.VerificationService
	repo    *repository.VerificationRepository
	uploads cloudinary.Client
}

func NewVerificationHandler(svc *service.VerificationService, repo *repository.VerificationRepository, uploads cloudinary.Client) *VerificationHandler {
	return &VerificationHandler{svc: svc, repo: repo, uploads: uploads}
}

// Submit accepts a DBS certificate scan (image or PDF) and queues it for
// admin review.
func (h *VerificationHandler) Submit(c *gin.Context) {
	userID := middleware.GetUserID(c)
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

	publicID := fmt.Sprintf("dbs_%d_%d", userID, time.Now().Unix())
	url, err := h.uploads.UploadDocument(c.Request.Context(), file, "dbs-certificates", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	doc, err := h.svc.Submit(userID, url)
	if err != nil {
		if errors.Is(err, service.ErrReviewPending) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": doc})
}

// Status returns the caller's latest submission, if any.
func (h *VerificationHandler) Status(c *gin.Context) {
	userID := middleware.GetUserID(c)
	doc, err := h.repo.LatestByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load status"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusOK, gin.H{"submission": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": doc})
}
