package repository

import (
	"time"

	"goodturn/internal/domain"
	"goodturn/internal/models"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(doc *models.VerificationDocument) error {
	return r.db.Create(doc).Error
}

func (r *VerificationRepository) GetByID(id uint) (*models.VerificationDocument, error) {
	var doc models.VerificationDocument
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// LatestByUser returns the user's most recent submission, or nil when they
// have never submitted one.
func (r *VerificationRepository) LatestByUser(userID uint) (*models.VerificationDocument, error) {
	var doc models.VerificationDocument
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *VerificationRepository) ListPending(limit, offset int) ([]models.VerificationDocument, error) {
	var list []models.VerificationDocument
	err := r.db.Where("status = ?", domain.VerificationPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *VerificationRepository) Update(doc *models.VerificationDocument) error {
	return r.db.Save(doc).Error
}

// ExpiringBetween returns approved documents whose certificate expires in the
// given window. Used by the daily reminder job.
func (r *VerificationRepository) ExpiringBetween(from, to time.Time) ([]models.VerificationDocument, error) {
	var list []models.VerificationDocument
	err := r.db.Where("status = ? AND expires_at IS NOT NULL AND expires_at BETWEEN ? AND ?",
		domain.VerificationApproved, from, to).
		Find(&list).Error
	return list, err
}
