package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationDocument is an uploaded DBS certificate awaiting admin review.
// Approval marks the user verified and awards profile verification points.
type VerificationDocument struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	DocumentURL string         `gorm:"size:512;not null" json:"document_url"`
	Status      string         `gorm:"size:20;not null;index;default:'PENDING'" json:"status"`
	ExpiresAt   *time.Time     `gorm:"index" json:"expires_at"` // certificate expiry, set on approval
	ReviewedBy  *uint          `json:"reviewed_by"`
	ReviewedAt  *time.Time     `json:"reviewed_at"`
	Note        string         `gorm:"size:255" json:"note"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (VerificationDocument) TableName() string { return "verification_documents" }
