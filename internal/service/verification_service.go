package service

import (
	"errors"
	"time"

	"goodturn/internal/domain"
	"goodturn/internal/models"
	"goodturn/internal/points"
	"goodturn/internal/repository"

	log "github.com/sirupsen/logrus"
)

var (
	ErrReviewPending   = errors.New("a submission is already awaiting review")
	ErrAlreadyReviewed = errors.New("submission already reviewed")
)

// VerificationService owns the DBS certificate review flow. Approval marks
// the member verified and pushes profile verification points through the
// engine.
type VerificationService struct {
	repo     *repository.VerificationRepository
	userRepo *repository.UserRepository
	awards   *AwardService
	notif    *NotificationService
}

func NewVerificationService(
	repo *repository.VerificationRepository,
	userRepo *repository.UserRepository,
	awards *AwardService,
	notif *NotificationService,
) *VerificationService {
	return &VerificationService{repo: repo, userRepo: userRepo, awards: awards, notif: notif}
}

// Submit records an uploaded certificate for review. Only one pending
// submission per user at a time.
func (s *VerificationService) Submit(userID uint, documentURL string) (*models.VerificationDocument, error) {
	latest, err := s.repo.LatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == domain.VerificationPending {
		return nil, ErrReviewPending
	}
	doc := &models.VerificationDocument{
		UserID:      userID,
		DocumentURL: documentURL,
		Status:      domain.VerificationPending,
	}
	if err := s.repo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Review resolves a pending submission. expiresAt is the certificate's
// expiry date and is required on approval.
func (s *VerificationService) Review(docID, reviewerID uint, approve bool, note string, expiresAt *time.Time) (*models.VerificationDocument, error) {
	doc, err := s.repo.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.VerificationPending {
		return nil, ErrAlreadyReviewed
	}
	now := time.Now()
	doc.ReviewedBy = &reviewerID
	doc.ReviewedAt = &now
	doc.Note = note
	if approve {
		doc.Status = domain.VerificationApproved
		doc.ExpiresAt = expiresAt
	} else {
		doc.Status = domain.VerificationRejected
	}
	if err := s.repo.Update(doc); err != nil {
		return nil, err
	}

	if !approve {
		if s.notif != nil {
			_ = s.notif.NotifyVerificationRejected(doc.UserID, note)
		}
		return doc, nil
	}

	if err := s.userRepo.SetVerified(doc.UserID, true); err != nil {
		log.WithError(err).WithField("user", doc.UserID).Error("failed to mark user verified")
	}
	if _, err := s.awards.Award(doc.UserID, points.CategoryProfileVerification,
		"DBS check approved", points.Metadata{}, domain.SourceVerification, doc.ID); err != nil {
		log.WithError(err).WithField("user", doc.UserID).Error("verification points award failed")
	}
	if s.notif != nil {
		_ = s.notif.NotifyVerificationApproved(doc.UserID)
	}
	return doc, nil
}

// ExpiryReminders notifies members whose approved certificate expires within
// warnDays. Run daily by the scheduler.
func (s *VerificationService) ExpiryReminders(warnDays int) error {
	now := time.Now()
	docs, err := s.repo.ExpiringBetween(now, now.AddDate(0, 0, warnDays))
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.ExpiresAt == nil || s.notif == nil {
			continue
		}
		if err := s.notif.NotifyDBSExpiring(doc.UserID, *doc.ExpiresAt); err != nil {
			log.WithError(err).WithField("user", doc.UserID).Warn("expiry reminder failed")
		}
	}
	return nil
}
