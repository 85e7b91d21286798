package service

import (
	"goodturn/internal/domain"
	"goodturn/internal/models"
	"goodturn/internal/points"
	"goodturn/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ReferralService records referral relationships and awards referral points
// to both sides through the points engine.
type ReferralService struct {
	referralRepo *repository.ReferralRepository
	settingRepo  *repository.SettingRepository
	awards       *AwardService
	notif        *NotificationService
}

func NewReferralService(
	referralRepo *repository.ReferralRepository,
	settingRepo *repository.SettingRepository,
	awards *AwardService,
	notif *NotificationService,
) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		settingRepo:  settingRepo,
		awards:       awards,
		notif:        notif,
	}
}

// ProcessReferralCode links the new user to the code's owner and credits
// referral points. Best effort: a bad or missing code never blocks signup.
func (s *ReferralService) ProcessReferralCode(referralCode string, newUser *models.User) {
	if referralCode == "" || s.referralRepo == nil {
		return
	}
	rc, err := s.referralRepo.GetByCode(referralCode)
	if err != nil || rc == nil || rc.UserID == newUser.ID {
		return
	}

	referral := &models.Referral{
		ReferrerID:     rc.UserID,
		ReferredUserID: newUser.ID,
	}
	if err := s.referralRepo.CreateReferral(referral); err != nil {
		log.WithError(err).Warn("failed to create referral")
		return
	}

	if !s.pointsEnabled() {
		return
	}

	awarded := true
	if _, err := s.awards.Award(rc.UserID, points.CategoryReferral,
		"Referred "+newUser.Username, points.Metadata{}, domain.SourceReferral, referral.ID); err != nil {
		log.WithError(err).WithField("referrer", rc.UserID).Warn("referrer points award failed")
		awarded = false
	}
	if _, err := s.awards.Award(newUser.ID, points.CategoryReferral,
		"Joined with an invite code", points.Metadata{}, domain.SourceReferral, referral.ID); err != nil {
		log.WithError(err).WithField("referred", newUser.ID).Warn("referred points award failed")
		awarded = false
	}
	if awarded {
		if err := s.referralRepo.MarkPointsAwarded(referral.ID); err != nil {
			log.WithError(err).Warn("failed to mark referral points awarded")
		}
	}
	if s.notif != nil {
		_ = s.notif.NotifyReferralJoined(rc.UserID, newUser.Username)
	}
}

// MyCode returns (creating on first use) the user's invite code.
func (s *ReferralService) MyCode(userID uint) (*models.ReferralCode, error) {
	return s.referralRepo.GetOrCreateCode(userID)
}

// ListMine returns the referrals the user has brought in.
func (s *ReferralService) ListMine(userID uint, limit, offset int) ([]models.Referral, error) {
	return s.referralRepo.ListByReferrerID(userID, limit, offset)
}

func (s *ReferralService) pointsEnabled() bool {
	if s.settingRepo == nil {
		return true
	}
	val, err := s.settingRepo.Get(domain.SettingReferralPointsEnabled)
	if err != nil || val == "" {
		return true
	}
	return val != "false" && val != "0"
}
