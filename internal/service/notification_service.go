package service

import (
	"encoding/json"
	"fmt"
	"time"

	"goodturn/internal/domain"
	"goodturn/internal/models"
	"goodturn/internal/points"
	"goodturn/internal/repository"
	"goodturn/internal/ws"
)

// NotificationService persists notifications and pushes them over the live
// points feed. WS delivery is best effort; the stored row is what the client
// syncs from.
type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *ws.Hub
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	n := &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(userID, map[string]interface{}{
			"type":         "notification",
			"notification": n,
		})
	}
	return nil
}

func (s *NotificationService) NotifyPointsAwarded(tx models.PointTransaction) error {
	title := fmt.Sprintf("+%d points", tx.Points)
	body := tx.Description
	if body == "" {
		body = "You earned points for " + tx.Category
	}
	return s.Notify(tx.UserID, domain.NotifPointsAwarded, title, body, map[string]interface{}{
		"points":    tx.Points,
		"category":  tx.Category,
		"reference": tx.Reference,
	})
}

// NotifyLevelUp satisfies the stats service's LevelUpNotifier.
func (s *NotificationService) NotifyLevelUp(userID uint, tier points.Tier) error {
	return s.Notify(userID, domain.NotifLevelUp, "Level up!",
		"You are now a "+tier.Name, map[string]interface{}{
			"level":      tier.Level,
			"min_points": tier.MinPoints,
		})
}

func (s *NotificationService) NotifyVerificationApproved(userID uint) error {
	return s.Notify(userID, domain.NotifVerificationApproved, "DBS check approved",
		"Your DBS certificate has been verified.", nil)
}

func (s *NotificationService) NotifyVerificationRejected(userID uint, note string) error {
	body := "Your DBS certificate could not be verified."
	if note != "" {
		body += " " + note
	}
	return s.Notify(userID, domain.NotifVerificationRejected, "DBS check rejected", body, nil)
}

func (s *NotificationService) NotifyDBSExpiring(userID uint, expiresAt time.Time) error {
	return s.Notify(userID, domain.NotifDBSExpiring, "DBS certificate expiring",
		"Your DBS certificate expires on "+expiresAt.Format("2 January 2006")+". Please renew it.",
		map[string]interface{}{"expires_at": expiresAt})
}

func (s *NotificationService) NotifyReferralJoined(referrerID uint, referredUsername string) error {
	return s.Notify(referrerID, domain.NotifReferralJoined, "Referral joined",
		referredUsername+" joined with your invite code", nil)
}
