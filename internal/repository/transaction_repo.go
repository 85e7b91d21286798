package repository

import (
	"time"

	"goodturn/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository is the append-only store behind the points ledger.
// There are deliberately no update or delete methods.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append persists a new ledger row.
func (r *TransactionRepository) Append(tx *models.PointTransaction) error {
	return r.db.Create(tx).Error
}

// LatestActivity returns the creation time of the user's most recent
// transaction in the given category, or nil when there is none.
func (r *TransactionRepository) LatestActivity(userID uint, category string) (*time.Time, error) {
	var tx models.PointTransaction
	err := r.db.Where("user_id = ? AND category = ?", userID, category).
		Order("created_at DESC").
		First(&tx).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	ts := tx.CreatedAt
	return &ts, nil
}

// HistoryByUser returns a page of the user's transactions, newest first.
// since narrows the window when non-nil.
func (r *TransactionRepository) HistoryByUser(userID uint, since *time.Time, limit, offset int) ([]models.PointTransaction, error) {
	q := r.db.Where("user_id = ?", userID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var list []models.PointTransaction
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// AllByUser returns the user's full transaction history for aggregation.
func (r *TransactionRepository) AllByUser(userID uint) ([]models.PointTransaction, error) {
	var list []models.PointTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&list).Error
	return list, err
}

// TotalPoints sums the user's ledger. The ledger is the only source of truth
// for a user's total; nothing else may adjust it.
func (r *TransactionRepository) TotalPoints(userID uint) (int, error) {
	var total int64
	err := r.db.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return int(total), err
}

// LeaderboardEntry is one row of a points leaderboard.
type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
}

// Leaderboard returns the top point earners, optionally restricted to
// transactions created at or after `since`.
func (r *TransactionRepository) Leaderboard(since *time.Time, limit int) ([]LeaderboardEntry, error) {
	q := r.db.Model(&models.PointTransaction{}).
		Select("point_transactions.user_id, users.username, SUM(point_transactions.points) AS total_points").
		Joins("JOIN users ON users.id = point_transactions.user_id AND users.deleted_at IS NULL")
	if since != nil {
		q = q.Where("point_transactions.created_at >= ?", *since)
	}
	var list []LeaderboardEntry
	err := q.Group("point_transactions.user_id, users.username").
		Order("total_points DESC").
		Limit(limit).
		Scan(&list).Error
	return list, err
}

// RecentByCategory returns the user's latest transactions in one category,
// newest first. Used for streak calculations.
func (r *TransactionRepository) RecentByCategory(userID uint, category string, limit int) ([]models.PointTransaction, error) {
	var list []models.PointTransaction
	err := r.db.Where("user_id = ? AND category = ?", userID, category).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
