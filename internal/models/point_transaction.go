package models

import "time"

// PointTransaction is one row of the append-only points ledger. Rows are
// created exactly once per qualifying action and never updated or deleted,
// so there are no UpdatedAt/DeletedAt columns. BasePoints and Multiplier are
// stored alongside Points so any row can be re-derived from the rate table
// in force when it was written.
type PointTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_point_txns_user_category,priority:1;index" json:"user_id"`
	Category    string    `gorm:"size:40;not null;index:idx_point_txns_user_category,priority:2" json:"category"`
	Points      int       `gorm:"not null" json:"points"`
	BasePoints  int       `gorm:"not null" json:"base_points"`
	Multiplier  float64   `gorm:"not null" json:"multiplier"`
	Description string    `gorm:"size:255" json:"description"`
	Reference   string    `gorm:"size:64;uniqueIndex" json:"reference"` // uuid assigned at emit time
	SourceType  string    `gorm:"size:40" json:"source_type,omitempty"` // e.g. REFERRAL, VERIFICATION, MANUAL
	SourceID    uint      `json:"source_id,omitempty"`                  // originating entity, 0 when none
	Verified    bool      `gorm:"default:true" json:"verified"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PointTransaction) TableName() string { return "point_transactions" }
