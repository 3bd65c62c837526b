// internal/models/reward.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Reward struct {
	BaseModel
	Title       string `json:"title" gorm:"size:150;not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"size:50;index"`
	PointsCost  int    `json:"points_cost" gorm:"not null"`
	Stock       int    `json:"stock" gorm:"default:0"`
	ImageURL    string `json:"image_url,omitempty" gorm:"size:500"`
	MerchantID  string `json:"merchant_id,omitempty" gorm:"size:50"`
	ValidDays   int    `json:"valid_days" gorm:"default:30"`
	IsActive    bool   `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Claims []RewardClaim `json:"claims,omitempty" gorm:"foreignKey:RewardID"`
}

// RewardClaim is issued when a resident redeems a reward. The claim code is
// presented to the merchant for validation. Lifecycle: unused -> used /
// expired / cancelled.
type RewardClaim struct {
	BaseModel
	RewardID    uuid.UUID   `json:"reward_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	ClaimCode   string      `json:"claim_code" gorm:"size:20;uniqueIndex;not null"`
	PointsSpent int         `json:"points_spent" gorm:"not null"`
	Status      ClaimStatus `json:"status" gorm:"type:varchar(20);default:'unused';index"`
	ExpiresAt   *time.Time  `json:"expires_at"`
	UsedAt      *time.Time  `json:"used_at"`
	CancelledAt *time.Time  `json:"cancelled_at"`

	// Relationships
	Reward Reward `json:"reward,omitempty" gorm:"foreignKey:RewardID"`
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Expired reports whether the claim's validity window has passed. Claims
// without an expiry never expire.
func (c *RewardClaim) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
