package models

import "time"

// UsageQuota is one row per (tier, feature): the monthly ceiling for that
// feature on that plan. Enabled=false means the plan does not include the
// feature at all, whatever the limit says.
type UsageQuota struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Tier         string    `gorm:"uniqueIndex:idx_tier_feature" json:"tier"`
	Feature      string    `gorm:"uniqueIndex:idx_tier_feature" json:"feature"`
	MonthlyLimit int       `json:"monthly_limit"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UsageQuota) TableName() string {
	return "usage_quotas"
}
