package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique" json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"` // user / admin

	// Plan info. Tier is mutated by the billing process, not by this service.
	Tier               string `gorm:"default:free" json:"tier"` // free / premium / pro
	SubscriptionStatus string `gorm:"default:active" json:"subscription_status"`
	PreferredVoice     string `json:"preferred_voice"` // name of a voice preset, empty = default

	CreatedAt time.Time `json:"created_at"`

	// Dependent rows go with the user.
	UsageLogs    []UsageLog    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SavedScripts []SavedScript `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
