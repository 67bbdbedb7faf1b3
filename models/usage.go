package models

import "time"

// UsageLog is one generation attempt, success or not. Append-only: the app
// never updates or deletes these rows (only a user cascade removes them).
type UsageLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	Feature      string    `gorm:"index" json:"feature"` // script / hooks / titles / ...
	Success      bool      `json:"success"`
	ProcessingMs int64     `json:"processing_ms"`
	TokenCount   int       `json:"token_count"` // word count of the output, 0 on failure
	ErrorMessage string    `json:"error_message,omitempty"`
	Metadata     string    `json:"metadata"` // request params as JSON, kept for audit
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}
