package models

import "time"

// SavedScript is one generation session's outputs, saved explicitly by the
// user. Hooks, titles, tags and CTAs are stored as JSON arrays in text columns
// (sqlite has no array type and we never query inside them).
type SavedScript struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index" json:"user_id"`
	Title  string `json:"title"`

	Script      string `gorm:"type:text" json:"script"`
	Hooks       string `gorm:"type:text" json:"hooks"`
	Titles      string `gorm:"type:text" json:"titles"`
	Outline     string `gorm:"type:text" json:"outline"`
	Description string `gorm:"type:text" json:"description"`
	Tags        string `gorm:"type:text" json:"tags"`
	Thumbnail   string `json:"thumbnail"`
	CTAs        string `gorm:"type:text" json:"ctas"`

	WordCount   int `json:"word_count"`
	DurationSec int `json:"duration_sec"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (SavedScript) TableName() string {
	return "saved_scripts"
}
