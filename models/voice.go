package models

import "time"

// VoicePreset is a named system-prompt fragment that biases the style of
// generated content. The catalog is seeded at startup.
type VoicePreset struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique" json:"name"`
	Description string    `json:"description"`
	Prompt      string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (VoicePreset) TableName() string {
	return "voice_presets"
}
