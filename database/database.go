package database

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"scriptgen-backend/models"
	"scriptgen-backend/prompts"
	"scriptgen-backend/quota"
)

var DB *gorm.DB

func ConnectDatabase() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "scriptgen.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	force := os.Getenv("QUOTA_FORCE_RESEED") == "1"
	if err := quota.SeedPolicies(db, force); err != nil {
		log.Fatal("Quota seeding failed: ", err)
	}
	if err := SeedVoices(db); err != nil {
		log.Fatal("Voice preset seeding failed: ", err)
	}

	DB = db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UsageQuota{},
		&models.UsageLog{},
		&models.SavedScript{},
		&models.VoicePreset{},
	)
}

// SeedVoices mirrors the built-in voice catalog into voice_presets so the
// frontend can list them. Insert-if-absent, same discipline as quota seeding.
func SeedVoices(db *gorm.DB) error {
	for _, v := range prompts.Voices {
		row := models.VoicePreset{
			Name:        v.Name,
			Description: v.Description,
			Prompt:      v.Prompt,
		}
		if err := db.Where("name = ?", v.Name).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
