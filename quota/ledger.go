package quota

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"scriptgen-backend/models"
)

// RecordUsage appends one usage log row for a generation attempt. It never
// returns an error: if the insert fails we log it and move on, because losing
// a bookkeeping row must not turn a finished generation into a 500 for the
// user. Metadata is the caller's request params, kept verbatim for audit.
func RecordUsage(db *gorm.DB, userID uint, feature Feature, success bool, processingMs int64, tokenCount int, errMsg string, metadata interface{}) {
	metaJSON := ""
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		} else {
			log.Printf("usage log: could not marshal metadata for user %d: %v", userID, err)
		}
	}

	entry := models.UsageLog{
		UserID:       userID,
		Feature:      string(feature),
		Success:      success,
		ProcessingMs: processingMs,
		TokenCount:   tokenCount,
		ErrorMessage: errMsg,
		Metadata:     metaJSON,
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("usage log: insert failed for user %d feature %s: %v", userID, feature, err)
	}
}
