package quota

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptgen-backend/models"
)

func TestRecordUsageAppends(t *testing.T) {
	db := newTestDB(t)
	user := newFreeUser(t, db)

	params := map[string]interface{}{"topic": "how to grow tomatoes", "length_minutes": 8}
	RecordUsage(db, user.ID, FeatureScript, true, 1234, 850, "", params)

	var entry models.UsageLog
	require.NoError(t, db.First(&entry).Error)

	assert.Equal(t, user.ID, entry.UserID)
	assert.Equal(t, "script", entry.Feature)
	assert.True(t, entry.Success)
	assert.Equal(t, int64(1234), entry.ProcessingMs)
	assert.Equal(t, 850, entry.TokenCount)
	assert.Empty(t, entry.ErrorMessage)

	// Metadata keeps the full request params for audit.
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.Metadata), &meta))
	assert.Equal(t, "how to grow tomatoes", meta["topic"])
}

func TestRecordUsageFailureKeepsError(t *testing.T) {
	db := newTestDB(t)
	user := newFreeUser(t, db)

	RecordUsage(db, user.ID, FeatureHooks, false, 90, 0, "response is not a JSON string array", nil)

	var entry models.UsageLog
	require.NoError(t, db.First(&entry).Error)

	assert.False(t, entry.Success)
	assert.Equal(t, "response is not a JSON string array", entry.ErrorMessage)
	assert.Empty(t, entry.Metadata)
}

func TestRecordUsageOneRowPerAttempt(t *testing.T) {
	db := newTestDB(t)
	user := newFreeUser(t, db)

	RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	RecordUsage(db, user.ID, FeatureScript, false, 100, 0, "boom", nil)

	var n int64
	db.Model(&models.UsageLog{}).Where("user_id = ?", user.ID).Count(&n)
	assert.Equal(t, int64(2), n)
}

func TestRecordUsageSwallowsInsertFailure(t *testing.T) {
	db := newTestDB(t)
	user := newFreeUser(t, db)

	// Storage gone: the write is lost, logged, and nothing propagates to
	// the caller. Reaching the end of this test without a panic is the
	// contract.
	require.NoError(t, db.Migrator().DropTable(&models.UsageLog{}))

	RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", map[string]string{"topic": "t"})
}

func TestRecordUsageSwallowsBadMetadata(t *testing.T) {
	db := newTestDB(t)
	user := newFreeUser(t, db)

	// Channels cannot be marshalled; the row is still written.
	RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", make(chan int))

	var n int64
	db.Model(&models.UsageLog{}).Count(&n)
	assert.Equal(t, int64(1), n)
}
