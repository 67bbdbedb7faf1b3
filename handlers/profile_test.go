package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptgen-backend/models"
	"scriptgen-backend/quota"
)

func profileRoutes(user models.User) *gin.Engine {
	r := gin.New()
	grp := r.Group("/api", asUser(user))
	grp.GET("/user/profile", GetProfile)
	grp.PUT("/user/settings", UpdateSettings)
	grp.GET("/voices", GetVoices)
	return r
}

func TestProfileReportsPerFeatureUsage(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "a@example.com", "free")

	quota.RecordUsage(db, user.ID, quota.FeatureScript, true, 100, 500, "", nil)
	quota.RecordUsage(db, user.ID, quota.FeatureScript, true, 100, 500, "", nil)
	quota.RecordUsage(db, user.ID, quota.FeatureHooks, false, 100, 0, "boom", nil)

	w := doJSON(profileRoutes(user), "GET", "/api/user/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Usage map[string]struct {
			Enabled bool `json:"enabled"`
			Used    int  `json:"used"`
			Limit   int  `json:"limit"`
		} `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 2, body.Usage["script"].Used)
	assert.Equal(t, 5, body.Usage["script"].Limit)
	// Failed hook attempt is visible in the ledger but not in quota usage.
	assert.Equal(t, 0, body.Usage["hooks"].Used)
	assert.False(t, body.Usage["outline"].Enabled)
}

func TestUpdateSettingsValidVoice(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "a@example.com", "free")

	w := doJSON(profileRoutes(user), "PUT", "/api/user/settings", map[string]string{"preferred_voice": "storyteller"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Equal(t, "storyteller", user.PreferredVoice)
}

func TestUpdateSettingsUnknownVoiceRejected(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "a@example.com", "free")

	w := doJSON(profileRoutes(user), "PUT", "/api/user/settings", map[string]string{"preferred_voice": "smooth-jazz"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Empty(t, user.PreferredVoice)
}

func TestVoiceCatalogIsListed(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "a@example.com", "free")

	w := doJSON(profileRoutes(user), "GET", "/api/voices", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.VoicePreset `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, len(body.Data), 5)

	names := make(map[string]bool)
	for _, v := range body.Data {
		names[v.Name] = true
	}
	assert.True(t, names["casual"])
	assert.True(t, names["storyteller"])
}
