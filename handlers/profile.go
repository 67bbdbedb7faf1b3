package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptgen-backend/database"
	"scriptgen-backend/models"
	"scriptgen-backend/quota"
)

// GET /api/user/profile — user info plus the per-feature usage report for
// the current month (the quota surface the frontend renders as meters).
func GetProfile(c *gin.Context) {
	userID := getUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	usage, err := quota.MonthlyUsage(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load usage"})
		return
	}

	report := gin.H{}
	for feature, res := range usage {
		if res.Kind == quota.DenialFeatureDisabled {
			report[string(feature)] = gin.H{"enabled": false}
			continue
		}
		report[string(feature)] = gin.H{
			"enabled": true,
			"used":    res.CurrentUsage,
			"limit":   res.Limit,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                  user.ID,
			"email":               user.Email,
			"tier":                user.Tier,
			"subscription_status": user.SubscriptionStatus,
			"preferred_voice":     user.PreferredVoice,
			"created_at":          user.CreatedAt,
		},
		"usage": report,
	})
}

// PUT /api/user/settings
func UpdateSettings(c *gin.Context) {
	userID := getUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		PreferredVoice string `json:"preferred_voice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Only known presets are stored. An unknown name would silently fall
	// back to the default at generation time anyway, better to reject here.
	if input.PreferredVoice != "" {
		var preset models.VoicePreset
		if err := database.DB.Where("name = ?", input.PreferredVoice).First(&preset).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown voice preset"})
			return
		}
	}

	user.PreferredVoice = input.PreferredVoice
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved", "preferred_voice": user.PreferredVoice})
}

// GET /api/voices — the preset catalog for the settings dropdown.
func GetVoices(c *gin.Context) {
	var voices []models.VoicePreset
	if err := database.DB.Order("name").Find(&voices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load voice presets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": voices})
}
