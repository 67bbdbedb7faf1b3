package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scriptgen-backend/database"
	"scriptgen-backend/models"
	"scriptgen-backend/prompts"
)

// ScriptInput is the save/update payload: one generation session's outputs
// bundled together. Hooks/titles/tags/ctas arrive as JSON-encoded arrays from
// the frontend and are stored verbatim.
type ScriptInput struct {
	Title       string `json:"title" binding:"required"`
	Script      string `json:"script"`
	Hooks       string `json:"hooks"`
	Titles      string `json:"titles"`
	Outline     string `json:"outline"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Thumbnail   string `json:"thumbnail"`
	CTAs        string `json:"ctas"`
}

// POST /api/scripts
func SaveScript(c *gin.Context) {
	userID := getUserID(c)

	var input ScriptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	words := prompts.WordCount(input.Script)
	script := models.SavedScript{
		UserID:      userID,
		Title:       input.Title,
		Script:      input.Script,
		Hooks:       input.Hooks,
		Titles:      input.Titles,
		Outline:     input.Outline,
		Description: input.Description,
		Tags:        input.Tags,
		Thumbnail:   input.Thumbnail,
		CTAs:        input.CTAs,
		WordCount:   words,
		DurationSec: prompts.EstimatedDurationSec(words),
	}

	if err := database.DB.Create(&script).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save script"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": script})
}

// GET /api/scripts?page=1&limit=10
func GetScripts(c *gin.Context) {
	userID := getUserID(c)
	var scripts []models.SavedScript

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	query := database.DB.Model(&models.SavedScript{}).Where("user_id = ?", userID)

	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	query.Order("updated_at desc").Limit(limit).Offset(offset).Find(&scripts)

	c.JSON(http.StatusOK, gin.H{
		"data": scripts,
		"meta": gin.H{
			"current_page": page,
			"limit":        limit,
			"total_data":   total,
			"total_pages":  math.Ceil(float64(total) / float64(limit)),
		},
	})
}

// GET /api/scripts/:id
func GetScript(c *gin.Context) {
	userID := getUserID(c)

	var script models.SavedScript
	// Owner filter is part of the lookup: someone else's script simply does
	// not exist as far as this caller can tell.
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&script).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": script})
}

// PUT /api/scripts/:id
func UpdateScript(c *gin.Context) {
	userID := getUserID(c)

	var script models.SavedScript
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&script).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
		return
	}

	var input ScriptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	words := prompts.WordCount(input.Script)
	script.Title = input.Title
	script.Script = input.Script
	script.Hooks = input.Hooks
	script.Titles = input.Titles
	script.Outline = input.Outline
	script.Description = input.Description
	script.Tags = input.Tags
	script.Thumbnail = input.Thumbnail
	script.CTAs = input.CTAs
	script.WordCount = words
	script.DurationSec = prompts.EstimatedDurationSec(words)

	if err := database.DB.Save(&script).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update script"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": script})
}

// DELETE /api/scripts/:id
func DeleteScript(c *gin.Context) {
	userID := getUserID(c)

	res := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.SavedScript{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete script"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Script deleted"})
}
