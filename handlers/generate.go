package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"scriptgen-backend/database"
	"scriptgen-backend/llm"
	"scriptgen-backend/models"
	"scriptgen-backend/prompts"
	"scriptgen-backend/quota"
)

// Gen is the text generator behind every content route. Set to the Gemini
// client in main; tests swap in a fake.
var Gen llm.Generator

// How long we give the remote model before giving up.
const generationTimeout = 90 * time.Second

// Helper: user id stashed by the JWT middleware.
func getUserID(c *gin.Context) uint {
	id, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return id.(uint)
}

// Generate returns the handler for one content type. All eight routes run
// the same sequence: quota check, prompt composition, remote call, parse,
// usage record, response. Which template, budget and parser apply is data
// keyed by the feature, not per-route code.
func Generate(feature quota.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)

		var params prompts.Params
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		// 1. Entitlement check. Strictly before the remote call; a denial is
		// not an attempt, so nothing is logged for it.
		eval := quota.Evaluate(database.DB, userID, feature)
		if !eval.Allowed {
			if eval.Kind == quota.DenialInternal {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not verify your quota. Please try again."})
				return
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":         eval.Reason,
				"kind":          eval.Kind,
				"current_usage": eval.CurrentUsage,
				"limit":         eval.Limit,
			})
			return
		}

		// 2. Compose the prompt from the user's voice preset + params.
		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load your profile"})
			return
		}
		prompt := prompts.Build(feature, user.PreferredVoice, params)

		// 3. Remote call. Deliberately not tied to the request context: if
		// the client disconnects mid-generation we still finish and record
		// the outcome, since losing the accounting row is worse than the
		// wasted work.
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		start := time.Now()
		raw, err := Gen.Generate(ctx, prompt, prompts.TokenBudget[feature])
		elapsed := time.Since(start).Milliseconds()

		if err != nil {
			quota.RecordUsage(database.DB, userID, feature, false, elapsed, 0, err.Error(), params)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed. Please try again."})
			return
		}

		// 4. Structured types must parse; a bad array is a failed attempt,
		// never a partial success.
		if prompts.Structured(feature) {
			items, parseErr := llm.ParseStringList(raw)
			if parseErr != nil {
				quota.RecordUsage(database.DB, userID, feature, false, elapsed, 0, parseErr.Error(), params)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed. Please try again."})
				return
			}

			words := prompts.WordCount(strings.Join(items, " "))
			quota.RecordUsage(database.DB, userID, feature, true, elapsed, words, "", params)

			c.JSON(http.StatusOK, gin.H{
				"feature": feature,
				"items":   items,
				"usage": gin.H{
					"current": currentUsage(userID, feature, eval),
					"limit":   eval.Limit,
				},
			})
			return
		}

		// 5. Raw text types: derive stats and return as-is.
		text := strings.TrimSpace(raw)
		words := prompts.WordCount(text)
		quota.RecordUsage(database.DB, userID, feature, true, elapsed, words, "", params)

		c.JSON(http.StatusOK, gin.H{
			"feature": feature,
			"content": text,
			"stats": gin.H{
				"word_count":   words,
				"duration_sec": prompts.EstimatedDurationSec(words),
			},
			"usage": gin.H{
				"current": currentUsage(userID, feature, eval),
				"limit":   eval.Limit,
			},
		})
	}
}

// currentUsage re-counts after the ledger write so the response reflects any
// concurrent generations that landed while this one was in flight. Falls back
// to the pre-generation count when the store is unavailable.
func currentUsage(userID uint, feature quota.Feature, eval quota.Result) int {
	if n, err := quota.CountThisMonth(database.DB, userID, feature); err == nil {
		return n
	}
	return eval.CurrentUsage + 1
}
