package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"scriptgen-backend/database"
	"scriptgen-backend/models"
	"scriptgen-backend/utils"
)

// JwtAuthMiddleware only checks the token is valid and stashes user_id/role
// in the context. Plan checks come after.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return utils.ApiSecret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// JSON numbers come back as float64.
		userIDFloat, okID := claims["user_id"].(float64)
		if !okID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token corrupt (user_id)"})
			c.Abort()
			return
		}

		c.Set("user_id", uint(userIDFloat))
		if role, okRole := claims["role"].(string); okRole {
			c.Set("role", role)
		}
		c.Next()
	}
}

// RequireActiveSubscription gates the API on subscription status. Suspended
// or cancelled accounts can still log in (to see billing state) but cannot
// use the product.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if user.SubscriptionStatus == "suspended" || user.SubscriptionStatus == "cancelled" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Subscription inactive. Please update your billing."})
			return
		}

		c.Next()
	}
}
