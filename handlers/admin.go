package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"scriptgen-backend/database"
	"scriptgen-backend/models"
)

// Helper: admin check via the role claim.
func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == "admin"
}

// GET /api/admin/users
func GetAllUsers(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	var users []models.User
	database.DB.Select("id, email, role, tier, subscription_status, preferred_voice, created_at").Find(&users)

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// DELETE /api/admin/users/:id — removes the user and everything they own.
func DeleteUser(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	id := c.Param("id")
	if err := database.DB.Delete(&models.User{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete user"})
		return
	}
	// Explicit cascade: sqlite does not always enforce the FK constraints,
	// and orphaned usage rows would pollute the accounting. A failed cascade
	// does not fail the delete, but it must not go unnoticed either.
	if err := database.DB.Where("user_id = ?", id).Delete(&models.UsageLog{}).Error; err != nil {
		log.Printf("user delete: usage log cascade failed for user %s: %v", id, err)
	}
	if err := database.DB.Where("user_id = ?", id).Delete(&models.SavedScript{}).Error; err != nil {
		log.Printf("user delete: saved script cascade failed for user %s: %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// PATCH /api/admin/users/:id/tier — manual tier override. Normally the
// billing process does this; the endpoint exists for support cases.
func UpdateUserTier(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Tier               string `json:"tier" binding:"required,oneof=free premium pro"`
		SubscriptionStatus string `json:"subscription_status" binding:"omitempty,oneof=active suspended cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user.Tier = input.Tier
	if input.SubscriptionStatus != "" {
		user.SubscriptionStatus = input.SubscriptionStatus
	}
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated", "data": gin.H{
		"id":                  user.ID,
		"tier":                user.Tier,
		"subscription_status": user.SubscriptionStatus,
	}})
}

// GET /api/admin/usage/export?month=8&year=2026 — usage log dump as Excel,
// for the monthly accounting review. No filter = everything.
func ExportUsageExcel(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	monthStr := c.Query("month")
	yearStr := c.Query("year")

	var logs []models.UsageLog
	query := database.DB.Order("created_at desc")

	if monthStr != "" && yearStr != "" {
		month, _ := strconv.Atoi(monthStr)
		year, _ := strconv.Atoi(yearStr)

		startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		endDate := startDate.AddDate(0, 1, 0)

		query = query.Where("created_at >= ? AND created_at < ?", startDate, endDate)
	}

	query.Find(&logs)

	f := excelize.NewFile()
	sheetName := "Usage Report"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "Date", "Time", "User ID", "Feature", "Success", "Processing (ms)", "Words", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "I1", styleHeader)

	row := 2
	for i, l := range logs {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), l.CreatedAt.Format("02-01-2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), l.CreatedAt.Format("15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), l.UserID)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), l.Feature)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), l.Success)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), l.ProcessingMs)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), l.TokenCount)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), l.ErrorMessage)

		// Red rows for failed attempts, easy to eyeball.
		if !l.Success {
			styleFail, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#EF4444"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styleFail)
		}

		row++
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "C", 12)
	f.SetColWidth(sheetName, "D", "F", 10)
	f.SetColWidth(sheetName, "G", "H", 14)
	f.SetColWidth(sheetName, "I", "I", 40)

	fileName := fmt.Sprintf("usage_report_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate export"})
	}
}
