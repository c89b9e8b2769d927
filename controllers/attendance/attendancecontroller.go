package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"SIAKAD/models"
)

// GetTodayAttendance lists today's records, biometric and manual alike.
func GetTodayAttendance(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var records []models.Attendance
	if err := models.DB.Where("date = ?", today).Order("created_at desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "date": today, "attendance": records})
}

// GetStudentHistory lists one student's attendance, newest first.
func GetStudentHistory(c *gin.Context) {
	var history []models.Attendance
	err := models.DB.Where("student_id = ?", c.Param("student_id")).
		Order("date DESC, created_at DESC").
		Find(&history).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load attendance history."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}
