package face

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"SIAKAD/attendance"
	"SIAKAD/facerec"
	"SIAKAD/models"
	"SIAKAD/vision"
)

var (
	engine   *facerec.Engine
	recorder *attendance.Recorder
)

// Setup wires the handlers to the process-wide engine and recorder.
func Setup(e *facerec.Engine, r *attendance.Recorder) {
	engine = e
	recorder = r
}

type RegisterPayload struct {
	StudentId int64    `json:"student_id" binding:"required"`
	Frames    []string `json:"frames"`
}

type ImagePayload struct {
	Image string `json:"image" binding:"required"`
}

type FramePayload struct {
	Frame string `json:"frame" binding:"required"`
}

// RegisterHandler enrolls a student from an ordered batch of frames and flips
// the enrollment flag on success (including simulated success in degraded
// mode).
func RegisterHandler(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	var student models.Student
	if err := models.DB.First(&student, payload.StudentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Student not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load student."})
		return
	}

	result, err := engine.Register(student.Id, payload.Frames)
	if err != nil {
		switch {
		case errors.Is(err, facerec.ErrInsufficientSamples):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No frames provided."})
		case errors.Is(err, facerec.ErrNoFaceDetected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed: " + err.Error()})
		}
		return
	}

	if err := models.DB.Model(&student).Update("has_face_registered", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update enrollment status."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   result.Message,
		"simulated": result.Simulated,
		"samples":   result.SampleCount,
	})
}

// StatusHandler reports whether a student has stored face samples.
func StatusHandler(c *gin.Context) {
	var student models.Student
	if err := models.DB.First(&student, "id = ?", c.Param("student_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Student not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load student."})
		return
	}

	count, err := engine.SampleCount(student.Id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check enrollment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_registered": count > 0,
		"sample_count":  count,
	})
}

// RecognizeHandler identifies every enrolled face in a single image.
func RecognizeHandler(c *gin.Context) {
	var payload ImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image provided."})
		return
	}

	matches, err := engine.Recognize(payload.Image)
	if err != nil {
		if errors.Is(err, vision.ErrDecode) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Could not decode image."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Recognition failed: " + err.Error()})
		return
	}

	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		var student models.Student
		if err := models.DB.First(&student, m.StudentId).Error; err != nil {
			// Encoding without a student row; skip, same as manual cleanup.
			continue
		}
		out = append(out, gin.H{
			"student_id": m.StudentId,
			"name":       student.FullName,
			"reg_no":     student.RegNo,
			"confidence": m.Confidence,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "available": engine.Available(), "matches": out})
}

// LiveFrameHandler handles the polled camera feed: identifies faces and marks
// today's attendance at most once per student. Repeated polls of the same
// face report already_marked instead of writing again.
func LiveFrameHandler(c *gin.Context) {
	var payload FramePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No frame provided."})
		return
	}

	if !engine.Available() {
		c.JSON(http.StatusOK, gin.H{"success": true, "available": false, "results": []gin.H{}})
		return
	}

	matches, err := engine.Recognize(payload.Frame)
	if err != nil {
		if errors.Is(err, vision.ErrDecode) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Could not decode frame."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Recognition failed: " + err.Error()})
		return
	}

	today := attendance.DayKey(time.Now())
	results := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		var student models.Student
		if err := models.DB.First(&student, m.StudentId).Error; err != nil {
			continue
		}

		already, err := recorder.MarkPresent(&student, today, m.Confidence)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record attendance."})
			return
		}

		results = append(results, gin.H{
			"student_id":     student.Id,
			"name":           student.FullName,
			"reg_no":         student.RegNo,
			"confidence":     m.Confidence,
			"already_marked": already,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "available": true, "results": results})
}

// AvailabilityHandler lets the frontend switch UI when the vision backend is
// missing.
func AvailabilityHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": engine.Available()})
}
