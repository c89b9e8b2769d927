// Package attendance writes the daily attendance records produced by face
// identification, at most once per student per calendar day.
package attendance

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"SIAKAD/models"
)

const (
	StatusPresent = "present"
	MethodFace    = "face_recognition"
	// SystemActor is recorded as the marker for biometric entries.
	SystemActor = "Face Recognition System"
)

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// DayKey formats a calendar date the way attendance rows key it.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MarkPresent records the student present for the given day unless a record
// already exists. The check-then-insert race under concurrent live-frame
// polls is settled by the (student_id, date) unique index: losing the race
// surfaces as gorm.ErrDuplicatedKey and is reported as already marked, not
// as an error.
func (r *Recorder) MarkPresent(student *models.Student, day string, confidence float64) (already bool, err error) {
	var existing models.Attendance
	err = r.db.Where("student_id = ? AND date = ?", student.Id, day).First(&existing).Error

	switch {
	case err == nil:
		return true, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.Attendance{
			StudentId:      student.Id,
			ClassSectionId: student.ClassSectionId,
			Date:           day,
			Status:         StatusPresent,
			Method:         MethodFace,
			Confidence:     confidence,
			MarkedBy:       SystemActor,
		}
		if err := r.db.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return true, nil
			}
			return false, err
		}
		return false, nil

	default:
		return false, err
	}
}
