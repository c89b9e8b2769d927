package models

import "time"

// Attendance is one student's attendance for one calendar day. Date is stored
// as YYYY-MM-DD; the composite unique index is what makes biometric marking
// idempotent under concurrent live-frame polls.
type Attendance struct {
	Id             int64     `gorm:"primaryKey" json:"id"`
	StudentId      int64     `gorm:"uniqueIndex:uniq_student_date" json:"student_id"`
	ClassSectionId int64     `gorm:"index" json:"class_section_id"`
	Date           string    `gorm:"uniqueIndex:uniq_student_date;size:10" json:"date"`
	Status         string    `json:"status"`
	Method         string    `json:"method"`
	Confidence     float64   `json:"confidence"`
	MarkedBy       string    `json:"marked_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
