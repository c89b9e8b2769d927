package models

import "time"

// Student mirrors the record owned by the main application. Only the fields
// this service reads (identity, display info) or writes (the enrollment flag)
// are mapped.
type Student struct {
	Id                int64     `gorm:"primaryKey" json:"id"`
	FullName          string    `json:"full_name"`
	RegNo             string    `gorm:"index" json:"reg_no"`
	ClassSectionId    int64     `gorm:"index" json:"class_section_id"`
	Status            string    `gorm:"default:active" json:"status"`
	HasFaceRegistered bool      `gorm:"default:false" json:"has_face_registered"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
