package models

import (
	"encoding/json"
	"time"
)

// FaceEncoding holds the full set of face descriptor samples for one enrolled
// student, one row per student. Samples is a JSON array of fixed-dimension
// float vectors; registering again replaces the whole row.
type FaceEncoding struct {
	Id          int64           `gorm:"primaryKey" json:"id"`
	StudentId   int64           `gorm:"uniqueIndex" json:"student_id"`
	Samples     json.RawMessage `gorm:"type:json" json:"-"`
	SampleCount int             `json:"sample_count"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FaceEncoding) TableName() string {
	return "face_encodings"
}

// Vectors decodes the stored sample set.
func (f *FaceEncoding) Vectors() ([][]float64, error) {
	var vs [][]float64
	if err := json.Unmarshal(f.Samples, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

// SetVectors encodes and stores the sample set.
func (f *FaceEncoding) SetVectors(vs [][]float64) error {
	raw, err := json.Marshal(vs)
	if err != nil {
		return err
	}
	f.Samples = raw
	f.SampleCount = len(vs)
	return nil
}
