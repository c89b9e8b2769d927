// Package facerec implements the biometric identification core: the
// persisted per-student encoding store, the in-memory gallery it derives,
// nearest-neighbor matching with a confidence threshold, and the multi-frame
// registration workflow.
package facerec

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"gorm.io/gorm"

	"SIAKAD/helper"
	"SIAKAD/models"
	"SIAKAD/vision"
)

// Match is one accepted identification for a single query face.
type Match struct {
	StudentId  int64   `json:"student_id"`
	Confidence float64 `json:"confidence"`
	Distance   float64 `json:"distance"`
}

// RegistrationResult reports the outcome of a successful registration.
// Simulated is true when the vision backend is absent and the student was
// enrolled without biometric data.
type RegistrationResult struct {
	SampleCount int
	Simulated   bool
	Message     string
}

// gallery holds every enrolled descriptor tagged with its owner, as parallel
// slices. A gallery is built once and never mutated; Reload swaps in a fresh
// one, so readers always see a consistent snapshot.
type gallery struct {
	vectors [][]float64
	owners  []int64
}

// Engine ties the encoding store, the gallery and the extractor together.
// One instance serves the whole process.
type Engine struct {
	db        *gorm.DB
	extractor vision.Extractor
	threshold float64
	dim       int

	mu      sync.RWMutex
	gallery *gallery
}

// New builds an engine and loads the gallery from the database.
func New(db *gorm.DB, extractor vision.Extractor, threshold float64, dim int) (*Engine, error) {
	e := &Engine{
		db:        db,
		extractor: extractor,
		threshold: threshold,
		dim:       dim,
		gallery:   &gallery{},
	}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Available reports whether the vision backend is present. Independent of
// how many students are enrolled.
func (e *Engine) Available() bool {
	return e.extractor.Available()
}

// Reload scans all persisted encodings and swaps in a freshly built gallery.
// Concurrent matchers keep reading the old snapshot until the swap.
func (e *Engine) Reload() error {
	var rows []models.FaceEncoding
	if err := e.db.Find(&rows).Error; err != nil {
		return err
	}

	g := &gallery{}
	for i := range rows {
		vecs, err := rows[i].Vectors()
		if err != nil {
			log.Printf("skipping corrupt encoding row for student %d: %v", rows[i].StudentId, err)
			continue
		}
		for _, v := range vecs {
			if len(v) != e.dim {
				continue
			}
			g.vectors = append(g.vectors, v)
			g.owners = append(g.owners, rows[i].StudentId)
		}
	}

	e.mu.Lock()
	e.gallery = g
	e.mu.Unlock()
	return nil
}

func (e *Engine) snapshot() *gallery {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gallery
}

// GallerySize returns the number of descriptors currently loaded.
func (e *Engine) GallerySize() int {
	return len(e.snapshot().vectors)
}

// HasEnrollment checks the persisted store, not the gallery, so it stays
// meaningful in degraded mode.
func (e *Engine) HasEnrollment(studentID int64) (bool, error) {
	var count int64
	err := e.db.Model(&models.FaceEncoding{}).Where("student_id = ?", studentID).Count(&count).Error
	return count > 0, err
}

// SampleCount returns how many descriptors are stored for a student, zero if
// the student is not enrolled.
func (e *Engine) SampleCount(studentID int64) (int, error) {
	var enc models.FaceEncoding
	err := e.db.Where("student_id = ?", studentID).First(&enc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return enc.SampleCount, nil
}

// RegisterSamples persists the full descriptor set for a student, replacing
// any prior set, then rebuilds the gallery. The write is durable before the
// call returns.
func (e *Engine) RegisterSamples(studentID int64, vectors [][]float64) error {
	if len(vectors) == 0 {
		return ErrInsufficientSamples
	}
	for _, v := range vectors {
		if len(v) != e.dim {
			return fmt.Errorf("%w: got %d, want %d", ErrBadDimension, len(v), e.dim)
		}
	}

	enc := models.FaceEncoding{StudentId: studentID}
	if err := enc.SetVectors(vectors); err != nil {
		return err
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).Delete(&models.FaceEncoding{}).Error; err != nil {
			return err
		}
		return tx.Create(&enc).Error
	})
	if err != nil {
		return err
	}

	return e.Reload()
}

// Register runs the enrollment workflow over an ordered batch of
// transport-encoded frames. Undecodable frames are skipped; only a batch
// that yields zero descriptors overall is rejected. With the vision backend
// absent the registration is simulated so enrollment flags keep working.
func (e *Engine) Register(studentID int64, frames []string) (*RegistrationResult, error) {
	if len(frames) == 0 {
		return nil, ErrInsufficientSamples
	}

	if !e.extractor.Available() {
		return &RegistrationResult{
			Simulated: true,
			Message:   "Face registration simulated (recognition backend not available).",
		}, nil
	}

	var collected [][]float64
	undecodable := 0
	for _, f := range frames {
		frame, err := vision.DecodeFrame(f)
		if err != nil {
			undecodable++
			continue
		}
		vecs, err := e.extractor.Extract(frame)
		if err != nil {
			return nil, err
		}
		for _, v := range vecs {
			if len(v) == e.dim {
				collected = append(collected, v)
			}
		}
	}

	if len(collected) == 0 {
		if undecodable == len(frames) {
			return nil, fmt.Errorf("%w: none of the %d frames could be decoded", ErrNoFaceDetected, len(frames))
		}
		return nil, fmt.Errorf("%w: ensure good lighting and face visibility", ErrNoFaceDetected)
	}

	if err := e.RegisterSamples(studentID, collected); err != nil {
		return nil, err
	}

	return &RegistrationResult{
		SampleCount: len(collected),
		Message:     fmt.Sprintf("Face registered successfully with %d sample(s).", len(collected)),
	}, nil
}

// Recognize identifies every face in one transport-encoded frame against the
// current gallery. An empty gallery or an absent backend yields an empty
// result, never an error.
func (e *Engine) Recognize(imageB64 string) ([]Match, error) {
	if !e.extractor.Available() {
		return nil, nil
	}

	g := e.snapshot()
	if len(g.vectors) == 0 {
		return nil, nil
	}

	frame, err := vision.DecodeFrame(imageB64)
	if err != nil {
		return nil, err
	}
	queries, err := e.extractor.Extract(frame)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(queries))
	for _, q := range queries {
		if m, ok := g.match(q, e.threshold); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// match scans for the global minimum distance. Strict less-than keeps the
// first gallery index on ties, so results are deterministic in build order.
func (g *gallery) match(query []float64, threshold float64) (Match, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range g.vectors {
		if len(v) != len(query) {
			continue
		}
		if d := helper.EuclideanDistance(query, v); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return Match{}, false
	}

	conf := helper.DistanceToConfidence(bestDist)
	if conf < threshold {
		return Match{}, false
	}
	return Match{StudentId: g.owners[best], Confidence: conf, Distance: bestDist}, true
}
