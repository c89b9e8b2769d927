// Package vision is the boundary to the face detection capability. The real
// backend (dlib via go-face) needs cgo and model files, so it sits behind the
// "dlib" build tag; the default build carries a deterministic unavailable
// stub and the rest of the service degrades instead of failing.
package vision

// Extractor produces zero or more face descriptors from one decoded frame.
// Zero detected faces is a normal outcome, not an error.
type Extractor interface {
	// Available reports whether the vision capability is present.
	Available() bool
	// Extract returns one fixed-dimension descriptor per detected face.
	Extract(frame *Frame) ([][]float64, error)
	// Close releases backend resources.
	Close()
}
