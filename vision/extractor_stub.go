//go:build !dlib

package vision

// NewExtractor in a build without the dlib tag: the vision capability is
// absent. Every extraction yields no faces and callers fall back to their
// degraded paths.
func NewExtractor(modelsDir string) (Extractor, error) {
	return unavailableExtractor{}, nil
}

type unavailableExtractor struct{}

func (unavailableExtractor) Available() bool { return false }

func (unavailableExtractor) Extract(*Frame) ([][]float64, error) {
	return nil, nil
}

func (unavailableExtractor) Close() {}
