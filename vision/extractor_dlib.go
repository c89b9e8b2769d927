//go:build dlib

package vision

import "github.com/Kagami/go-face"

// NewExtractor loads the dlib models from modelsDir. Selected at build time
// by the dlib tag; this is the only file that touches go-face.
func NewExtractor(modelsDir string) (Extractor, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, err
	}
	return &dlibExtractor{rec: rec}, nil
}

type dlibExtractor struct {
	rec *face.Recognizer
}

func (e *dlibExtractor) Available() bool { return true }

func (e *dlibExtractor) Extract(frame *Frame) ([][]float64, error) {
	faces, err := e.rec.Recognize(frame.JPEG)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, 0, len(faces))
	for _, f := range faces {
		d := make([]float64, len(f.Descriptor))
		for i, v := range f.Descriptor {
			d[i] = float64(v)
		}
		out = append(out, d)
	}
	return out, nil
}

func (e *dlibExtractor) Close() {
	e.rec.Close()
}
