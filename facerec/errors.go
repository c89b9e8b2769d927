package facerec

import "errors"

var (
	// ErrInsufficientSamples rejects an empty registration batch before any
	// extraction work happens.
	ErrInsufficientSamples = errors.New("no frames provided")

	// ErrNoFaceDetected rejects a registration batch that yielded zero usable
	// descriptors across all frames; the store is left unchanged.
	ErrNoFaceDetected = errors.New("no faces detected in the provided frames")

	// ErrBadDimension marks a descriptor whose length does not match the
	// configured model dimension.
	ErrBadDimension = errors.New("descriptor has wrong dimension")
)
