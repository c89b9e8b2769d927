package vision

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"
)

// ErrDecode marks a frame that could not be turned into an image. In a
// multi-frame registration batch the bad frame is skipped, not the batch.
var ErrDecode = errors.New("cannot decode image frame")

// Frame is one decoded still. JPEG holds the encoded bytes the face backend
// consumes; Width/Height come from the decoded image.
type Frame struct {
	JPEG   []byte
	Width  int
	Height int
}

// DecodeFrame turns a transport-encoded (base64, optionally a data URL) frame
// into a validated Frame. Browsers send "data:image/jpeg;base64,...." so the
// prefix is stripped before decoding.
func DecodeFrame(b64 string) (*Frame, error) {
	if i := strings.IndexByte(b64, ','); i >= 0 {
		b64 = b64[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	frame := &Frame{Width: bounds.Dx(), Height: bounds.Dy()}

	// The dlib backend takes JPEG bytes; anything else is transcoded.
	if format == "jpeg" {
		frame.JPEG = raw
		return frame, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	frame.JPEG = buf.Bytes()
	return frame, nil
}
