// Package imaging normalizes product photos before they are attached to an
// item: every accepted image comes out as a bounded JPEG data URI regardless
// of whether it was picked from disk or captured from a camera.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Pipeline limits.
const (
	// MaxRawSize is the largest source file accepted for processing.
	MaxRawSize = 2 << 20 // 2 MiB

	// MaxEdge bounds the longer edge of the normalized image. Images
	// already within bounds are never upscaled.
	MaxEdge = 400

	// UploadQuality is the JPEG quality for picked files.
	UploadQuality = 70

	// CaptureQuality is the JPEG quality of the intermediate frame encode
	// when capturing from a camera.
	CaptureQuality = 90

	// MaxEncodedSize caps the decoded byte size of the final payload.
	MaxEncodedSize = 200 << 10 // 200 KiB
)

const dataURIPrefix = "data:image/jpeg;base64,"

// Pipeline rejections. Callers surface these to the user; anything else is
// an unexpected processing failure.
var (
	ErrUnsupportedType    = errors.New("imaging: not an image file")
	ErrTooLarge           = errors.New("imaging: source file exceeds 2 MiB")
	ErrCompressedTooLarge = errors.New("imaging: image still too large after compression")
)

// Encoded is a processed image ready to be attached to an item.
type Encoded struct {
	DataURI string
	Width   int
	Height  int

	// PayloadSize is the decoded byte size of the data URI content.
	PayloadSize int
}

// Process normalizes a picked image file: gates on declared type and raw
// size, downscales to MaxEdge and re-encodes as JPEG. The result is rejected
// if it still exceeds MaxEncodedSize after compression.
func Process(r io.Reader, contentType string) (*Encoded, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedType
	}

	raw, err := io.ReadAll(io.LimitReader(r, MaxRawSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(raw) > MaxRawSize {
		return nil, ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedType
	}

	return encode(img, UploadQuality)
}

// ProcessFrame normalizes a captured camera frame. The frame goes through a
// lossy capture-quality encode first, then the same downscaling and final
// size gate as a picked file. The raw file-size gate does not apply to
// captures.
func ProcessFrame(frame image.Image) (*Encoded, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(CaptureQuality)); err != nil {
		return nil, fmt.Errorf("encoding camera frame: %w", err)
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding camera frame: %w", err)
	}
	return encode(img, UploadQuality)
}

func encode(img image.Image, quality int) (*Encoded, error) {
	bounds := img.Bounds()
	if bounds.Dx() > MaxEdge || bounds.Dy() > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	// Estimated from the base64 length, matching the server-side gate.
	payloadSize := len(b64) * 3 / 4
	if payloadSize > MaxEncodedSize {
		return nil, ErrCompressedTooLarge
	}

	return &Encoded{
		DataURI:     dataURIPrefix + b64,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		PayloadSize: payloadSize,
	}, nil
}
