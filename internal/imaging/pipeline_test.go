package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBase64(t *testing.T, s string) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	return b
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcess_DownscalesLargeImage(t *testing.T) {
	src := encodePNG(t, testImage(3000, 2000))

	enc, err := Process(src, "image/png")
	require.NoError(t, err)

	assert.Equal(t, MaxEdge, enc.Width, "longer edge bound to MaxEdge")
	assert.LessOrEqual(t, enc.Height, MaxEdge)
	assert.LessOrEqual(t, enc.PayloadSize, MaxEncodedSize)
	assert.True(t, strings.HasPrefix(enc.DataURI, "data:image/jpeg;base64,"))
}

func TestProcess_DoesNotUpscale(t *testing.T) {
	src := encodePNG(t, testImage(120, 80))

	enc, err := Process(src, "image/png")
	require.NoError(t, err)

	assert.Equal(t, 120, enc.Width)
	assert.Equal(t, 80, enc.Height)
}

func TestProcess_PreservesAspectRatio(t *testing.T) {
	src := encodePNG(t, testImage(800, 1600))

	enc, err := Process(src, "image/png")
	require.NoError(t, err)

	assert.Equal(t, MaxEdge, enc.Height)
	assert.Equal(t, MaxEdge/2, enc.Width)
}

func TestProcess_RejectsNonImageType(t *testing.T) {
	_, err := Process(strings.NewReader("%PDF-1.4"), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestProcess_RejectsUndecodableData(t *testing.T) {
	_, err := Process(strings.NewReader("this is not an image"), "image/jpeg")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestProcess_RejectsOversizedFile(t *testing.T) {
	_, err := Process(bytes.NewReader(make([]byte, MaxRawSize+1)), "image/jpeg")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestProcessFrame(t *testing.T) {
	enc, err := ProcessFrame(testImage(1280, 720))
	require.NoError(t, err)

	assert.Equal(t, MaxEdge, enc.Width)
	assert.LessOrEqual(t, enc.PayloadSize, MaxEncodedSize)
}

func TestProcessFrame_NoRawSizeGate(t *testing.T) {
	// A noisy high-resolution frame whose intermediate capture encode is far
	// larger than the raw file limit. Only uploads gate on raw size.
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, 4000, 2600))
	for y := 0; y < 2600; y++ {
		for x := 0; x < 4000; x++ {
			n := uint8(rng.Intn(256))
			img.Set(x, y, color.RGBA{R: n, G: n, B: n, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(CaptureQuality)))
	require.Greater(t, buf.Len(), MaxRawSize, "intermediate encode must exceed the upload gate")

	enc, err := ProcessFrame(img)
	require.NoError(t, err)
	assert.Equal(t, MaxEdge, enc.Width)
	assert.LessOrEqual(t, enc.PayloadSize, MaxEncodedSize)
}

func TestProcess_EncodedRoundTrips(t *testing.T) {
	src := encodePNG(t, testImage(500, 500))

	enc, err := Process(src, "image/png")
	require.NoError(t, err)

	b64 := strings.TrimPrefix(enc.DataURI, "data:image/jpeg;base64,")
	decoded, err := imaging.Decode(bytes.NewReader(decodeBase64(t, b64)))
	require.NoError(t, err)
	assert.Equal(t, MaxEdge, decoded.Bounds().Dx())
}
