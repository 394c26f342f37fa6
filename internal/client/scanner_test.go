package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

type deviceMock struct {
	stops atomic.Int32
}

func (d *deviceMock) Frame(ctx context.Context) ([]byte, error) {
	return []byte("frame"), nil
}

func (d *deviceMock) Stop() {
	d.stops.Add(1)
}

type detectorMock struct {
	mu      sync.Mutex
	results []string
}

func (d *detectorMock) Detect(frame []byte) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.results) == 0 {
		return "", nil
	}
	code := d.results[0]
	d.results = d.results[1:]
	return code, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)
	return log
}

func TestScanSession_DetectsAndClosesItself(t *testing.T) {
	device := &deviceMock{}
	detector := &detectorMock{results: []string{"", "", "4008477040"}}
	detected := make(chan string, 1)

	s := NewScanSession(device, detector, testLogger(t), func(code string) {
		detected <- code
	})

	select {
	case code := <-detected:
		assert.Equal(t, "4008477040", code)
	case <-time.After(3 * time.Second):
		t.Fatal("no detection before timeout")
	}

	// Close after self-shutdown must not release the device twice.
	s.Close()
	assert.Equal(t, int32(1), device.stops.Load())
}

func TestScanSession_ManualClose(t *testing.T) {
	device := &deviceMock{}
	detector := &detectorMock{}

	s := NewScanSession(device, detector, testLogger(t), func(code string) {
		t.Errorf("unexpected detection %q", code)
	})

	s.Close()
	s.Close()

	assert.Equal(t, int32(1), device.stops.Load())
}

func TestScanSession_CloseFromCallback(t *testing.T) {
	device := &deviceMock{}
	detector := &detectorMock{results: []string{"4008477040"}}

	ready := make(chan *ScanSession, 1)
	done := make(chan struct{})
	s := NewScanSession(device, detector, testLogger(t), func(code string) {
		(<-ready).Close()
		close(done)
	})
	ready <- s

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("callback did not run")
	}
	assert.Equal(t, int32(1), device.stops.Load())
}
