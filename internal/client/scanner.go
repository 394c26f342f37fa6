package client

import (
	"context"
	"sync"
	"time"

	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

// scanInterval paces barcode detection attempts on the live stream.
const scanInterval = 250 * time.Millisecond

// CaptureDevice is a camera or any other frame source. Frame blocks until
// the next frame is available or the context ends. Stop releases the device
// and must be safe to call more than once.
type CaptureDevice interface {
	Frame(ctx context.Context) ([]byte, error)
	Stop()
}

// Detector extracts a barcode from a raw frame. Empty string means no code
// was found in this frame.
type Detector interface {
	Detect(frame []byte) (string, error)
}

// ScanSession runs barcode detection over a capture device and reports the
// first detected code through the callback. The session closes itself after
// a detection; Close from the outside is equally valid and the two paths
// may race without releasing the device twice.
type ScanSession struct {
	device   CaptureDevice
	detector Detector
	onDetect func(code string)
	log      *logger.Logger

	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}
}

// NewScanSession starts a detection loop and returns the running session.
func NewScanSession(device CaptureDevice, detector Detector, log *logger.Logger, onDetect func(code string)) *ScanSession {
	ctx, cancel := context.WithCancel(context.Background())
	s := &ScanSession{
		device:   device,
		detector: detector,
		onDetect: onDetect,
		log:      log,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go func() {
		code := s.run(ctx)
		close(s.done)
		if code != "" {
			s.onDetect(code)
		}
	}()
	return s
}

func (s *ScanSession) run(ctx context.Context) string {
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ""
		case <-ticker.C:
		}

		frame, err := s.device.Frame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ""
			}
			s.log.Warnw("frame capture failed", "error", err)
			continue
		}

		code, err := s.detector.Detect(frame)
		if err != nil {
			s.log.Warnw("barcode detection failed", "error", err)
			continue
		}
		if code == "" {
			continue
		}

		// Release the camera before handing over the code so the
		// callback never sees a still-running session.
		s.shutdown()
		return code
	}
}

// Close stops detection and releases the capture device. Calling it after a
// detection already closed the session is a no-op.
func (s *ScanSession) Close() {
	s.shutdown()
	<-s.done
}

func (s *ScanSession) shutdown() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.device.Stop()
	})
}
