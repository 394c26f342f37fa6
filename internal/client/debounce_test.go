package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateRecorder struct {
	mu     sync.Mutex
	inputs []string
}

func (r *gateRecorder) record(input string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, input)
}

func (r *gateRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.inputs...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestGate_FiresOnceWithLastInput(t *testing.T) {
	rec := &gateRecorder{}
	g := NewGate(30*time.Millisecond, 8, rec.record)

	// Simulated keystrokes arriving faster than the delay.
	g.Trigger("40084770")
	g.Trigger("400847704")
	g.Trigger("4008477040")

	waitFor(t, func() bool { return len(rec.all()) > 0 })

	require.Equal(t, []string{"4008477040"}, rec.all())

	// No second firing follows.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"4008477040"}, rec.all())
}

func TestGate_IgnoresShortInput(t *testing.T) {
	rec := &gateRecorder{}
	g := NewGate(20*time.Millisecond, 8, rec.record)

	g.Trigger("4008477")

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func TestGate_ShortInputCancelsPendingLookup(t *testing.T) {
	rec := &gateRecorder{}
	g := NewGate(30*time.Millisecond, 8, rec.record)

	g.Trigger("4008477040")
	// Deleting characters below the threshold drops the armed lookup.
	g.Trigger("4008")

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func TestGate_Cancel(t *testing.T) {
	rec := &gateRecorder{}
	g := NewGate(30*time.Millisecond, 8, rec.record)

	g.Trigger("4008477040")
	g.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func TestGate_Defaults(t *testing.T) {
	g := NewGate(0, 0, func(string) {})

	assert.Equal(t, DefaultLookupDelay, g.delay)
	assert.Equal(t, DefaultMinLookupLen, g.minLen)
}
