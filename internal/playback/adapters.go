package playback

import "sync"

// StatePlayer records the desired playback state for a rendering
// surface that polls for it instead of being driven directly.
type StatePlayer struct {
	mu      sync.Mutex
	playing bool
}

// Play marks the video as playing
func (p *StatePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
}

// Pause marks the video as paused
func (p *StatePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Playing reports whether the video should be playing
func (p *StatePlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// PulseCounter counts haptic pulses for surfaces that poll for
// pending feedback.
type PulseCounter struct {
	mu sync.Mutex
	n  uint64
}

// Pulse records one haptic pulse
func (h *PulseCounter) Pulse() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.n++
}

// Count returns the number of pulses recorded so far
func (h *PulseCounter) Count() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
