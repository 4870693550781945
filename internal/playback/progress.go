package playback

import "time"

// Progress models the linear progress-bar value for the active
// routine's video, timed to the routine's declared duration. It only
// tracks a start instant; interpolation to frames belongs to the
// rendering surface.
type Progress struct {
	running  bool
	start    time.Time
	duration time.Duration
}

// Restart starts the progress run from zero at the given instant
func (p *Progress) Restart(now time.Time, duration time.Duration) {
	p.running = true
	p.start = now
	p.duration = duration
}

// Reset stops the run and pins the value at zero
func (p *Progress) Reset() {
	p.running = false
	p.start = time.Time{}
	p.duration = 0
}

// Value returns the progress in [0, 1] at the given instant. It is 0
// while not running and clamps at 1 once the duration has elapsed.
func (p *Progress) Value(now time.Time) float64 {
	if !p.running {
		return 0
	}
	if p.duration <= 0 {
		return 1
	}
	elapsed := now.Sub(p.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= p.duration {
		return 1
	}
	return float64(elapsed) / float64(p.duration)
}
