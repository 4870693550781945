package feed

import "sync"

// Visibility is one entry of a rendering-surface visibility report.
// Primary marks an item that crossed the visible threshold (50% in the
// reference surface).
type Visibility struct {
	ItemID  string `json:"item_id"`
	Visible bool   `json:"visible"`
	Primary bool   `json:"primary"`
}

// Tracker chooses the single active workout from visibility reports.
// The first reported item that is both visible and primary wins; if no
// item qualifies the active id is left unchanged. Once set it is never
// cleared.
type Tracker struct {
	mu     sync.Mutex
	active string
}

// NewTracker creates a new active-item tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe applies a visibility report and returns the active workout
// id along with whether it changed.
func (t *Tracker) Observe(report []Visibility) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, entry := range report {
		if entry.Visible && entry.Primary {
			if entry.ItemID == t.active {
				return t.active, false
			}
			t.active = entry.ItemID
			return t.active, true
		}
	}
	return t.active, false
}

// Active returns the current active workout id, empty before the
// first qualifying report
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
