package timers

// FatigueWindow counts distinct signal onsets within a rolling sample
// window. The ring buffer bounds the observation horizon for status
// display; the distinct count itself only drops on Reset, not as samples
// age out.
type FatigueWindow struct {
	samples   []bool
	next      int
	length    int
	count     int
	prev      bool
	threshold int
}

// NewFatigueWindow creates a window keeping capacity samples and firing at
// threshold distinct onsets.
func NewFatigueWindow(capacity, threshold int) *FatigueWindow {
	if capacity <= 0 {
		capacity = 1
	}
	return &FatigueWindow{
		samples:   make([]bool, capacity),
		threshold: threshold,
	}
}

// Update appends the current frame's value, incrementing the distinct
// count only on a false-to-true transition, and returns the count. A
// signal held true across many frames counts once.
func (window *FatigueWindow) Update(signalTrue bool) int {
	window.samples[window.next] = signalTrue
	window.next = (window.next + 1) % len(window.samples)
	if window.length < len(window.samples) {
		window.length++
	}

	if signalTrue && !window.prev {
		window.count++
	}
	window.prev = signalTrue
	return window.count
}

// Triggered reports whether the distinct count has reached the threshold.
// The caller consumes a trigger by calling Reset.
func (window *FatigueWindow) Triggered() bool {
	return window.count >= window.threshold
}

// Count returns the current distinct-onset count.
func (window *FatigueWindow) Count() int {
	return window.count
}

// Len returns the number of samples currently held.
func (window *FatigueWindow) Len() int {
	return window.length
}

// Reset zeroes the distinct count and clears the window atomically.
func (window *FatigueWindow) Reset() {
	for index := range window.samples {
		window.samples[index] = false
	}
	window.next = 0
	window.length = 0
	window.count = 0
	window.prev = false
}
