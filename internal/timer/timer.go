// Package timer implements the rest countdown between sets.
package timer

import (
	"fmt"
	"sync"
)

// FormatClock renders seconds as zero-padded HH:MM:SS.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

type Preset int

const (
	PresetGeneral Preset = iota
	PresetHypertrophy
	PresetStrength
)

// Presets in the order they are offered.
var Presets = []Preset{PresetGeneral, PresetHypertrophy, PresetStrength}

func (p Preset) Minutes() int {
	switch p {
	case PresetHypertrophy:
		return 3
	case PresetStrength:
		return 5
	default:
		return 2
	}
}

func (p Preset) String() string {
	switch p {
	case PresetHypertrophy:
		return "Hypertrophy: 3 minutes"
	case PresetStrength:
		return "Strength training: 5 minutes"
	default:
		return "Default: 2 minutes"
	}
}

// Countdown is safe for use from the UI loop and a ticking goroutine.
type Countdown struct {
	mu        sync.Mutex
	minutes   int
	seconds   int
	remaining int64
	running   bool
}

func NewCountdown() *Countdown {
	return &Countdown{}
}

// Set configures the duration used by the next Start.
func (c *Countdown) Set(minutes, seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.minutes = max(minutes, 0)
	c.seconds = max(seconds, 0)
}

// Preset configures the preset duration and shows it without starting.
func (c *Countdown) Preset(p Preset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.minutes = p.Minutes()
	c.seconds = 0
	c.remaining = int64(c.minutes) * 60
}

// Start begins counting down from the configured duration.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = int64(c.minutes)*60 + int64(c.seconds)
	c.running = c.remaining > 0
}

// Resume continues a paused countdown.
func (c *Countdown) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = c.remaining > 0
}

func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.remaining = 0
}

// Tick advances one second. It reports true on the tick that reaches zero.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.remaining <= 0 {
		return false
	}
	c.remaining--
	if c.remaining == 0 {
		c.running = false
		return true
	}
	return false
}

func (c *Countdown) Remaining() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Duration returns the configured minutes and seconds.
func (c *Countdown) Duration() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minutes, c.seconds
}
