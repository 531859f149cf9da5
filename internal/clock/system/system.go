// Package system supplies the wall clock behind crawl timestamps.
package system

import "time"

// Clock implements crawler.Clock with the system wall clock. Timestamps are
// normalized to UTC so lastCrawledAt values stay comparable across sinks no
// matter where the batch ran.
type Clock struct{}

// New returns the process clock.
func New() *Clock {
	return &Clock{}
}

// Now implements crawler.Clock.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
