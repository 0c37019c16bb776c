package parser

import "time"

// SetClock replaces the fallback extractor's clock.
func (f *FallbackExtractor) SetClock(now func() time.Time) {
	f.now = now
}
