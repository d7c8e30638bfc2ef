package reembed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTrackerReportsAtInterval(t *testing.T) {
	var buf strings.Builder
	tracker := NewProgressTracker(&buf, 100, 50)

	tracker.Add(30)
	assert.Empty(t, buf.String(), "below the interval, nothing reported yet")

	tracker.Add(30)
	assert.Contains(t, buf.String(), "60/100")
	assert.Contains(t, buf.String(), "60.0%")
}

func TestProgressTrackerFinishPrintsFinalLine(t *testing.T) {
	var buf strings.Builder
	tracker := NewProgressTracker(&buf, 10, 100)

	tracker.Add(3)
	tracker.Finish()

	out := buf.String()
	assert.Contains(t, out, "10/10")
	assert.Contains(t, out, "100.0%")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestProgressTrackerCapsAtTotal(t *testing.T) {
	var buf strings.Builder
	tracker := NewProgressTracker(&buf, 5, 1)

	tracker.Add(20)
	assert.Contains(t, buf.String(), "5/5")
}

func TestProgressTrackerElapsed(t *testing.T) {
	var buf strings.Builder
	tracker := NewProgressTracker(&buf, 1, 1)

	assert.GreaterOrEqual(t, tracker.Elapsed().Nanoseconds(), int64(0))
}
