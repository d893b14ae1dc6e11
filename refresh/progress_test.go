package refresh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(10)
	tracker.Increment(10)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "100.0%")
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 50)

	tracker.Start()
	tracker.Increment(10)
	assert.Empty(t, buf.String(), "should not report before the interval")

	tracker.Increment(40)
	assert.Contains(t, buf.String(), "50/100")
}

func TestProgressTracker_IncrementBeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Start()
	tracker.Increment(25)
	tracker.Finish()

	assert.Contains(t, buf.String(), "10/10")
	assert.NotContains(t, buf.String(), "25/10")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Increment(5)
	tracker.Finish()

	assert.Empty(t, buf.String(), "should not report before Start")
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_FinishEndsLine(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 5, 1)

	tracker.Start()
	tracker.Increment(5)
	tracker.Finish()

	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
