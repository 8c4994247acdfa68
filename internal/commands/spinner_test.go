package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Asking")
	s.start()
	time.Sleep(50 * time.Millisecond)
	s.stopWithSuccess("done")

	if !strings.Contains(buf.String(), "done") {
		t.Errorf("expected success message, got %q", buf.String())
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Asking")
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()
	// A second stop must not panic
	s.stopOnce()
}
