package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestManualProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewManualProgressBar(&out, 10, 4)

	bar.Increment()
	bar.Add(10)
	if bar.Progress() != 1 {
		t.Errorf("progress: want 1 have %v", bar.Progress())
	}

	bar.Close()
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("display: missing percentage in %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Error("close: line not ended")
	}
}
