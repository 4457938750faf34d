package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	New(&buf, false).Warn("shown", "key", "work-challenge-all")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written without verbose: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "service=mchallenge") {
		t.Errorf("warn record missing fields: %q", out)
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug record dropped with verbose: %q", buf.String())
	}
}
