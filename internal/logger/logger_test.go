package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func reset() {
	SetVerbose(false)
	SetTimestamps(false)
	SetOutput(os.Stderr)
	now = time.Now
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("query %q", "любов")

	if got := buf.String(); got != "[DEBUG] query \"любов\"\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestGatedLevels_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("debug")
	Info("info")
	Section("section")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("reload rejected: %v", "bad title")
	Error("watcher stopped")

	output := buf.String()
	if !strings.Contains(output, "[WARN] reload rejected: bad title\n") {
		t.Errorf("missing warning in %q", output)
	}
	if !strings.Contains(output, "[ERROR] watcher stopped\n") {
		t.Errorf("missing error in %q", output)
	}
}

func TestSection_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Corpus Load")

	if got := buf.String(); got != "\n=== Corpus Load ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestTimestamps(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	SetTimestamps(true)
	now = func() time.Time { return time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC) }

	Info("loaded %d works", 3)

	if got := buf.String(); got != "13:04:05 [INFO] loaded 3 works\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestWriter(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	if Writer() != &buf {
		t.Error("expected Writer to return configured output")
	}
}
