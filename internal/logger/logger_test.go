package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetTimestamps(false)
	SetOutput(os.Stderr)
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

func TestGatedLevels_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("d %d", 1)
	Info("i %d", 2)
	Warn("w %d", 3)

	want := "[DEBUG] d 1\n[INFO] i 2\n[WARN] w 3\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestGatedLevels_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Error("pass failed: %s", "boom")

	if buf.String() != "[ERROR] pass failed: boom\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestTimestamps(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetTimestamps(true)

	Error("x")

	line := buf.String()
	if !strings.HasSuffix(line, " [ERROR] x\n") {
		t.Errorf("unexpected output: %q", line)
	}
	if strings.HasPrefix(line, "[ERROR]") {
		t.Errorf("expected timestamp prefix, got %q", line)
	}
}

func TestSection_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Pass")

	if buf.String() != "\n=== Pass ===\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
