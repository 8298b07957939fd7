package rlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debugf("debug message")
	l.Infof("info message")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered, got %q", buf.String())
	}

	l.Warnf("warn message")
	if !strings.Contains(buf.String(), "warn: warn message") {
		t.Errorf("buf = %q, want it to contain the prefixed warn message", buf.String())
	}
}

func TestLoggerErrorAlwaysPrefixed(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)
	l.Errorf("boom: %s", "detail")
	if !strings.Contains(buf.String(), "error: boom: detail") {
		t.Errorf("buf = %q", buf.String())
	}
}
