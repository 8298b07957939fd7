package diagnostic

import (
	"strings"
	"testing"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Category: CategoryTimeout,
		File:     "options.json",
		Line:     10,
		Column:   5,
		Message:  "timeoutMs exceeds 60s",
		Hint:     "lower timeoutMs or accept long-running sandboxed calls",
	}

	s := d.String()
	if !strings.Contains(s, "options.json:10:5") {
		t.Errorf("expected file:line:col, got %q", s)
	}
	if !strings.Contains(s, "warning") {
		t.Errorf("expected 'warning', got %q", s)
	}
	if !strings.Contains(s, "[timeout]") {
		t.Errorf("expected category, got %q", s)
	}
	if !strings.Contains(s, "hint:") {
		t.Errorf("expected hint, got %q", s)
	}
}

func TestCollector_WarnAndError(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryMessageMapper, "options.json", 5, "empty match text never matches")
	c.Error(CategoryCache, "", 0, "cacheCapacity must be positive")

	if c.WarningCount() != 1 {
		t.Errorf("expected 1 warning, got %d", c.WarningCount())
	}
	if c.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", c.ErrorCount())
	}
	if !c.HasErrors() {
		t.Error("expected HasErrors() = true")
	}
}

func TestCollector_StrictMode(t *testing.T) {
	c := NewCollector(true, false) // strict mode
	c.Warn(CategoryTimeout, "options.json", 1, "timeoutMs exceeds 60s")

	// In strict mode, warnings become errors
	if c.ErrorCount() != 1 {
		t.Errorf("expected 1 error (strict mode), got %d", c.ErrorCount())
	}
	if c.WarningCount() != 0 {
		t.Errorf("expected 0 warnings (strict mode), got %d", c.WarningCount())
	}
}

func TestCollector_QuietMode(t *testing.T) {
	c := NewCollector(false, true) // quiet mode
	c.Warn(CategoryTimeout, "options.json", 1, "timeoutMs exceeds 60s")
	c.Info(CategoryCache, "options.json", 1, "cache capacity at default")
	c.Error(CategoryCache, "", 0, "cacheCapacity must be positive") // errors still show

	if len(c.Diagnostics()) != 1 {
		t.Errorf("expected 1 diagnostic (only error), got %d", len(c.Diagnostics()))
	}
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryMessageMapper, "a.json", 1, "warn1")
	c.Warn(CategoryMessageMapper, "b.json", 2, "warn2")
	c.Error(CategoryCache, "", 0, "err1")

	summary := c.Summary()
	if !strings.Contains(summary, "1 error") {
		t.Errorf("expected '1 error' in summary, got %q", summary)
	}
	if !strings.Contains(summary, "2 warning") {
		t.Errorf("expected '2 warning' in summary, got %q", summary)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	// Should not panic
	c.Warn(CategoryTimeout, "", 0, "test")
	c.Error(CategoryCache, "", 0, "test")
	if c.HasErrors() {
		t.Error("nil collector should not have errors")
	}
	if c.Summary() != "" {
		t.Error("nil collector should return empty summary")
	}
}

func TestCollector_FormatAll(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryTimeout, "options.json", 10, "timeoutMs exceeds 60s")

	formatted := c.FormatAll()
	if !strings.Contains(formatted, "options.json:10") {
		t.Errorf("expected formatted output with file:line, got %q", formatted)
	}
}

func TestCollector_WarnWithHint(t *testing.T) {
	c := NewCollector(false, false)
	c.WarnWithHint(CategoryTimeout, "options.json", 5, "timeoutMs exceeds 60s", "lower timeoutMs")

	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].Hint != "lower timeoutMs" {
		t.Errorf("expected hint, got %v", diags)
	}
}
