package rconfig

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.TimeoutMs != 5000 {
		t.Errorf("TimeoutMs = %d, want 5000", o.TimeoutMs)
	}
	if o.CacheCapacity != 512 {
		t.Errorf("CacheCapacity = %d, want 512", o.CacheCapacity)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("default options should validate, got %v", err)
	}
}

func TestLoadJSONOverridesOnlyGivenFields(t *testing.T) {
	o, err := LoadJSON([]byte(`{"timeoutMs": 1000}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TimeoutMs != 1000 {
		t.Errorf("TimeoutMs = %d, want 1000", o.TimeoutMs)
	}
	if o.CacheCapacity != 512 {
		t.Errorf("CacheCapacity = %d, want default 512 preserved", o.CacheCapacity)
	}
}

func TestLoadJSONRejectsInvalidOptions(t *testing.T) {
	if _, err := LoadJSON([]byte(`{"timeoutMs": -1}`)); err == nil {
		t.Fatal("expected an error for a negative timeout")
	}
}

func TestMessageMappersIncludesDefaults(t *testing.T) {
	o := DefaultOptions()
	mappers := o.MessageMappers()
	if _, ok := mappers[2792]; !ok {
		t.Fatal("expected default mapper for code 2792 to carry through")
	}
}

func TestMessageMappersCallerOverride(t *testing.T) {
	o := DefaultOptions()
	o.TypeErrorCodeMessageMappers = map[int][]MessageMapperEntry{
		1192: {{Match: "default export", Replace: "entry point"}},
	}
	mappers := o.MessageMappers()
	rewritten, ok := mappers[1192]("No default export found")
	if !ok {
		t.Fatal("expected caller-supplied mapper to recognize its own match text")
	}
	if rewritten != "No entry point found" {
		t.Errorf("rewritten = %q", rewritten)
	}
}

func TestValidateDetailedCollectsAllErrors(t *testing.T) {
	o := Options{TimeoutMs: 0, CacheCapacity: 0, CacheTTLMs: -1}
	result := o.ValidateDetailed()
	if result.IsValid() {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 3 {
		t.Errorf("len(Errors) = %d, want 3", len(result.Errors))
	}
}

func TestValidateDetailedWarnsOnLongTimeout(t *testing.T) {
	o := DefaultOptions()
	o.TimeoutMs = 120_000
	result := o.ValidateDetailed()
	if !result.IsValid() {
		t.Fatal("a long timeout is a warning, not an error")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d, want 1", len(result.Warnings))
	}
}
