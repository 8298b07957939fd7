package rconfig

import (
	"fmt"

	"github.com/ulrunner/drc/internal/diagnostic"
)

// ValidationResult holds options validation results, mirroring the
// teacher's config validation shape: hard errors vs. advisory warnings.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate performs the minimal checks LoadJSON enforces: a non-positive
// timeout or cache capacity, or a negative cache TTL, is a hard error,
// since each makes the Runner unusable rather than merely suboptimal.
// It returns the first error ValidateDetailed finds.
func (o Options) Validate() error {
	result := o.ValidateDetailed()
	if !result.IsValid() {
		return fmt.Errorf("%s", result.Errors[0])
	}
	return nil
}

// ValidateDetailed performs thorough options validation with suggestions,
// returning every error and warning found rather than stopping at the
// first one. It builds on internal/diagnostic's Collector rather than
// appending to Errors/Warnings directly, so Options validation goes
// through the same severity/category machinery the rest of the teacher
// codebase's config checks used.
func (o Options) ValidateDetailed() *ValidationResult {
	c := diagnostic.NewCollector(false, false)

	if o.TimeoutMs <= 0 {
		c.Error(diagnostic.CategoryTimeout, "", 0, fmt.Sprintf("timeoutMs: must be positive, got %d", o.TimeoutMs))
	} else if o.TimeoutMs > 60_000 {
		c.Warn(diagnostic.CategoryTimeout, "", 0,
			fmt.Sprintf("timeoutMs: %d exceeds 60s — long-running sandboxed code ties up the caller's goroutine for a while", o.TimeoutMs))
	}

	if o.CacheCapacity <= 0 {
		c.Error(diagnostic.CategoryCache, "", 0, fmt.Sprintf("cacheCapacity: must be positive, got %d", o.CacheCapacity))
	}

	if o.CacheTTLMs < 0 {
		c.Error(diagnostic.CategoryCache, "", 0, fmt.Sprintf("cacheTtlMs: must not be negative, got %d", o.CacheTTLMs))
	}

	for code, entries := range o.TypeErrorCodeMessageMappers {
		for _, e := range entries {
			if e.Match == "" {
				c.Warn(diagnostic.CategoryMessageMapper, "", 0,
					fmt.Sprintf("typeErrorCodeMessageMappers[%d]: empty match text never matches — this entry is a no-op", code))
			}
		}
	}

	result := &ValidationResult{}
	for _, d := range c.Diagnostics() {
		switch d.Severity {
		case diagnostic.SeverityError:
			result.Errors = append(result.Errors, d.Message)
		case diagnostic.SeverityWarning:
			result.Warnings = append(result.Warnings, d.Message)
		}
	}
	return result
}
