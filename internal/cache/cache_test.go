package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ulrunner/drc/internal/remap"
)

func TestBuildKeyDeterministic(t *testing.T) {
	k1 := BuildKey("export default (x: number) => x;", "number", []string{"number"}, nil)
	k2 := BuildKey("export default (x: number) => x;", "number", []string{"number"}, nil)
	if k1 != k2 {
		t.Errorf("BuildKey not deterministic: %q vs %q", k1, k2)
	}
}

func TestBuildKeyDistinguishesFields(t *testing.T) {
	base := BuildKey("a", "number", []string{"string"}, nil)
	tests := []struct {
		name string
		key  string
	}{
		{"source", BuildKey("b", "number", []string{"string"}, nil)},
		{"returnType", BuildKey("a", "string", []string{"string"}, nil)},
		{"argTypes", BuildKey("a", "number", []string{"number"}, nil)},
		{"auxTexts", BuildKey("a", "number", []string{"string"}, []string{"x"})},
		// Concatenation without a separator would collide these two.
		{"no-separator-collision", BuildKey("a", "number", []string{"s", "tring"}, nil)},
	}
	for _, tt := range tests {
		if tt.key == base {
			t.Errorf("%s: expected a distinct key from base, got the same one", tt.name)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	if m.Has("k") {
		t.Fatal("fresh store should not have key")
	}
	if _, ok := m.Get("k"); ok {
		t.Fatal("fresh store Get should miss")
	}
	want := Result{Success: true, EmittedJS: map[string]string{"harness": "void 0;"}}
	m.Set("k", want)
	if !m.Has("k") {
		t.Fatal("store should have key after Set")
	}
	got, ok := m.Get("k")
	if !ok || got.EmittedJS["harness"] != want.EmittedJS["harness"] {
		t.Fatalf("Get() = %+v, ok=%v", got, ok)
	}
}

func TestMemoryStoreCachesFailure(t *testing.T) {
	m := NewMemory()
	m.Set("k", Result{Success: false, Diagnostics: []remap.Diagnostic{{Code: 2322}}})
	got, ok := m.Get("k")
	if !ok || got.Success {
		t.Fatalf("expected a cached failure result, got %+v ok=%v", got, ok)
	}
}

func TestLRUStoreEviction(t *testing.T) {
	l := NewLRU(1, 0)
	l.Set("a", Result{Success: true})
	l.Set("b", Result{Success: true})
	if l.Has("a") {
		t.Error("expected oldest entry evicted once capacity exceeded")
	}
	if !l.Has("b") {
		t.Error("expected most recent entry retained")
	}
}

func TestLRUStoreTTL(t *testing.T) {
	l := NewLRU(10, time.Millisecond)
	l.Set("a", Result{Success: true})
	time.Sleep(5 * time.Millisecond)
	if l.Has("a") {
		t.Error("expected entry to expire after ttl")
	}
}

func TestCoalescingCachesResult(t *testing.T) {
	c := NewCoalescing(NewMemory())
	calls := 0
	compute := func() (Result, error) {
		calls++
		return Result{Success: true}, nil
	}
	if _, err := c.GetOrCompute("k", compute); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute("k", compute); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestCoalescingCollapsesConcurrentCalls(t *testing.T) {
	c := NewCoalescing(NewMemory())
	var calls int
	var mu sync.Mutex
	release := make(chan struct{})
	compute := func() (Result, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return Result{Success: true}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetOrCompute("shared", compute); err != nil {
				t.Error(err)
			}
		}()
	}
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("concurrent GetOrCompute calls ran compute %d times, want 1", calls)
	}
}

func TestCoalescingDoesNotCacheError(t *testing.T) {
	c := NewCoalescing(NewMemory())
	wantErr := errors.New("compile failed to even produce diagnostics")
	calls := 0
	_, err := c.GetOrCompute("k", func() (Result, error) {
		calls++
		return Result{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if c.Has("k") {
		t.Error("an erroring compute must not populate the cache")
	}

	// Retrying after an error should call compute again, not replay ⊥.
	if _, err := c.GetOrCompute("k", func() (Result, error) {
		calls++
		return Result{Success: true}, nil
	}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
