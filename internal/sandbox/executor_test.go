package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/ulrunner/drc/internal/vfile"
)

func TestExecuteReturnsResult(t *testing.T) {
	emitted := map[string]string{
		vfile.HarnessLogicalName: `result = args[0] + args[1];`,
	}
	val, fault, err := Execute(context.Background(), NewContext(), emitted, nil, []any{1, 2}, time.Second)
	if err != nil {
		t.Fatalf("Execute internal error: %v", err)
	}
	if fault != nil {
		t.Fatalf("unexpected fault: %v", fault)
	}
	if got := val.Export(); got != int64(3) {
		t.Errorf("result = %v, want 3", got)
	}
}

func TestExecuteCapturesThrow(t *testing.T) {
	emitted := map[string]string{
		vfile.HarnessLogicalName: `throw new Error("boom");`,
	}
	_, fault, err := Execute(context.Background(), NewContext(), emitted, nil, nil, time.Second)
	if err != nil {
		t.Fatalf("Execute internal error: %v", err)
	}
	if fault == nil {
		t.Fatal("expected a fault for a thrown error")
	}
	if fault.Exception == nil {
		t.Error("expected fault to carry the goja exception")
	}
}

func TestExecuteTimesOut(t *testing.T) {
	emitted := map[string]string{
		vfile.HarnessLogicalName: `while (true) {}`,
	}
	_, fault, err := Execute(context.Background(), NewContext(), emitted, nil, nil, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Execute internal error: %v", err)
	}
	if fault == nil || !fault.Timeout {
		t.Fatalf("expected a timeout fault, got %+v", fault)
	}
}

func TestExecuteMissingHarnessIsInternalError(t *testing.T) {
	_, _, err := Execute(context.Background(), NewContext(), map[string]string{}, nil, nil, time.Second)
	if err == nil {
		t.Fatal("expected an internal error when no harness module is present")
	}
	var ie *InternalError
	if !asInternalError(err, &ie) {
		t.Fatalf("expected *InternalError, got %T: %v", err, err)
	}
}

func asInternalError(err error, target **InternalError) bool {
	if e, ok := err.(*InternalError); ok {
		*target = e
		return true
	}
	return false
}
