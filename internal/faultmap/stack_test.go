package faultmap

import "testing"

func TestParseStackNamedFrame(t *testing.T) {
	frames := ParseStack("Error: boom\n    at F (__execution_harness:3:10)\n    at __execution_harness:5:2")
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	if frames[0].FuncName != "F" || frames[0].Module != "__execution_harness" || frames[0].Line != 3 || frames[0].Column != 10 {
		t.Errorf("frames[0] = %+v", frames[0])
	}
	if frames[1].FuncName != "" || frames[1].Line != 5 || frames[1].Column != 2 {
		t.Errorf("frames[1] = %+v", frames[1])
	}
}

func TestParseStackSkipsUnmatchedLines(t *testing.T) {
	frames := ParseStack("TypeError: not a function\n    garbage line with no position\n    at __user_file:1:1")
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	if frames[0].Module != "__user_file" {
		t.Errorf("frames[0].Module = %q", frames[0].Module)
	}
}

func TestParseStackEmpty(t *testing.T) {
	if frames := ParseStack(""); len(frames) != 0 {
		t.Errorf("expected no frames for empty stack, got %d", len(frames))
	}
}
