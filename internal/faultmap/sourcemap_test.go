package faultmap

import (
	"testing"

	"github.com/go-sourcemap/sourcemap"

	"github.com/ulrunner/drc/internal/vfile"
)

// userSourceMapJSON maps every position on emitted line 1 back to line 1,
// column 1 of __user_file.ts — enough to exercise translation without
// needing a real compiler-emitted map.
const userSourceMapJSON = `{
  "version": 3,
  "sources": ["__user_file.ts"],
  "names": [],
  "mappings": "AAAA"
}`

func mustConsumer(t *testing.T, name, data string) *sourcemap.Consumer {
	t.Helper()
	c, err := sourcemap.Parse(name, []byte(data))
	if err != nil {
		t.Fatalf("sourcemap.Parse: %v", err)
	}
	return c
}

func TestMapDropsFramesOutsideUserFile(t *testing.T) {
	consumers := map[string]*sourcemap.Consumer{
		vfile.UserLogicalName: mustConsumer(t, "__user_file.js.map", userSourceMapJSON),
	}
	stack := "Error: boom\n" +
		"    at helper (__execution_harness:2:1)\n" +
		"    at F (__user_file:1:1)\n"

	f := Map("boom", stack, consumers)

	if f.Message != "Error: boom" {
		t.Errorf("Message = %q", f.Message)
	}
	if f.Location.Line != 1 || f.Location.Column != 1 {
		t.Errorf("Location = %+v, want (1,1)", f.Location)
	}
	if f.Stack == "" {
		t.Fatal("expected a non-empty translated stack")
	}
}

func TestMapNoRetainedFramesDefaultsLocation(t *testing.T) {
	consumers := map[string]*sourcemap.Consumer{
		vfile.UserLogicalName: mustConsumer(t, "__user_file.js.map", userSourceMapJSON),
	}
	stack := "Error: boom\n    at helper (__execution_harness:2:1)\n"

	f := Map("boom", stack, consumers)

	if f.Location.Line != 1 || f.Location.Column != 1 {
		t.Errorf("Location = %+v, want default (1,1)", f.Location)
	}
	if f.Stack != "" {
		t.Errorf("Stack = %q, want empty when no frames retained", f.Stack)
	}
}
