package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ulrunner/drc/internal/rconfig"
	"github.com/ulrunner/drc/pkg/drc"
)

func runExecute(args []string) int {
	f := parseCommandFlags(args)
	if f.File == "" {
		fmt.Fprintln(os.Stderr, "run: missing <file>")
		return 1
	}

	source, err := os.ReadFile(f.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return 1
	}

	var callArgs []any
	if f.ArgsJSON != "" {
		if err := json.Unmarshal([]byte(f.ArgsJSON), &callArgs); err != nil {
			fmt.Fprintf(os.Stderr, "run: --args: %v\n", err)
			return 1
		}
	}

	opts := rconfig.DefaultOptions()
	opts.TimeoutMs = f.TimeoutMs
	runner := drc.NewRunner(opts)

	value, diags, err := runner.ExecuteUserCode(context.Background(), string(source), callArgs, f.ReturnType, f.ArgTypes, nil, nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: host error: %v\n", err)
		return 2
	}
	if len(diags) > 0 {
		printDiagnostics(diags)
		return 1
	}

	out, err := json.Marshal(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: encoding result: %v\n", err)
		return 2
	}
	fmt.Println(string(out))
	return 0
}

func printDiagnostics(diags []drc.Diagnostic) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, d := range diags {
		_ = enc.Encode(d)
	}
}
