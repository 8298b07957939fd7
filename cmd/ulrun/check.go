package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ulrunner/drc/internal/rconfig"
	"github.com/ulrunner/drc/pkg/drc"
)

func runCheck(args []string) int {
	f := parseCommandFlags(args)
	if f.File == "" {
		fmt.Fprintln(os.Stderr, "check: missing <file>")
		return 1
	}

	source, err := os.ReadFile(f.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		return 1
	}

	opts := rconfig.DefaultOptions()
	opts.TimeoutMs = f.TimeoutMs
	runner := drc.NewRunner(opts)

	artifacts, diags, err := runner.PreProcess(context.Background(), string(source), f.ReturnType, f.ArgTypes, nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: host error: %v\n", err)
		return 2
	}
	if len(diags) != 0 {
		printDiagnostics(diags)
		return 1
	}

	if f.DumpJSON {
		dump, err := artifacts.DumpJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "check: dumping artifacts: %v\n", err)
			return 2
		}
		os.Stdout.Write(dump)
		fmt.Println()
		return 0
	}

	fmt.Println("OK")
	return 0
}
