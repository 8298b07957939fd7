package main

import (
	"strconv"
	"strings"
)

// commandFlags is the flag set both `run` and `check` parse, mirroring
// tsgonest's own manual switch-on-arg loop (cmd/tsgonest/build.go's
// parseBuildArgs) rather than reaching for a flag-parsing library.
type commandFlags struct {
	File       string
	ReturnType string
	ArgTypes   []string
	ArgsJSON   string
	TimeoutMs  int64
	DumpJSON   bool
}

func parseCommandFlags(args []string) commandFlags {
	f := commandFlags{ReturnType: "unknown", TimeoutMs: 5000}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--return":
			if i+1 < len(args) {
				i++
				f.ReturnType = args[i]
			}
		case "--arg-types":
			if i+1 < len(args) {
				i++
				if args[i] != "" {
					f.ArgTypes = strings.Split(args[i], ",")
				}
			}
		case "--args":
			if i+1 < len(args) {
				i++
				f.ArgsJSON = args[i]
			}
		case "--timeout":
			if i+1 < len(args) {
				i++
				if ms, err := strconv.ParseInt(args[i], 10, 64); err == nil {
					f.TimeoutMs = ms
				}
			}
		case "--dump-json":
			f.DumpJSON = true
		default:
			if f.File == "" && !strings.HasPrefix(arg, "-") {
				f.File = arg
			}
		}
	}

	return f
}
