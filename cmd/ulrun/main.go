package main

import (
	"fmt"
	"os"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	switch os.Args[1] {
	case "run":
		return runExecute(os.Args[2:])
	case "check":
		return runCheck(os.Args[2:])
	case "--version", "-v":
		fmt.Println("ulrun", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("ulrun - compile and run UL source through the diagnostic remapping core")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ulrun check <file> [flags]   Compile only, print diagnostics")
	fmt.Println("  ulrun run <file> [flags]     Compile and execute, print the result or diagnostics")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --return <type>        Expected return type expression (default: \"unknown\")")
	fmt.Println("  --arg-types <t1,t2>    Comma-separated expected argument types")
	fmt.Println("  --args <json>          JSON array of arguments to pass to run")
	fmt.Println("  --timeout <ms>         Execution timeout in milliseconds (default: 5000)")
	fmt.Println("  --dump-json            (check only) On success, dump compiled artifacts as JSON instead of \"OK\"")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
}
