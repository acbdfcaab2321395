package main

import (
	"fmt"
	"os"

	"github.com/pthm/hxtree/lib/generator"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "generate":
		if err := run(args, (*generator.Generator).Generate); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "clean":
		if err := run(args, (*generator.Generator).Clean); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("hxtree version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hxtree - server-side component trees for Go

Usage:
  hxtree <command> [arguments]

Commands:
  generate [packages]   Generate handler tables for //hxtree:handler methods
  clean [packages]      Remove generated files (*_hx.go)
  version               Print version
  help                  Show this help

Options for generate and clean:
  --dry-run             Show what would be written or removed

Examples:
  hxtree generate ./...              Generate for all packages
  hxtree generate ./components       Generate for one package
  hxtree generate --dry-run ./...    Preview generation
  hxtree clean ./...                 Remove all generated files`)
}

func run(args []string, op func(*generator.Generator, ...string) error) error {
	var dryRun bool
	var patterns []string

	for _, arg := range args {
		if arg == "--dry-run" {
			dryRun = true
		} else {
			patterns = append(patterns, arg)
		}
	}

	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	gen := generator.New(generator.Options{
		DryRun: dryRun,
	})
	return op(gen, patterns...)
}
