// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/pngstash/pngstash/lib/png"
	"github.com/pngstash/pngstash/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "encode":
		return runEncode(os.Args[2:])
	case "decode":
		return runDecode(os.Args[2:])
	case "remove":
		return runRemove(os.Args[2:])
	case "print":
		return runPrint(os.Args[2:])
	case "version", "--version":
		fmt.Printf("pngstash %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: pngstash <subcommand> [flags]

Subcommands:
  encode    Hide a message in a PNG file
  decode    Print the message hidden in a PNG file
  remove    Delete a hidden-message chunk from a PNG file
  print     Dump the chunk structure of a PNG file
  version   Print version information

Run 'pngstash <subcommand> --help' for subcommand flags.
`)
}

// printFlagUsage writes a subcommand's flag summary to stderr. Used
// when required flags are missing; pflag handles -h/--help itself.
func printFlagUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n%s", flagSet.Name(), flagSet.FlagUsages())
}

// loadContainer reads and decodes a whole PNG file.
func loadContainer(path string) (*png.PNG, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	container, err := png.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return container, nil
}

// writeContainer encodes the container and writes it to path.
func writeContainer(path string, container *png.PNG) error {
	if err := os.WriteFile(path, container.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
