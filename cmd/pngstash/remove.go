// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/pngstash/pngstash/lib/stash"
)

// runRemove deletes the first chunk of the given type and rewrites the
// file. Unlike decode, a missing chunk is a failure here: the caller
// asked for a mutation that could not happen.
func runRemove(args []string) error {
	var (
		pngPath    string
		typeName   string
		outputPath string
	)

	flagSet := pflag.NewFlagSet("pngstash remove", pflag.ContinueOnError)
	flagSet.StringVarP(&pngPath, "png", "p", "", "path to the PNG file (required)")
	flagSet.StringVarP(&typeName, "chunk-type", "t", "", "4-letter chunk type to remove (required)")
	flagSet.StringVarP(&outputPath, "output", "o", "", "write the result here instead of rewriting in place")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if pngPath == "" || typeName == "" {
		printFlagUsage(flagSet)
		return fmt.Errorf("--png and --chunk-type are required")
	}

	container, err := loadContainer(pngPath)
	if err != nil {
		return err
	}

	removed, err := stash.Remove(container, typeName)
	if err != nil {
		return err
	}
	fmt.Printf("removed %s\n", removed)

	if outputPath == "" {
		outputPath = pngPath
	}
	return writeContainer(outputPath, container)
}
