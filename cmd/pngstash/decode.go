// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"filippo.io/age"
	"github.com/spf13/pflag"

	"github.com/pngstash/pngstash/lib/png"
	"github.com/pngstash/pngstash/lib/stash"
)

// runDecode prints the payload hidden in the named chunk. A missing
// chunk is a valid empty result, not a failure: "chunk not found" is
// printed and the exit code stays zero.
func runDecode(args []string) error {
	var (
		pngPath      string
		typeName     string
		identityPath string
		passphrase   bool
	)

	flagSet := pflag.NewFlagSet("pngstash decode", pflag.ContinueOnError)
	flagSet.StringVarP(&pngPath, "png", "p", "", "path to the PNG file (required)")
	flagSet.StringVarP(&typeName, "chunk-type", "t", "", "4-letter chunk type to read (required)")
	flagSet.StringVarP(&identityPath, "identity", "i", "", "file with age identities for encrypted payloads")
	flagSet.BoolVar(&passphrase, "passphrase", false, "decrypt with a passphrase prompted on the terminal")
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

	var identities []age.Identity
	if identityPath != "" {
		file, err := os.Open(identityPath)
		if err != nil {
			return fmt.Errorf("opening identity file: %w", err)
		}
		parsed, parseErr := age.ParseIdentities(file)
		file.Close()
		if parseErr != nil {
			return fmt.Errorf("parsing identity file %s: %w", identityPath, parseErr)
		}
		identities = parsed
	}
	if passphrase {
		phrase, err := promptPassphrase(false)
		if err != nil {
			return err
		}
		identity, err := age.NewScryptIdentity(phrase)
		if err != nil {
			return fmt.Errorf("preparing passphrase decryption: %w", err)
		}
		identities = append(identities, identity)
	}

	container, err := loadContainer(pngPath)
	if err != nil {
		return err
	}

	payload, err := stash.Extract(container, typeName, identities)
	if errors.Is(err, png.ErrChunkNotFound) {
		fmt.Println("chunk not found")
		return nil
	}
	if err != nil {
		return err
	}

	if !utf8.Valid(payload) {
		return fmt.Errorf("%w: use print to inspect binary payloads", png.ErrNotText)
	}
	fmt.Println(string(payload))
	return nil
}
