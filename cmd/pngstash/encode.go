// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"filippo.io/age"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/pngstash/pngstash/lib/png"
	"github.com/pngstash/pngstash/lib/stash"
)

// runEncode appends a payload chunk to a PNG. With --output the result
// is written to a new file; without it, the container structure is
// printed so the caller can inspect what would be written.
func runEncode(args []string) error {
	var (
		pngPath    string
		message    string
		typeName   string
		outputPath string
		compress   bool
		recipients []string
		passphrase bool
	)

	flagSet := pflag.NewFlagSet("pngstash encode", pflag.ContinueOnError)
	flagSet.StringVarP(&pngPath, "png", "p", "", "path to the source PNG file (required)")
	flagSet.StringVarP(&message, "message", "m", "", "message to hide (required)")
	flagSet.StringVarP(&typeName, "chunk-type", "t", "", "4-letter chunk type to write, e.g. ruSt (required)")
	flagSet.StringVarP(&outputPath, "output", "o", "", "write the result here instead of printing the container")
	flagSet.BoolVar(&compress, "compress", false, "zlib-compress the payload before embedding")
	flagSet.StringArrayVar(&recipients, "recipient", nil, "age X25519 recipient to encrypt to (repeatable)")
	flagSet.BoolVar(&passphrase, "passphrase", false, "encrypt with a passphrase prompted on the terminal")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if pngPath == "" || message == "" || typeName == "" {
		printFlagUsage(flagSet)
		return fmt.Errorf("--png, --message, and --chunk-type are required")
	}

	chunkType, err := png.ParseChunkType(typeName)
	if err != nil {
		return err
	}

	opts := stash.Options{Compress: compress}
	for _, recipientKey := range recipients {
		recipient, err := age.ParseX25519Recipient(recipientKey)
		if err != nil {
			return fmt.Errorf("parsing recipient %q: %w", recipientKey, err)
		}
		opts.Recipients = append(opts.Recipients, recipient)
	}
	if passphrase {
		phrase, err := promptPassphrase(true)
		if err != nil {
			return err
		}
		recipient, err := age.NewScryptRecipient(phrase)
		if err != nil {
			return fmt.Errorf("preparing passphrase encryption: %w", err)
		}
		opts.Recipients = append(opts.Recipients, recipient)
	}

	container, err := loadContainer(pngPath)
	if err != nil {
		return err
	}
	if err := stash.Embed(container, chunkType, []byte(message), opts); err != nil {
		return err
	}

	if outputPath != "" {
		return writeContainer(outputPath, container)
	}
	fmt.Print(container)
	return nil
}

// promptPassphrase reads a passphrase from the terminal without echo.
// With confirm set, the passphrase is read twice and must match.
func promptPassphrase(confirm bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--passphrase requires an interactive terminal")
	}

	fmt.Fprint(os.Stderr, "Passphrase: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if len(first) == 0 {
		return "", fmt.Errorf("passphrase must not be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, "Confirm passphrase: ")
		second, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if string(first) != string(second) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}

	return string(first), nil
}
