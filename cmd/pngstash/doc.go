// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

// Pngstash hides, retrieves, and removes secret payloads in PNG files
// by inserting and deleting ancillary chunks. The image data is never
// touched — pngstash only rewrites the chunk container around it.
//
// Subcommands:
//
//	encode   append a payload chunk to a PNG
//	decode   print the payload hidden in a PNG
//	remove   delete a payload chunk from a PNG
//	print    dump the chunk structure of a PNG
//	version  print version information
//
// Exit codes:
//
//	0  success (including "chunk not found" on decode, which is a
//	   valid empty result)
//	1  error (malformed PNG, CRC mismatch, missing chunk on remove,
//	   bad arguments)
package main
