// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

// Package png implements the PNG chunk container format: the byte-exact
// codec for chunk type codes, individual chunks, and whole files. It is
// the foundation the rest of pngstash builds on.
//
// The package deliberately knows nothing about pixels. A PNG file is
// treated as an 8-byte signature followed by an ordered sequence of
// chunks, each a length-prefixed, CRC-32-checksummed record:
//
//	Length : u32 big-endian   payload byte count
//	Type   : 4 bytes          ASCII letters only
//	Data   : Length bytes     opaque payload
//	CRC32  : u32 big-endian   over Type ++ Data
//
// Decoding is strict: a bad signature, a non-letter type byte, a length
// that runs past the buffer, or a CRC mismatch aborts the whole parse.
// There are no best-effort partial containers. Encoding is the exact
// inverse of decoding, preserving chunk order byte for byte, which is
// what lets pngstash rewrite files without disturbing the image data it
// never inspects.
//
// All failure modes are sentinel errors (ErrInvalidLength, ErrInvalidCRC,
// ...) wrapped with context; match them with errors.Is.
package png
