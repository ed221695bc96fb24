// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package png

import "errors"

// The closed set of codec failure modes. Decode paths wrap these with
// positional context via fmt.Errorf("...: %w", ...); callers branch on
// them with errors.Is.
var (
	// ErrInvalidLength indicates a buffer too short to hold a chunk, a
	// declared payload length that runs past the end of the buffer, or
	// trailing bytes after a chunk's CRC.
	ErrInvalidLength = errors.New("png: invalid chunk length")

	// ErrInvalidChunkType indicates type bytes that are not four ASCII
	// letters.
	ErrInvalidChunkType = errors.New("png: invalid chunk type")

	// ErrInvalidCRC indicates a chunk whose stored checksum does not
	// match the CRC-32 of its type and data bytes.
	ErrInvalidCRC = errors.New("png: CRC mismatch")

	// ErrChunkNotFound indicates a removal target that does not exist
	// in the container.
	ErrChunkNotFound = errors.New("png: chunk not found")

	// ErrBadSignature indicates a buffer that does not begin with the
	// 8-byte PNG signature.
	ErrBadSignature = errors.New("png: bad signature")

	// ErrNotText indicates chunk data that is not valid UTF-8 when a
	// textual view was requested.
	ErrNotText = errors.New("png: chunk data is not valid UTF-8")
)
