// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// chunkOverhead is the fixed per-chunk framing: 4-byte length + 4-byte
// type + 4-byte CRC. A chunk with an empty payload encodes to exactly
// this many bytes, so it is also the minimum decodable size.
const chunkOverhead = 12

// Chunk is a single PNG chunk: a typed, length-prefixed, checksummed
// record. The payload length and CRC are derived from the type and data
// at construction and verified at decode, so a Chunk in hand always
// satisfies its own invariants: Length() == len(Data()) and CRC() is
// the CRC-32 of the type bytes followed by the data bytes.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk from a type and payload, computing the CRC.
// It never fails: any payload bytes are representable. The data slice
// is not copied — the caller must not modify it afterwards.
func NewChunk(chunkType ChunkType, data []byte) *Chunk {
	return &Chunk{
		chunkType: chunkType,
		data:      data,
		crc:       chunkCRC(chunkType, data),
	}
}

// DecodeChunk parses a single chunk occupying the entire buffer.
// Returns ErrInvalidLength if the buffer is shorter than the 12-byte
// minimum, if the declared payload length runs past the end of the
// buffer, or if bytes remain after the CRC; ErrInvalidChunkType if the
// type bytes are not letters; ErrInvalidCRC on checksum mismatch.
func DecodeChunk(buffer []byte) (*Chunk, error) {
	chunk, consumed, err := decodeChunkPrefix(buffer)
	if err != nil {
		return nil, err
	}
	if consumed != len(buffer) {
		return nil, fmt.Errorf("%w: %d trailing bytes after chunk CRC", ErrInvalidLength, len(buffer)-consumed)
	}
	return chunk, nil
}

// decodeChunkPrefix parses the chunk at the start of buffer and returns
// how many bytes it occupied. This is the sequential-parse workhorse
// for container decoding; every slice is bounds-checked against the
// declared length before use, so hostile length fields fail with
// ErrInvalidLength instead of panicking.
func decodeChunkPrefix(buffer []byte) (*Chunk, int, error) {
	if len(buffer) < chunkOverhead {
		return nil, 0, fmt.Errorf("%w: %d bytes, want at least %d", ErrInvalidLength, len(buffer), chunkOverhead)
	}

	// The length field is attacker-controlled; compare in uint64 so the
	// check cannot be defeated by int overflow on any platform.
	length := binary.BigEndian.Uint32(buffer[0:4])
	if uint64(length) > uint64(len(buffer)-chunkOverhead) {
		return nil, 0, fmt.Errorf("%w: declared payload of %d bytes exceeds the %d remaining",
			ErrInvalidLength, length, len(buffer)-chunkOverhead)
	}
	payloadLength := int(length)
	total := chunkOverhead + payloadLength

	chunkType, err := ChunkTypeFromBytes([4]byte(buffer[4:8]))
	if err != nil {
		return nil, 0, err
	}

	data := make([]byte, payloadLength)
	copy(data, buffer[8:8+payloadLength])

	storedCRC := binary.BigEndian.Uint32(buffer[8+payloadLength : total])
	if computed := chunkCRC(chunkType, data); storedCRC != computed {
		return nil, 0, fmt.Errorf("%w: chunk %s stored %08x, computed %08x",
			ErrInvalidCRC, chunkType, storedCRC, computed)
	}

	return &Chunk{chunkType: chunkType, data: data, crc: storedCRC}, total, nil
}

// Length returns the payload byte count, the value of the encoded
// length field.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type code.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the payload. The slice is the chunk's own backing store;
// callers must treat it as read-only.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the chunk's CRC-32 checksum.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Bytes encodes the chunk in wire layout: big-endian length, type
// bytes, payload, big-endian CRC. The exact inverse of DecodeChunk.
func (c *Chunk) Bytes() []byte {
	buffer := make([]byte, chunkOverhead+len(c.data))
	binary.BigEndian.PutUint32(buffer[0:4], uint32(len(c.data)))
	copy(buffer[4:8], c.chunkType[:])
	copy(buffer[8:], c.data)
	binary.BigEndian.PutUint32(buffer[8+len(c.data):], c.crc)
	return buffer
}

// Text returns the payload as a string, or ErrNotText if the payload
// is not valid UTF-8. Display convenience only — binary payloads go
// through Data.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: chunk %s", ErrNotText, c.chunkType)
	}
	return string(c.data), nil
}

// String returns a one-line human summary. Non-text payloads are
// described by size rather than dumped.
func (c *Chunk) String() string {
	if text, err := c.Text(); err == nil {
		return fmt.Sprintf("%s length=%d crc=%08x %q", c.chunkType, len(c.data), c.crc, text)
	}
	return fmt.Sprintf("%s length=%d crc=%08x (binary)", c.chunkType, len(c.data), c.crc)
}

// chunkCRC computes the chunk checksum: CRC-32 (IEEE) over the type
// bytes followed by the payload bytes, per the PNG specification.
func chunkCRC(chunkType ChunkType, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(chunkType[:])
	crc.Write(data)
	return crc.Sum32()
}
