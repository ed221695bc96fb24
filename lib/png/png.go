// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"bytes"
	"fmt"
	"strings"
)

// Signature is the fixed 8-byte prefix identifying a PNG file: the
// high-bit byte 0x89, the letters "PNG", and the CR LF SUB LF transfer
// tripwires from the PNG specification.
var Signature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// PNG is a whole PNG file viewed as its chunk container: the signature
// followed by an ordered chunk sequence. Order is meaningful — Bytes
// reproduces decoded or inserted order exactly, so a decode/encode
// round trip is byte-identical.
//
// PNG is not safe for concurrent mutation; the pngstash tools operate
// on one container per invocation.
type PNG struct {
	chunks []*Chunk
}

// FromChunks composes a container from a chunk list, in the given order.
func FromChunks(chunks ...*Chunk) *PNG {
	return &PNG{chunks: chunks}
}

// Decode parses a whole PNG file. The buffer must begin with the PNG
// signature (ErrBadSignature otherwise) and the remainder must be a
// sequence of valid chunks read to exhaustion. The first chunk that
// fails to decode aborts the whole parse with its error — there are no
// partial containers.
func Decode(buffer []byte) (*PNG, error) {
	if len(buffer) < len(Signature) || !bytes.Equal(buffer[:len(Signature)], Signature[:]) {
		return nil, fmt.Errorf("%w: file does not start with the 8-byte PNG signature", ErrBadSignature)
	}

	container := &PNG{}
	rest := buffer[len(Signature):]
	for len(rest) > 0 {
		chunk, consumed, err := decodeChunkPrefix(rest)
		if err != nil {
			return nil, fmt.Errorf("chunk %d (at byte offset %d): %w",
				len(container.chunks), len(buffer)-len(rest), err)
		}
		container.chunks = append(container.chunks, chunk)
		rest = rest[consumed:]
	}
	return container, nil
}

// Bytes encodes the container: signature, then every chunk in order.
// The exact inverse of Decode.
func (p *PNG) Bytes() []byte {
	size := len(Signature)
	for _, chunk := range p.chunks {
		size += chunkOverhead + len(chunk.data)
	}

	buffer := make([]byte, 0, size)
	buffer = append(buffer, Signature[:]...)
	for _, chunk := range p.chunks {
		buffer = append(buffer, chunk.Bytes()...)
	}
	return buffer
}

// AppendChunk adds a chunk at the end of the sequence. Duplicate types
// are allowed; nothing is deduplicated.
func (p *PNG) AppendChunk(chunk *Chunk) {
	p.chunks = append(p.chunks, chunk)
}

// ChunkByType returns the first chunk whose type's textual form equals
// typeName, or nil if the container has none. Absence is a normal
// outcome, not an error.
func (p *PNG) ChunkByType(typeName string) *Chunk {
	for _, chunk := range p.chunks {
		if chunk.chunkType.String() == typeName {
			return chunk
		}
	}
	return nil
}

// RemoveChunk removes and returns the first chunk of the given type.
// Returns ErrChunkNotFound if no chunk matches. Exactly one chunk is
// removed even when duplicates exist; callers wanting remove-all loop
// until ErrChunkNotFound.
func (p *PNG) RemoveChunk(typeName string) (*Chunk, error) {
	for i, chunk := range p.chunks {
		if chunk.chunkType.String() == typeName {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return chunk, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, typeName)
}

// Chunks returns the ordered chunk sequence. The slice is the
// container's own backing store; callers must treat it as read-only.
func (p *PNG) Chunks() []*Chunk {
	return p.chunks
}

// String renders the container for human inspection: the signature and
// one line per chunk. Not part of the binary contract.
func (p *PNG) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PNG signature % x, %d chunks\n", Signature[:], len(p.chunks))
	for i, chunk := range p.chunks {
		fmt.Fprintf(&b, "  [%d] %s\n", i, chunk)
	}
	return b.String()
}
