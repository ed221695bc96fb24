// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package png

import "fmt"

// ChunkType is a 4-byte PNG chunk type code. The four bytes are ASCII
// letters; the case of each byte is a property bit (bit 5, 0x20) that
// tells a generic processor how to treat a chunk it does not recognize.
// ChunkType is a comparable value type — two codes are the same chunk
// type exactly when their bytes are equal.
type ChunkType [4]byte

// propertyBit is the per-byte case bit: set (lowercase) or clear
// (uppercase) carries the meaning, not the letter itself.
const propertyBit = 0x20

// ChunkTypeFromBytes builds a ChunkType from raw bytes. Each byte must
// be an ASCII letter; anything else returns ErrInvalidChunkType. Case
// is preserved — it is the property encoding, not decoration.
func ChunkTypeFromBytes(raw [4]byte) (ChunkType, error) {
	for i, b := range raw {
		if !isLetter(b) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is 0x%02x, want an ASCII letter", ErrInvalidChunkType, i, b)
		}
	}
	return ChunkType(raw), nil
}

// ParseChunkType builds a ChunkType from its textual form: exactly four
// ASCII letters, e.g. "tEXt" or "ruSt".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q is %d bytes, want 4", ErrInvalidChunkType, s, len(s))
	}
	var raw [4]byte
	copy(raw[:], s)
	return ChunkTypeFromBytes(raw)
}

// Bytes returns the 4 raw type bytes.
func (t ChunkType) Bytes() [4]byte {
	return [4]byte(t)
}

// String returns the type as its 4 ASCII characters.
func (t ChunkType) String() string {
	return string(t[:])
}

// IsCritical reports whether the chunk is critical to displaying the
// file (byte 0 uppercase). Lowercase marks an ancillary chunk, which is
// what pngstash writes — decoders that do not understand it may skip it.
func (t ChunkType) IsCritical() bool {
	return t[0]&propertyBit == 0
}

// IsPublic reports whether the type is a public, standardized one
// (byte 1 uppercase) rather than application-private.
func (t ChunkType) IsPublic() bool {
	return t[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved property byte (byte 2)
// is uppercase, as the current PNG format revision requires.
func (t ChunkType) IsReservedBitValid() bool {
	return t[2]&propertyBit == 0
}

// IsSafeToCopy reports whether an editor that does not recognize the
// chunk may copy it unmodified to a modified file (byte 3 lowercase).
func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// IsValid reports whether the type is structurally valid under the
// current format revision: four ASCII letters with the reserved byte
// uppercase. A type can be representable but invalid (e.g. "RuSt",
// whose reserved byte is lowercase).
func (t ChunkType) IsValid() bool {
	for _, b := range t {
		if !isLetter(b) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

// isLetter reports whether b is an ASCII letter, A-Z or a-z.
func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
