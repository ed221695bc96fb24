// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package stash

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
	"github.com/klauspost/compress/zlib"

	"github.com/pngstash/pngstash/lib/png"
)

// ageHeader is the first line of every age-format file. Its presence
// at the start of a payload is what marks it as encrypted.
const ageHeader = "age-encryption.org/v1\n"

// ErrNeedIdentity indicates an encrypted payload extracted without any
// identity to decrypt it.
var ErrNeedIdentity = errors.New("stash: payload is encrypted and no identity was supplied")

// Options controls how Embed wraps the message before chunking it.
// The zero value embeds the message bytes verbatim.
type Options struct {
	// Compress wraps the message in a zlib stream before (optional)
	// encryption.
	Compress bool

	// Recipients, when non-empty, age-encrypts the payload so that any
	// one of the recipients can recover it.
	Recipients []age.Recipient
}

// Embed appends a chunk of the given type carrying the message to the
// container, applying the treatments selected in opts. The chunk's
// length and CRC are computed by the codec; Embed only shapes the
// payload.
func Embed(container *png.PNG, chunkType png.ChunkType, message []byte, opts Options) error {
	payload := message

	if opts.Compress {
		compressed, err := deflate(payload)
		if err != nil {
			return fmt.Errorf("compressing payload: %w", err)
		}
		payload = compressed
	}

	if len(opts.Recipients) > 0 {
		encrypted, err := encrypt(payload, opts.Recipients)
		if err != nil {
			return fmt.Errorf("encrypting payload: %w", err)
		}
		payload = encrypted
	}

	container.AppendChunk(png.NewChunk(chunkType, payload))
	return nil
}

// Extract locates the first chunk of the named type and unwraps its
// payload: decrypting with one of the identities if the payload is an
// age stream, then inflating if what remains is a zlib stream. A
// missing chunk returns png.ErrChunkNotFound — callers decide whether
// absence is an error or an empty result.
func Extract(container *png.PNG, typeName string, identities []age.Identity) ([]byte, error) {
	chunk := container.ChunkByType(typeName)
	if chunk == nil {
		return nil, fmt.Errorf("%w: %q", png.ErrChunkNotFound, typeName)
	}

	payload := chunk.Data()

	if bytes.HasPrefix(payload, []byte(ageHeader)) {
		if len(identities) == 0 {
			return nil, ErrNeedIdentity
		}
		decrypted, err := decrypt(payload, identities)
		if err != nil {
			return nil, fmt.Errorf("decrypting payload: %w", err)
		}
		payload = decrypted
	}

	if isZlib(payload) {
		inflated, err := inflate(payload)
		if err != nil {
			return nil, fmt.Errorf("decompressing payload: %w", err)
		}
		payload = inflated
	}

	return payload, nil
}

// Remove deletes the first chunk of the named type and returns it.
// Unlike Extract, a missing chunk here is always a failure — callers
// asked for a mutation that could not happen.
func Remove(container *png.PNG, typeName string) (*png.Chunk, error) {
	return container.RemoveChunk(typeName)
}

// deflate wraps data in a zlib stream.
func deflate(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("writing zlib stream: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing zlib stream: %w", err)
	}
	return buffer.Bytes(), nil
}

// inflate unwraps a zlib stream.
func inflate(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer reader.Close()

	inflated, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading zlib stream: %w", err)
	}
	return inflated, nil
}

// isZlib reports whether data starts with a plausible zlib header:
// deflate method/window in the CMF byte and a CMF+FLG pair that
// satisfies the header checksum (a multiple of 31).
func isZlib(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	if data[0]&0x0F != 0x08 {
		return false
	}
	return (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}

// encrypt produces an age stream readable by any of the recipients.
func encrypt(plaintext []byte, recipients []age.Recipient) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := age.Encrypt(&buffer, recipients...)
	if err != nil {
		return nil, fmt.Errorf("starting age encryption: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing age ciphertext: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age ciphertext: %w", err)
	}
	return buffer.Bytes(), nil
}

// decrypt opens an age stream with the first matching identity.
func decrypt(ciphertext []byte, identities []age.Identity) ([]byte, error) {
	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identities...)
	if err != nil {
		return nil, err
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading age plaintext: %w", err)
	}
	return plaintext, nil
}
