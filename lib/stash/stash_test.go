// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

package stash

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"filippo.io/age"

	"github.com/pngstash/pngstash/lib/png"
)

const testMessage = "This is where your secret message will be!"

func emptyContainer() *png.PNG {
	return png.FromChunks()
}

func mustType(t *testing.T, name string) png.ChunkType {
	t.Helper()
	chunkType, err := png.ParseChunkType(name)
	if err != nil {
		t.Fatalf("ParseChunkType(%q) failed: %v", name, err)
	}
	return chunkType
}

func TestEmbedPlainIsVerbatim(t *testing.T) {
	container := emptyContainer()
	if err := Embed(container, mustType(t, "RuSt"), []byte(testMessage), Options{}); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	// The default embedding must write the message bytes untouched —
	// that is the contract an independent PNG tool sees.
	chunk := container.ChunkByType("RuSt")
	if chunk == nil {
		t.Fatal("embedded chunk not found")
	}
	if !bytes.Equal(chunk.Data(), []byte(testMessage)) {
		t.Errorf("plain payload = %q, want verbatim message", chunk.Data())
	}

	recovered, err := Extract(container, "RuSt", nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(recovered) != testMessage {
		t.Errorf("Extract = %q, want %q", recovered, testMessage)
	}
}

func TestEmbedCompressedRoundtrip(t *testing.T) {
	// A long repetitive message so the zlib stream is visibly smaller.
	message := []byte(strings.Repeat(testMessage, 64))

	container := emptyContainer()
	if err := Embed(container, mustType(t, "ruSt"), message, Options{Compress: true}); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	chunk := container.ChunkByType("ruSt")
	if chunk == nil {
		t.Fatal("embedded chunk not found")
	}
	if int(chunk.Length()) >= len(message) {
		t.Errorf("compressed payload is %d bytes, not smaller than the %d-byte message",
			chunk.Length(), len(message))
	}

	recovered, err := Extract(container, "ruSt", nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !bytes.Equal(recovered, message) {
		t.Error("compressed round trip did not reproduce the message")
	}
}

func TestEmbedEncryptedRoundtrip(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("GenerateX25519Identity failed: %v", err)
	}

	container := emptyContainer()
	opts := Options{Compress: true, Recipients: []age.Recipient{identity.Recipient()}}
	if err := Embed(container, mustType(t, "seCt"), []byte(testMessage), opts); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	// The stored payload must be an age stream, not the message.
	chunk := container.ChunkByType("seCt")
	if chunk == nil {
		t.Fatal("embedded chunk not found")
	}
	if !bytes.HasPrefix(chunk.Data(), []byte(ageHeader)) {
		t.Fatal("encrypted payload does not start with the age header")
	}
	if bytes.Contains(chunk.Data(), []byte(testMessage)) {
		t.Error("ciphertext contains the plaintext message")
	}

	// Without an identity, extraction must refuse rather than return
	// ciphertext.
	if _, err := Extract(container, "seCt", nil); !errors.Is(err, ErrNeedIdentity) {
		t.Errorf("Extract without identity = %v, want ErrNeedIdentity", err)
	}

	recovered, err := Extract(container, "seCt", []age.Identity{identity})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(recovered) != testMessage {
		t.Errorf("Extract = %q, want %q", recovered, testMessage)
	}
}

func TestEmbedScryptPassphraseRoundtrip(t *testing.T) {
	recipient, err := age.NewScryptRecipient("correct horse battery staple")
	if err != nil {
		t.Fatalf("NewScryptRecipient failed: %v", err)
	}
	recipient.SetWorkFactor(10) // keep the test fast

	container := emptyContainer()
	opts := Options{Recipients: []age.Recipient{recipient}}
	if err := Embed(container, mustType(t, "seCt"), []byte(testMessage), opts); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	identity, err := age.NewScryptIdentity("correct horse battery staple")
	if err != nil {
		t.Fatalf("NewScryptIdentity failed: %v", err)
	}

	recovered, err := Extract(container, "seCt", []age.Identity{identity})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(recovered) != testMessage {
		t.Errorf("Extract = %q, want %q", recovered, testMessage)
	}

	wrong, err := age.NewScryptIdentity("incorrect horse")
	if err != nil {
		t.Fatalf("NewScryptIdentity failed: %v", err)
	}
	if _, err := Extract(container, "seCt", []age.Identity{wrong}); err == nil {
		t.Error("Extract with wrong passphrase succeeded")
	}
}

func TestExtractMissingChunk(t *testing.T) {
	if _, err := Extract(emptyContainer(), "noPE", nil); !errors.Is(err, png.ErrChunkNotFound) {
		t.Errorf("Extract on empty container = %v, want png.ErrChunkNotFound", err)
	}
}

func TestRemoveDelegatesToContainer(t *testing.T) {
	container := emptyContainer()
	if err := Embed(container, mustType(t, "teSt"), []byte("x"), Options{}); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	removed, err := Remove(container, "teSt")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.Type().String() != "teSt" {
		t.Errorf("removed type = %q, want teSt", removed.Type())
	}
	if _, err := Remove(container, "teSt"); !errors.Is(err, png.ErrChunkNotFound) {
		t.Errorf("second Remove = %v, want png.ErrChunkNotFound", err)
	}
}

func TestIsZlibDetection(t *testing.T) {
	compressed, err := deflate([]byte(testMessage))
	if err != nil {
		t.Fatalf("deflate failed: %v", err)
	}
	if !isZlib(compressed) {
		t.Error("isZlib = false for a real zlib stream")
	}

	for _, plain := range [][]byte{nil, []byte("x"), []byte(testMessage), {0x78, 0x00}} {
		if isZlib(plain) {
			t.Errorf("isZlib = true for non-zlib payload %q", plain)
		}
	}
}
