// Copyright 2026 The Pngstash Authors
// SPDX-License-Identifier: Apache-2.0

// Package stash embeds and recovers hidden payloads in PNG containers.
// It sits between the byte-exact codec in lib/png and the CLI: the
// codec moves chunks, stash decides what goes inside them.
//
// The default embedding writes the message bytes verbatim as the chunk
// payload, so a stashed chunk is exactly what an independent PNG tool
// would see. Two optional treatments wrap the payload before it is
// chunked:
//
//   - zlib compression — the same stream format PNG's own zTXt chunks
//     carry, so compressed payloads are still idiomatic PNG content.
//   - age encryption — payloads readable only by the holder of a
//     matching X25519 identity or scrypt passphrase.
//
// Compression is applied before encryption (ciphertext does not
// compress). Extraction inspects the payload rather than trusting any
// side channel: an age header means decrypt, a zlib header means
// inflate, anything else is returned as-is.
package stash
