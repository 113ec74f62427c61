// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package graphexport serializes decoded NRBF object graphs into a
// canonical CBOR form for snapshots, interchange with analysis
// tooling, and structural comparison.
//
// The export renumbers object ids into depth-first first-seen order
// from the root and replaces library ids with the library names
// themselves, so two graphs that differ only in id assignment export
// to identical bytes. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2), making the output stable enough to diff and to
// hash: Fingerprint is the BLAKE3 digest of the export and serves as
// a structural identity for a graph, invariant under id renumbering.
//
// Only the subgraph reachable from the root is exported, matching
// what nrbf.Encode would serialize.
package graphexport
