// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nrbf decodes and encodes the .NET Remoting Binary Format
// (MS-NRBF): the tagged-record serialization of a .NET object graph
// used by BinaryFormatter, classic remoting, and ViewState payloads.
//
// The package reconstructs the id-addressed object graph — classes,
// arrays, strings, primitives, including forward references, shared
// references, and cycles — as an inert arena of nodes. It never
// instantiates runtime types and never interprets decoded data; the
// result is a generic representation suitable for inspection,
// transformation, and re-encoding.
//
// Decoding:
//
//	graph, err := nrbf.Decode(payload)
//	if err != nil { ... }
//	root := graph.Root()
//
// Input is untrusted by default. Declared lengths are validated
// against the remaining input before any allocation, every enum byte
// is checked against its value set, and DecodeWithLimits bounds
// record count, node count, array sizes, and nesting depth. Errors
// wrap the package sentinels (ErrMalformedStream, ErrTruncatedStream,
// ErrDanglingReference, ...) for errors.Is classification, and
// DecodeDiagnostic returns the partial graph plus every error for
// forensic work on malformed streams.
//
// Encoding starts from a Graph — decoded or built with GraphBuilder —
// and produces a complete stream with freshly assigned object ids:
//
//	builder := nrbf.NewGraphBuilder()
//	builder.AddString(1, "hi")
//	builder.SetRoot(1)
//	graph, _ := builder.Build()
//	payload, err := nrbf.Encode(graph)
//
// Decode(Encode(g)) is isomorphic to g: same shape and values, ids
// renumbered (object ids have no meaning outside a single stream).
//
// Each call owns all of its state, so concurrent decodes and encodes
// need no synchronization.
//
// The remoting message envelope (MS-NRTP), lifetime services
// (MS-NRLS), and the interpretation of well-known classes inside
// decoded graphs are outside this package; they consume or produce
// the byte payloads this package works on.
package nrbf
