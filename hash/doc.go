// Package hash computes content digests for array-bearing payloads.
//
// # Overview
//
// The package turns a payload (raw pixel buffer, scalar, nested mapping,
// nested sequence, geometry value) into a fixed-width 128-bit Digest that is
// deterministic across runs and processes. Digests are computed from content,
// never from pointers or allocation identity, which makes them usable as
// cache keys for values that Go's built-in maps could only key by identity.
//
// # Canonical stream
//
// Every payload is serialized into a canonical byte stream before hashing:
//
//   - The stream opens with a version tag ("pxc1"). Rotating the hash scheme
//     bumps the tag so old and new digests can never be confused.
//   - Each node contributes a payload tag, a msgpack-encoded structural
//     header (shape, element kind and width for buffers; length for strings,
//     byte slices and containers), and its raw content bytes.
//   - Integers are widened to 64 bits before encoding, so a payload that only
//     changes scalar width (int32 vs int64 holding the same value) keeps its
//     digest. Buffers are different: their declared shape and element type
//     are part of the structural header, so two buffers with identical bytes
//     but different shape or dtype never collide.
//   - Floats are encoded by IEEE-754 bit pattern with negative zero
//     normalized to positive zero and all NaNs collapsed to a single pattern.
//   - Containers hash each child to its own digest first and mix child
//     digests with a structural tag: mappings sort (key, digest) pairs by key
//     bytes, so the digest is invariant to insertion order; sequences mix
//     digests in position order, so reordering changes the digest.
//
// The stream is fed to BLAKE3 truncated to 16 bytes. The hash is not meant to
// be cryptographic; it only has to make collisions negligible at realistic
// cache capacities.
//
// # Supported payloads
//
// Scalars (bool, integers, floats, strings, []byte), values implementing
// Buffer, Tuple or Digester, Digest values themselves, map[string]any,
// []any, and through reflection any slice, array, string-keyed map or
// pointer whose elements are themselves supported. Anything else fails with
// *UnsupportedPayloadTypeError; the hasher never silently drops data that
// affects uniqueness.
package hash
