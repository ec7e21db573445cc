// Package hashable wraps array-bearing containers with stable, content-based
// hash and equality semantics so they can serve as map keys, set members and
// memoization arguments.
//
// Ordinary mutable values (an image buffer, a map holding buffers) cannot key
// a cache: identity says nothing about content, and deep comparison is
// O(size) on every lookup. Each wrapper here computes its content digest
// lazily on first use, memoizes it for the wrapper's lifetime, and defines
// equality as digest equality. Digest and equality therefore always agree,
// which is the contract hash-based containers need.
//
// Wrappers are logically immutable: no mutation path is exposed, and the
// wrapped buffer is shared zero-copy with the caller under the documented
// precondition that the caller stops mutating it once wrapped. Re-wrap the
// content to pick up changes.
package hashable
