// Package leaf implements the block-compression routines for every
// registered algorithm (component C2). Each algorithm is exposed as a
// standard library hash.Hash: Write is update, Sum is final, Reset is
// init. The chunking-invariance contract spec.md §4.2 requires is exactly
// the contract hash.Hash already promises, so no bespoke init/update/final
// trio is introduced here — it would just rename the same three operations.
package leaf

import "hash"

// Hash is the shape every leaf algorithm implements. It is a plain alias
// for the standard library's hash.Hash; kept as a named type in this
// package so call sites read as domain vocabulary instead of a stdlib
// import sprinkled through the registry and multi-hash context.
type Hash = hash.Hash
