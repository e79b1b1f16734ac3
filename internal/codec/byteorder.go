// Package codec implements the byte-order, rotate, and text-encoding
// primitives every leaf algorithm and the digest formatter build on.
// Grounded on librhash's byte_order.c/hex.c: load/store helpers, bulk
// swap-copy for materializing big-endian digests on little-endian hosts,
// and the hex/base32/base64/url codecs used by the external format.
package codec

import (
	"encoding/binary"
	"math/bits"
)

func LoadU32LE(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }
func LoadU64LE(p []byte) uint64 { return binary.LittleEndian.Uint64(p) }
func LoadU32BE(p []byte) uint32 { return binary.BigEndian.Uint32(p) }
func LoadU64BE(p []byte) uint64 { return binary.BigEndian.Uint64(p) }

func StoreU32LE(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func StoreU64LE(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }
func StoreU32BE(dst []byte, v uint32) { binary.BigEndian.PutUint32(dst, v) }
func StoreU64BE(dst []byte, v uint64) { binary.BigEndian.PutUint64(dst, v) }

// U32SwapCopyLEtoBE copies n little-endian uint32 words from src into dst
// re-emitted big-endian (and vice versa, the operation is its own inverse).
// Used to materialize a chaining-variable array into its canonical digest
// byte order regardless of the host's native order.
func U32SwapCopyLEtoBE(dst, src []byte, n int) {
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint32(src[i*4:])
		binary.BigEndian.PutUint32(dst[i*4:], v)
	}
}

func U64SwapCopyLEtoBE(dst, src []byte, n int) {
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint64(src[i*8:])
		binary.BigEndian.PutUint64(dst[i*8:], v)
	}
}

func RotateLeft32(x uint32, k int) uint32  { return bits.RotateLeft32(x, k) }
func RotateRight32(x uint32, k int) uint32 { return bits.RotateLeft32(x, -k) }
func RotateLeft64(x uint64, k int) uint64  { return bits.RotateLeft64(x, k) }
func RotateRight64(x uint64, k int) uint64 { return bits.RotateLeft64(x, -k) }

// CountTrailingZerosU32 maps a single-bit algorithm id to a dense registry
// index; mirrors librhash's rhash_ctz, which exists solely to turn a bit
// mask entry into an array offset.
func CountTrailingZerosU32(x uint32) int {
	if x == 0 {
		return 0
	}
	return bits.TrailingZeros32(x)
}

// ReverseBytes returns a newly allocated reversal of b, used by the
// verification engine's GOST-tolerant compare.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
