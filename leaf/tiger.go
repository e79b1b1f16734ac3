package leaf

import (
	"encoding/binary"
)

// Tiger is adapted from the teacher's hash/tiger.go (TigerHasher[K]): the
// same buffering/compression/round structure, generalized from a generic
// key hasher into a plain streaming hash.Hash, and extended with an
// optional one-byte domain-separator prefix so the tree-hash layer (TTH)
// can feed the 0x00/0x01 leaf/node markers without a special case in the
// block-processing loop.
const (
	tigerBlockSize  = 64
	TigerDigestSize = 24
	tigerRounds     = 3
)

type tigerHash struct {
	a, b, c uint64
	x       [tigerBlockSize]byte
	nx      int
	len     uint64
}

// NewTiger returns a plain Tiger/192 hash.Hash.
func NewTiger() Hash { return newTiger() }

// NewTigerPrefixed returns a Tiger hash.Hash pre-seeded with a single
// domain-separator byte, as TTH requires for its leaf (0x00) and internal
// node (0x01) hashes.
func NewTigerPrefixed(prefix byte) *TigerState {
	t := newTiger()
	t.x[0] = prefix
	t.nx = 1
	t.len = 1
	return &TigerState{t: t}
}

func newTiger() *tigerHash {
	return &tigerHash{
		a: 0x0123456789ABCDEF,
		b: 0xFEDCBA9876543210,
		c: 0xF096A5B4C3B2E187,
	}
}

// TigerState is the exported handle treehash uses; it hides the unexported
// tigerHash type while still satisfying hash.Hash.
type TigerState struct{ t *tigerHash }

func (s *TigerState) Write(p []byte) (int, error) { return s.t.Write(p) }
func (s *TigerState) Sum(b []byte) []byte         { return s.t.Sum(b) }
func (s *TigerState) Reset()                      { s.t.Reset() }
func (s *TigerState) Size() int                    { return s.t.Size() }
func (s *TigerState) BlockSize() int               { return s.t.BlockSize() }

func (t *tigerHash) Size() int      { return TigerDigestSize }
func (t *tigerHash) BlockSize() int { return tigerBlockSize }

func (t *tigerHash) Write(p []byte) (n int, err error) {
	n = len(p)
	t.len += uint64(n)

	if t.nx > 0 {
		c := copy(t.x[t.nx:], p)
		t.nx += c
		if t.nx == tigerBlockSize {
			t.compress(t.x[:])
			t.nx = 0
		}
		p = p[c:]
	}

	for len(p) >= tigerBlockSize {
		t.compress(p[:tigerBlockSize])
		p = p[tigerBlockSize:]
	}

	if len(p) > 0 {
		t.nx = copy(t.x[:], p)
	}
	return
}

func (t *tigerHash) Sum(b []byte) []byte {
	t0 := *t
	digest := t0.checkSum()
	return append(b, digest[:]...)
}

func (t *tigerHash) Reset() {
	t.a = 0x0123456789ABCDEF
	t.b = 0xFEDCBA9876543210
	t.c = 0xF096A5B4C3B2E187
	t.nx = 0
	t.len = 0
}

func (t *tigerHash) checkSum() [TigerDigestSize]byte {
	length := t.len
	t.x[t.nx] = 0x01
	t.nx++
	if t.nx > 56 {
		for i := t.nx; i < tigerBlockSize; i++ {
			t.x[i] = 0
		}
		t.compress(t.x[:])
		t.nx = 0
	}
	for i := t.nx; i < 56; i++ {
		t.x[i] = 0
	}
	binary.LittleEndian.PutUint64(t.x[56:], length<<3)
	t.compress(t.x[:])

	var digest [TigerDigestSize]byte
	binary.LittleEndian.PutUint64(digest[0:], t.a)
	binary.LittleEndian.PutUint64(digest[8:], t.b)
	binary.LittleEndian.PutUint64(digest[16:], t.c)
	return digest
}

func (t *tigerHash) compress(block []byte) {
	var x [8]uint64
	for i := 0; i < 8; i++ {
		x[i] = binary.LittleEndian.Uint64(block[i*8:])
	}

	aa, bb, cc := t.a, t.b, t.c

	for i := 0; i < tigerRounds; i++ {
		if i != 0 {
			x[0] -= x[7] ^ 0xA5A5A5A5A5A5A5A5
			x[1] ^= x[0]
			x[2] += x[1]
			x[3] -= x[2] ^ ((^x[1]) << 19)
			x[4] ^= x[3]
			x[5] += x[4]
			x[6] -= x[5] ^ ((^x[4]) >> 23)
			x[7] ^= x[6]
			x[0] += x[7]
			x[1] -= x[0] ^ ((^x[7]) << 19)
			x[2] ^= x[1]
			x[3] += x[2]
			x[4] -= x[3] ^ ((^x[2]) >> 23)
			x[5] ^= x[4]
			x[6] += x[5]
			x[7] -= x[6] ^ 0x0123456789ABCDEF
		}

		aa, bb, cc = tigerRound(aa, bb, cc, x[0], x[1], x[2], x[3], x[4], x[5], x[6], x[7])
		aa, bb, cc = cc, aa, bb
	}

	t.a ^= aa
	t.b = bb - t.b
	t.c += cc
}

func tigerRound(a, b, c, x0, x1, x2, x3, x4, x5, x6, x7 uint64) (uint64, uint64, uint64) {
	c ^= x0
	a -= tigerT0[byte(c)] ^ tigerT1[byte(c>>16)] ^ tigerT2[byte(c>>32)] ^ tigerT3[byte(c>>48)]
	b += tigerT3[byte(c>>8)] ^ tigerT2[byte(c>>24)] ^ tigerT1[byte(c>>40)] ^ tigerT0[byte(c>>56)]
	b *= 5

	a ^= x1
	b -= tigerT0[byte(a)] ^ tigerT1[byte(a>>16)] ^ tigerT2[byte(a>>32)] ^ tigerT3[byte(a>>48)]
	c += tigerT3[byte(a>>8)] ^ tigerT2[byte(a>>24)] ^ tigerT1[byte(a>>40)] ^ tigerT0[byte(a>>56)]
	c *= 5

	b ^= x2
	c -= tigerT0[byte(b)] ^ tigerT1[byte(b>>16)] ^ tigerT2[byte(b>>32)] ^ tigerT3[byte(b>>48)]
	a += tigerT3[byte(b>>8)] ^ tigerT2[byte(b>>24)] ^ tigerT1[byte(b>>40)] ^ tigerT0[byte(b>>56)]
	a *= 5

	c ^= x3
	a -= tigerT0[byte(c)] ^ tigerT1[byte(c>>16)] ^ tigerT2[byte(c>>32)] ^ tigerT3[byte(c>>48)]
	b += tigerT3[byte(c>>8)] ^ tigerT2[byte(c>>24)] ^ tigerT1[byte(c>>40)] ^ tigerT0[byte(c>>56)]
	b *= 5

	a ^= x4
	b -= tigerT0[byte(a)] ^ tigerT1[byte(a>>16)] ^ tigerT2[byte(a>>32)] ^ tigerT3[byte(a>>48)]
	c += tigerT3[byte(a>>8)] ^ tigerT2[byte(a>>24)] ^ tigerT1[byte(a>>40)] ^ tigerT0[byte(a>>56)]
	c *= 5

	b ^= x5
	c -= tigerT0[byte(b)] ^ tigerT1[byte(b>>16)] ^ tigerT2[byte(b>>32)] ^ tigerT3[byte(b>>48)]
	a += tigerT3[byte(b>>8)] ^ tigerT2[byte(b>>24)] ^ tigerT1[byte(b>>40)] ^ tigerT0[byte(b>>56)]
	a *= 5

	c ^= x6
	a -= tigerT0[byte(c)] ^ tigerT1[byte(c>>16)] ^ tigerT2[byte(c>>32)] ^ tigerT3[byte(c>>48)]
	b += tigerT3[byte(c>>8)] ^ tigerT2[byte(c>>24)] ^ tigerT1[byte(c>>40)] ^ tigerT0[byte(c>>56)]
	b *= 5

	a ^= x7
	b -= tigerT0[byte(a)] ^ tigerT1[byte(a>>16)] ^ tigerT2[byte(a>>32)] ^ tigerT3[byte(a>>48)]
	c += tigerT3[byte(a>>8)] ^ tigerT2[byte(a>>24)] ^ tigerT1[byte(a>>40)] ^ tigerT0[byte(a>>56)]
	c *= 5

	return a, b, c
}
