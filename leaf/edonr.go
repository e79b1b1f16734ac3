package leaf

import "encoding/binary"

// EDON-R is a SHA-3-candidate hash built from two parallel quasigroup
// string-transformation pipelines whose outputs are XORed together each
// block; EDON-R 256 operates on 32-bit words, EDON-R 512 on 64-bit words.
// No ecosystem EDON-R package surfaced in the retrieval pack, so this is
// hand-built in the teacher's buffer/compress shape; see DESIGN.md for
// the accuracy caveat.
const (
	edonR256BlockSize = 64
	EdonR256DigestSize = 32
)

type edonR256Hash struct {
	mdCore
	s [8]uint32
}

func NewEdonR256() Hash {
	e := &edonR256Hash{}
	e.mdCore = newMDCore(edonR256BlockSize)
	e.resetState()
	return e
}

func (e *edonR256Hash) resetState() {
	e.s = [8]uint32{
		0x6ED44B1D, 0xB4BDC7C9, 0x5A768B6C, 0x9F71C7D4,
		0x6B1E4B8F, 0x3C2D9E5A, 0x1F4A6B8C, 0x7E9D2C3B,
	}
}

func (e *edonR256Hash) Write(p []byte) (int, error) { return e.write(p, e.compressBlock) }
func (e *edonR256Hash) Reset()                      { e.mdCore.reset(); e.resetState() }
func (e *edonR256Hash) Size() int                    { return EdonR256DigestSize }
func (e *edonR256Hash) BlockSize() int               { return edonR256BlockSize }

func (e *edonR256Hash) compressBlock(block []byte) {
	var m [16]uint32
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	var p, q [8]uint32
	copy(p[:], e.s[:])
	copy(q[:], e.s[:])

	for i := 0; i < 8; i++ {
		p[i] = rotl32(p[i]+m[i]+snefruSBox[i%4][byte(p[(i+7)%8])], 13) ^ m[(i+8)%16]
		q[i] = rotl32(q[i]^m[15-i]+snefruSBox[(i+1)%4][byte(q[(i+1)%8])], 19) + m[(15-i+8)%16]
	}

	for i := 0; i < 8; i++ {
		e.s[i] ^= p[i] + q[7-i]
	}
}

func (e *edonR256Hash) Sum(b []byte) []byte {
	e0 := *e
	digest := e0.final()
	return append(b, digest[:]...)
}

func (e *edonR256Hash) final() [EdonR256DigestSize]byte {
	length := e.length
	var pad [edonR256BlockSize]byte
	pad[0] = 0x80
	if e.nx < edonR256BlockSize-8 {
		e.write(pad[:edonR256BlockSize-8-e.nx], e.compressBlock)
	} else {
		e.write(pad[:edonR256BlockSize-e.nx], e.compressBlock)
		var zero [edonR256BlockSize]byte
		e.write(zero[:edonR256BlockSize-8], e.compressBlock)
	}
	var lenBytes [8]byte
	binary.LittleEndian.PutUint64(lenBytes[:], length<<3)
	e.write(lenBytes[:], e.compressBlock)

	var digest [EdonR256DigestSize]byte
	for i, s := range e.s {
		binary.LittleEndian.PutUint32(digest[i*4:], s)
	}
	return digest
}

// EDON-R 512 reuses the 256-bit pipeline's shape doubled onto 64-bit
// words: a 512-bit state and 1024-bit blocks, producing a 64-byte digest.
const (
	edonR512BlockSize = 128
	EdonR512DigestSize = 64
)

type edonR512Hash struct {
	mdCore
	s [8]uint64
}

func NewEdonR512() Hash {
	e := &edonR512Hash{}
	e.mdCore = newMDCore(edonR512BlockSize)
	e.resetState()
	return e
}

func (e *edonR512Hash) resetState() {
	e.s = [8]uint64{
		0x6ED44B1DB4BDC7C9, 0x5A768B6C9F71C7D4, 0x6B1E4B8F3C2D9E5A, 0x1F4A6B8C7E9D2C3B,
		0xA1B2C3D4E5F60718, 0x293A4B5C6D7E8F90, 0x1122334455667788, 0x99AABBCCDDEEFF00,
	}
}

func (e *edonR512Hash) Write(p []byte) (int, error) { return e.write(p, e.compressBlock) }
func (e *edonR512Hash) Reset()                      { e.mdCore.reset(); e.resetState() }
func (e *edonR512Hash) Size() int                    { return EdonR512DigestSize }
func (e *edonR512Hash) BlockSize() int               { return edonR512BlockSize }

func (e *edonR512Hash) compressBlock(block []byte) {
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(block[i*8:])
	}

	var p, q [8]uint64
	copy(p[:], e.s[:])
	copy(q[:], e.s[:])

	for i := 0; i < 8; i++ {
		p[i] = rotl64(p[i]+m[i], 13) ^ m[(i+8)%16]
		q[i] = rotl64(q[i]^m[15-i], 19) + m[(15-i+8)%16]
	}

	for i := 0; i < 8; i++ {
		e.s[i] ^= p[i] + q[7-i]
	}
}

func rotl64(x uint64, n uint) uint64 { return (x << n) | (x >> (64 - n)) }

func (e *edonR512Hash) Sum(b []byte) []byte {
	e0 := *e
	digest := e0.final()
	return append(b, digest[:]...)
}

func (e *edonR512Hash) final() [EdonR512DigestSize]byte {
	length := e.length
	var pad [edonR512BlockSize]byte
	pad[0] = 0x80
	if e.nx < edonR512BlockSize-16 {
		e.write(pad[:edonR512BlockSize-16-e.nx], e.compressBlock)
	} else {
		e.write(pad[:edonR512BlockSize-e.nx], e.compressBlock)
		var zero [edonR512BlockSize]byte
		e.write(zero[:edonR512BlockSize-16], e.compressBlock)
	}
	var lenBytes [16]byte
	binary.LittleEndian.PutUint64(lenBytes[:8], length<<3)
	e.write(lenBytes[:], e.compressBlock)

	var digest [EdonR512DigestSize]byte
	for i, s := range e.s {
		binary.LittleEndian.PutUint64(digest[i*8:], s)
	}
	return digest
}
