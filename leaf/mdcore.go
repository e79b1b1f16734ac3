package leaf

// mdCore is the shared Merkle-Damgard buffering loop the teacher's
// hash/tiger.go Write method implements: accumulate into a fixed-size
// block buffer, compress whole blocks as they fill, and track the total
// bit length for the final padding step. GOST94, HAS-160, SNEFRU and
// EDON-R below are all instances of this same shape, differing only in
// block size, state width and the compression permutation itself.
// mdMaxBlockSize bounds the scratch buffer so mdCore stays a plain array
// field: copying a struct that embeds mdCore (as Sum does to snapshot
// state without disturbing the live hasher) must deep-copy the buffer too,
// which a slice field would not do.
const mdMaxBlockSize = 128

type mdCore struct {
	blockSize int
	buf       [mdMaxBlockSize]byte
	nx        int
	length    uint64
}

func newMDCore(blockSize int) mdCore {
	return mdCore{blockSize: blockSize}
}

// write is parameterized on compress (rather than storing it as a struct
// field) so that copying the embedding hash by value - as Sum does to take
// a snapshot without disturbing the live hasher - also copies a compress
// function bound to the COPY's receiver, not the original's.
func (m *mdCore) write(p []byte, compress func(block []byte)) (int, error) {
	n := len(p)
	m.length += uint64(n)

	if m.nx > 0 {
		c := copy(m.buf[m.nx:m.blockSize], p)
		m.nx += c
		if m.nx == m.blockSize {
			compress(m.buf[:m.blockSize])
			m.nx = 0
		}
		p = p[c:]
	}

	for len(p) >= m.blockSize {
		compress(p[:m.blockSize])
		p = p[m.blockSize:]
	}

	if len(p) > 0 {
		m.nx = copy(m.buf[:m.blockSize], p)
	}
	return n, nil
}

func (m *mdCore) reset() {
	m.nx = 0
	m.length = 0
}
