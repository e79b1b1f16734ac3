package treehash

import "crypto/sha1"

// AICHPieceSize is the eDonkey2000/eMule "part hash" size AICH trees
// over: 9,728,000 bytes, matching ED2K's chunk size.
const AICHPieceSize = 9728000

// AICH computes an eMule/eDonkey AICH Merkle tree: SHA-1 leaves over
// AICHPieceSize pieces, SHA-1 of the concatenated child digests for
// internal nodes, no domain-separator byte (unlike TTH). A lone node
// with no sibling at finalize time is promoted unchanged rather than
// self-combined, which addLeaf/Sum's nil-skipping already implements.
type AICH struct {
	buf    [AICHPieceSize]byte
	nx     int
	levels [][]byte
	any    bool
}

func NewAICH() *AICH { return &AICH{} }

func (a *AICH) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		c := copy(a.buf[a.nx:], p)
		a.nx += c
		p = p[c:]
		if a.nx == AICHPieceSize {
			a.any = true
			a.addLeaf(aichHashLeaf(a.buf[:a.nx]))
			a.nx = 0
		}
	}
	return n, nil
}

func aichHashLeaf(block []byte) []byte {
	sum := sha1.Sum(block)
	return sum[:]
}

func aichCombine(left, right []byte) []byte {
	h := sha1.New()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

func (a *AICH) addLeaf(digest []byte) {
	carry := digest
	level := 0
	for {
		if level >= len(a.levels) {
			a.levels = append(a.levels, nil)
		}
		if a.levels[level] == nil {
			a.levels[level] = carry
			return
		}
		carry = aichCombine(a.levels[level], carry)
		a.levels[level] = nil
		level++
	}
}

// Sum finalizes the tree and returns the 20-byte SHA-1 root digest. It
// does not mutate the AICH (repeated calls are safe).
func (a *AICH) Sum() []byte {
	levels := make([][]byte, len(a.levels))
	copy(levels, a.levels)
	nx := a.nx
	any := a.any

	if nx > 0 || !any {
		carry := aichHashLeaf(a.buf[:nx])
		for level := 0; ; level++ {
			if level >= len(levels) {
				levels = append(levels, nil)
			}
			if levels[level] == nil {
				levels[level] = carry
				break
			}
			carry = aichCombine(levels[level], carry)
			levels[level] = nil
		}
	}

	var result []byte
	for _, node := range levels {
		if node == nil {
			continue
		}
		if result == nil {
			result = node
		} else {
			result = aichCombine(node, result)
		}
	}
	return result
}

func (a *AICH) Reset() {
	a.nx = 0
	a.levels = nil
	a.any = false
}
