// Package treehash implements the Merkle-tree hash layer (component C5):
// TTH, AICH and BTIH all reduce a stream of fixed-size pieces to a single
// root digest by recursively combining sibling node hashes, but differ in
// leaf size, inner-hash algorithm and domain-separation convention. Each
// gets its own file; tth.go's node-stack carry logic is the shared idiom
// the other two specialize.
package treehash

import "github.com/ielm/mhash/leaf"

// TTHLeafSize is the size of a Tiger Tree Hash leaf, fixed by the THEX
// specification.
const TTHLeafSize = 1024

// TTH computes a Tiger Tree Hash incrementally. Leaves are hashed with a
// 0x00 domain-separator byte, internal nodes with 0x01, exactly as
// librhash's tth.c feeds the prefix byte into the Tiger context before
// the block itself.
type TTH struct {
	buf    [TTHLeafSize]byte
	nx     int
	levels [][]byte
	any    bool
}

func NewTTH() *TTH { return &TTH{} }

func (t *TTH) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		c := copy(t.buf[t.nx:], p)
		t.nx += c
		p = p[c:]
		if t.nx == TTHLeafSize {
			t.any = true
			t.addLeaf(tthHashLeaf(t.buf[:t.nx]))
			t.nx = 0
		}
	}
	return n, nil
}

func tthHashLeaf(block []byte) []byte {
	h := leaf.NewTigerPrefixed(0x00)
	h.Write(block)
	return h.Sum(nil)
}

func tthCombine(left, right []byte) []byte {
	h := leaf.NewTigerPrefixed(0x01)
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

func (t *TTH) addLeaf(digest []byte) {
	carry := digest
	level := 0
	for {
		if level >= len(t.levels) {
			t.levels = append(t.levels, nil)
		}
		if t.levels[level] == nil {
			t.levels[level] = carry
			return
		}
		carry = tthCombine(t.levels[level], carry)
		t.levels[level] = nil
		level++
	}
}

// Sum finalizes the tree and returns the 24-byte Tiger root digest. It
// does not mutate the TTH (repeated calls are safe), matching
// hash.Hash's Sum contract.
func (t *TTH) Sum() []byte {
	levels := make([][]byte, len(t.levels))
	copy(levels, t.levels)
	nx := t.nx
	any := t.any

	if nx > 0 || !any {
		carry := tthHashLeaf(t.buf[:nx])
		for level := 0; ; level++ {
			if level >= len(levels) {
				levels = append(levels, nil)
			}
			if levels[level] == nil {
				levels[level] = carry
				break
			}
			carry = tthCombine(levels[level], carry)
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
			result = tthCombine(node, result)
		}
	}
	return result
}

// Reset clears the tree back to its initial empty state.
func (t *TTH) Reset() {
	t.nx = 0
	t.levels = nil
	t.any = false
}
