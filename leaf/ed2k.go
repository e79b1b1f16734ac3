package leaf

import "golang.org/x/crypto/md4"

// ED2KChunkSize is the eDonkey2000 chunk size: 9500 KiB.
const ED2KChunkSize = 9728000

// ed2kHash implements the ED2K algorithm: MD4 of the concatenation of the
// MD4 digests of each ED2KChunkSize chunk, or plain MD4 of the content when
// it fits in a single chunk. The single-chunk special case is the reason
// chunk boundaries are flushed lazily (only once it's known more data
// follows), rather than eagerly the instant ED2KChunkSize bytes accumulate.
type ed2kHash struct {
	current md4Hash
	pending int
	chunks  [][]byte
}

// md4Hash is a plain alias of Hash, naming the role of the running
// per-chunk MD4 state held by ed2kHash.
type md4Hash = Hash

func NewED2K() Hash {
	return &ed2kHash{current: md4.New()}
}

func (e *ed2kHash) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		room := ED2KChunkSize - e.pending
		take := room
		if take > len(p) {
			take = len(p)
		}
		e.current.Write(p[:take])
		e.pending += take
		p = p[take:]
		if e.pending == ED2KChunkSize && len(p) > 0 {
			e.flushChunk()
		}
	}
	return n, nil
}

func (e *ed2kHash) flushChunk() {
	e.chunks = append(e.chunks, e.current.Sum(nil))
	e.current.Reset()
	e.pending = 0
}

func (e *ed2kHash) Sum(b []byte) []byte {
	if len(e.chunks) == 0 {
		return append(b, e.current.Sum(nil)...)
	}
	last := e.current.Sum(nil)
	outer := md4.New()
	for _, c := range e.chunks {
		outer.Write(c)
	}
	outer.Write(last)
	return append(b, outer.Sum(nil)...)
}

func (e *ed2kHash) Reset() {
	e.current.Reset()
	e.pending = 0
	e.chunks = nil
}

func (e *ed2kHash) Size() int      { return md4.Size }
func (e *ed2kHash) BlockSize() int { return e.current.BlockSize() }
