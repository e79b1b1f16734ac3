package treehash

import (
	"bytes"
	"testing"
)

// TTH over data that is not an exact multiple of the leaf size must
// produce the same root whether the writer feeds it in one call or many
// small ones - the structural rule spec.md §8 names for tree hashes.
func TestTTHChunkingInvariance(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, TTHLeafSize*3+17)

	whole := NewTTH()
	whole.Write(data)
	want := whole.Sum()

	chunked := NewTTH()
	for i := 0; i < len(data); i += 97 {
		end := i + 97
		if end > len(data) {
			end = len(data)
		}
		chunked.Write(data[i:end])
	}
	got := chunked.Sum()

	if !bytes.Equal(want, got) {
		t.Fatalf("TTH root diverged between whole and chunked writes")
	}
}

func TestTTHSingleLeafEqualsDirectTigerLeaf(t *testing.T) {
	data := []byte("short input under one leaf")
	tree := NewTTH()
	tree.Write(data)
	got := tree.Sum()

	direct := tthHashLeaf(append([]byte(nil), data...))
	if !bytes.Equal(got, direct) {
		t.Fatalf("single-leaf TTH root should equal the plain leaf hash")
	}
}

func TestTTHEmptyInput(t *testing.T) {
	tree := NewTTH()
	got := tree.Sum()
	want := tthHashLeaf(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("empty-input TTH root should equal Tiger of the empty leaf")
	}
}

func TestAICHChunkingInvariance(t *testing.T) {
	data := bytes.Repeat([]byte{0xCD}, 1000)

	whole := NewAICH()
	whole.Write(data)
	want := whole.Sum()

	chunked := NewAICH()
	for i := 0; i < len(data); i += 63 {
		end := i + 63
		if end > len(data) {
			end = len(data)
		}
		chunked.Write(data[i:end])
	}
	got := chunked.Sum()

	if !bytes.Equal(want, got) {
		t.Fatalf("AICH root diverged between whole and chunked writes")
	}
}

// BTIH piece-boundary determinism: the infohash must not depend on how
// Write calls happen to split the content, only on the bytes themselves.
func TestBTIHPieceBoundaryDeterminism(t *testing.T) {
	data := bytes.Repeat([]byte{0x11, 0x22}, 100000) // 200000 bytes
	opts := BTIHOptions{Name: "file.bin", TotalLength: int64(len(data)), PieceLength: 32 * 1024}

	whole := NewBTIH(opts)
	whole.Write(data)
	want := whole.Sum()

	chunked := NewBTIH(opts)
	for i := 0; i < len(data); i += 4096 {
		end := i + 4096
		if end > len(data) {
			end = len(data)
		}
		chunked.Write(data[i:end])
	}
	got := chunked.Sum()

	if !bytes.Equal(want, got) {
		t.Fatalf("BTIH infohash diverged between whole and chunked writes")
	}
}

func TestBTIHTorrentBytesMultiAnnounce(t *testing.T) {
	opts := BTIHOptions{
		Name:         "file.bin",
		TotalLength:  3,
		PieceLength:  16 * 1024,
		AnnounceURLs: []string{"udp://tracker-one.example/announce", "udp://tracker-two.example/announce"},
	}
	b := NewBTIH(opts)
	b.Write([]byte("abc"))
	torrent := b.TorrentBytes()

	if !bytes.Contains(torrent, []byte("8:announce34:udp://tracker-one.example/announce")) {
		t.Fatalf("expected top-level announce to be the first URL, got %q", torrent)
	}
	if !bytes.Contains(torrent, []byte("13:announce-listl")) {
		t.Fatalf("expected an announce-list key for multiple trackers, got %q", torrent)
	}
	if !bytes.Contains(torrent, []byte("udp://tracker-two.example/announce")) {
		t.Fatalf("expected the second tracker URL to appear in announce-list, got %q", torrent)
	}
}

func TestBTIHTorrentBytesSingleAnnounceNoList(t *testing.T) {
	opts := BTIHOptions{
		Name:         "file.bin",
		TotalLength:  3,
		PieceLength:  16 * 1024,
		AnnounceURLs: []string{"udp://tracker.example/announce"},
	}
	b := NewBTIH(opts)
	b.Write([]byte("abc"))
	torrent := b.TorrentBytes()

	if bytes.Contains(torrent, []byte("announce-list")) {
		t.Fatalf("a single announce URL must not produce an announce-list key, got %q", torrent)
	}
}

func TestDefaultPieceLength(t *testing.T) {
	cases := []struct {
		total int64
		want  int64
	}{
		{total: 1024, want: btihMinPieceLength},
		{total: 63 * 1024 * 1024, want: btihMinPieceLength},
		{total: 3 * 1024 * 1024 * 1024, want: btihMaxPieceLength},
	}
	for _, c := range cases {
		if got := DefaultPieceLength(c.total); got != c.want {
			t.Errorf("DefaultPieceLength(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}
