// Package verify implements the verification engine (component C9): given
// a parsed hashfile.Entry and the actual computed digests for a file, it
// decides whether the file matches, and if not, which specific way it
// diverges - size, a mismatch of the CRC32 embedded in the file name, or a
// hash mismatch, with GOST's
// optional byte-reversal tolerated before declaring a mismatch.
package verify

import (
	"bytes"

	"github.com/ielm/mhash/hashfile"
	"github.com/ielm/mhash/internal/codec"
	"github.com/ielm/mhash/registry"
)

// Flag is a bitmask of the specific ways a file failed verification.
type Flag int

const (
	OK                 Flag = 0
	WrongSize          Flag = 1 << 0
	WrongEmbeddedCRC32 Flag = 1 << 1
	WrongHashes        Flag = 1 << 2
)

// Result reports the verification outcome for one file.
type Result struct {
	Flags   Flag
	Matched []registry.ID // algorithms whose digest matched
	Failed  []registry.ID // algorithms whose digest did not match
}

// Passed reports whether the file matched on every checked dimension.
func (r Result) Passed() bool { return r.Flags == OK }

// Verify compares an Entry parsed from a hash file against the actual
// size and computed digests of a file. actualSize of -1 means the size
// is unknown and is skipped.
func Verify(entry *hashfile.Entry, actualSize int64, actual map[registry.ID][]byte) Result {
	var res Result

	if entry.Size >= 0 && actualSize >= 0 && entry.Size != actualSize {
		res.Flags |= WrongSize
	}

	if entry.EmbeddedCRC32 != nil {
		if got, ok := actual[registry.CRC32]; !ok || !digestsEqual(registry.CRC32, entry.EmbeddedCRC32, got) {
			res.Flags |= WrongEmbeddedCRC32
		}
	}

	expected := entry.Digests
	if len(expected) == 0 && entry.CandidateMask != 0 {
		expected = narrowCandidates(entry, actual)
	}

	for id, want := range expected {
		got, ok := actual[id]
		if !ok {
			continue
		}
		if digestsEqual(id, want, got) {
			res.Matched = append(res.Matched, id)
		} else {
			res.Failed = append(res.Failed, id)
			res.Flags |= WrongHashes
		}
	}
	if len(expected) > 0 && len(res.Matched) == 0 {
		res.Flags |= WrongHashes
	}
	return res
}

// narrowCandidates is used for simple-format entries, which carry a bare
// digest and a mask of algorithms whose digest length matches: it tries
// each candidate in ascending bit order (registry.Split's order) and
// returns the first one whose computed digest actually matches, so a
// caller sees a single resolved algorithm rather than every same-length
// guess.
func narrowCandidates(entry *hashfile.Entry, actual map[registry.ID][]byte) map[registry.ID][]byte {
	raw := entry.RawDigest
	ids := registry.Split(entry.CandidateMask)
	for _, id := range ids {
		got, ok := actual[id]
		if !ok {
			continue
		}
		if digestsEqual(id, raw, got) {
			return map[registry.ID][]byte{id: raw}
		}
	}
	if len(ids) > 0 {
		return map[registry.ID][]byte{ids[0]: raw}
	}
	return nil
}

// digestsEqual compares two digests, tolerating GOST94's byte-reversed
// rendering convention: if a straight comparison fails for a GOST
// algorithm, it retries with one side's bytes reversed before declaring
// a genuine mismatch.
func digestsEqual(id registry.ID, want, got []byte) bool {
	if bytes.Equal(want, got) {
		return true
	}
	if id == registry.GOST94 || id == registry.GOST94CryptoPro {
		return bytes.Equal(want, codec.ReverseBytes(got))
	}
	return false
}
