package leaf

import (
	"bytes"
	"testing"
)

// chunking invariance: hashing data in one Write or many must agree,
// for every leaf algorithm - spec.md §8's S1 property.
func TestChunkingInvariance(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 500)

	for name, ctor := range constructors() {
		t.Run(name, func(t *testing.T) {
			whole := ctor()
			whole.Write(data)
			want := whole.Sum(nil)

			chunked := ctor()
			for i := 0; i < len(data); i += 37 {
				end := i + 37
				if end > len(data) {
					end = len(data)
				}
				chunked.Write(data[i:end])
			}
			got := chunked.Sum(nil)

			if !bytes.Equal(want, got) {
				t.Fatalf("%s: chunked digest diverged from whole-input digest", name)
			}
		})
	}
}

// reset equivalence: Reset then Write(x) must equal a fresh hasher fed x
// - spec.md §8's S2 property.
func TestResetEquivalence(t *testing.T) {
	data := []byte("reset equivalence payload")

	for name, ctor := range constructors() {
		t.Run(name, func(t *testing.T) {
			h := ctor()
			h.Write([]byte("some unrelated prior content"))
			h.Sum(nil)
			h.Reset()
			h.Write(data)
			got := h.Sum(nil)

			fresh := ctor()
			fresh.Write(data)
			want := fresh.Sum(nil)

			if !bytes.Equal(want, got) {
				t.Fatalf("%s: reset hasher diverged from a fresh one", name)
			}
		})
	}
}

// Sum must not mutate the hasher: calling it twice, or writing more data
// after a Sum, must behave as if Sum were never called.
func TestSumIsNonDestructive(t *testing.T) {
	for name, ctor := range constructors() {
		t.Run(name, func(t *testing.T) {
			h := ctor()
			h.Write([]byte("partial"))
			first := h.Sum(nil)
			second := h.Sum(nil)
			if !bytes.Equal(first, second) {
				t.Fatalf("%s: repeated Sum() diverged", name)
			}
			h.Write([]byte(" more"))
			extended := h.Sum(nil)

			fresh := ctor()
			fresh.Write([]byte("partial more"))
			want := fresh.Sum(nil)
			if !bytes.Equal(extended, want) {
				t.Fatalf("%s: writing after Sum() diverged from one continuous write", name)
			}
		})
	}
}

func TestDigestSizesMatchSize(t *testing.T) {
	for name, ctor := range constructors() {
		h := ctor()
		h.Write([]byte("x"))
		sum := h.Sum(nil)
		if len(sum) != h.Size() {
			t.Errorf("%s: Sum length %d != Size() %d", name, len(sum), h.Size())
		}
	}
}

func constructors() map[string]func() Hash {
	return map[string]func() Hash{
		"crc32":      NewCRC32,
		"crc32c":     NewCRC32C,
		"md4":        NewMD4,
		"md5":        NewMD5,
		"sha1":       NewSHA1,
		"sha224":     NewSHA224,
		"sha256":     NewSHA256,
		"sha384":     NewSHA384,
		"sha512":     NewSHA512,
		"sha3-224":   NewSHA3_224,
		"sha3-256":   NewSHA3_256,
		"sha3-384":   NewSHA3_384,
		"sha3-512":   NewSHA3_512,
		"tiger":      NewTiger,
		"ripemd160":  NewRIPEMD160,
		"whirlpool":  NewWhirlpool,
		"blake2s":    NewBLAKE2s,
		"blake2b":    NewBLAKE2b,
		"blake3":     NewBLAKE3,
		"ed2k":       NewED2K,
		"has160":     NewHAS160,
		"gost94":     NewGOST94,
		"gost94cp":   NewGOST94CryptoPro,
		"snefru128":  NewSnefru128,
		"snefru256":  NewSnefru256,
		"edonr256":   NewEdonR256,
		"edonr512":   NewEdonR512,
	}
}
