package leaf

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash/crc32"

	"github.com/jzelinskie/whirlpool"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // spec-mandated legacy algorithm
	"golang.org/x/crypto/sha3"
)

// NewCRC32 wraps the stdlib IEEE CRC32. No third-party CRC32 implementation
// appears anywhere in the retrieval pack; hash/crc32 is the idiom every Go
// project reaches for.
func NewCRC32() Hash { return crc32.NewIEEE() }

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// NewCRC32C wraps the stdlib Castagnoli CRC32 variant.
func NewCRC32C() Hash { return crc32.New(crc32cTable) }

func NewMD5() Hash { return md5.New() }

func NewSHA1() Hash { return sha1.New() }

func NewSHA224() Hash { return sha256.New224() }
func NewSHA256() Hash { return sha256.New() }
func NewSHA384() Hash { return sha512.New384() }
func NewSHA512() Hash { return sha512.New() }

func NewSHA3_224() Hash { return sha3.New224() }
func NewSHA3_256() Hash { return sha3.New256() }
func NewSHA3_384() Hash { return sha3.New384() }
func NewSHA3_512() Hash { return sha3.New512() }

// NewMD4 wraps x/crypto/md4; used directly for the MD4 algorithm and as
// the inner chunk digest of ED2K.
func NewMD4() Hash { return md4.New() }

func NewRIPEMD160() Hash { return ripemd160.New() }

// NewBLAKE2s returns an unkeyed, 32-byte BLAKE2s digest.
func NewBLAKE2s() Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err) // unreachable: nil key is always accepted
	}
	return h
}

// NewBLAKE2b returns an unkeyed, 64-byte BLAKE2b digest. Resolves the
// spec's open question about BLAKE2b by including it consistently in both
// the registry and the BSD-name table.
func NewBLAKE2b() Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// NewBLAKE3 wraps zeebo/blake3, a pure-Go, hash.Hash-compatible BLAKE3
// seen required by buildbarn-bb-storage's manifest in the retrieval pack.
func NewBLAKE3() Hash { return blake3.New() }

// NewWhirlpool wraps jzelinskie/whirlpool, the ISO/IEC 10118-3:2004
// implementation retrieved directly in the example pack (tdx/whirlpool
// vendors it verbatim); adopted as a dependency rather than re-deriving
// its internal C-tables by hand.
func NewWhirlpool() Hash { return whirlpool.New() }
