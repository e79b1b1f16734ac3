// Package registry holds the immutable algorithm descriptor table
// (component C3): one bit-flag identifier per algorithm, and everything a
// caller needs to run and render it - a leaf.Hash constructor, its digest
// and block sizes, default text encoding, output byte-order rule and BSD
// short name. The bit layout below extends librhash's rhash.h enum
// (CRC32 through EDON-R 512) sequentially for the extra algorithms this
// spec adds (CRC32C, the SHA-3 family, BLAKE2s/BLAKE2b/BLAKE3).
package registry

import "github.com/ielm/mhash/leaf"

// ID is a single-bit algorithm identifier, OR-able into a selection mask.
type ID uint64

const (
	CRC32 ID = 1 << iota
	MD4
	MD5
	SHA1
	TIGER
	TTH
	BTIH
	ED2K
	AICH
	WHIRLPOOL
	RIPEMD160
	GOST94
	GOST94CryptoPro
	HAS160
	SNEFRU128
	SNEFRU256
	SHA224
	SHA256
	SHA384
	SHA512
	EDONR256
	EDONR512
	CRC32C
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	BLAKE2S
	BLAKE2B
	BLAKE3
)

// AllHashes is the OR of every algorithm this registry knows, mirroring
// librhash's RHASH_ALL_HASHES reserved mask.
const AllHashes = CRC32 | MD4 | MD5 | SHA1 | TIGER | TTH | BTIH | ED2K | AICH |
	WHIRLPOOL | RIPEMD160 | GOST94 | GOST94CryptoPro | HAS160 | SNEFRU128 |
	SNEFRU256 | SHA224 | SHA256 | SHA384 | SHA512 | EDONR256 | EDONR512 |
	CRC32C | SHA3_224 | SHA3_256 | SHA3_384 | SHA3_512 | BLAKE2S | BLAKE2B | BLAKE3

// Encoding is an algorithm's conventional default text encoding.
type Encoding int

const (
	EncodingHex Encoding = iota
	EncodingBase32
)

// ByteOrder describes how a leaf.Hash's native Sum() bytes must be
// rearranged to match the algorithm's canonical printed digest.
type ByteOrder int

const (
	OrderAsIs ByteOrder = iota
	OrderReversible // GOST: optionally byte-reversed per RHPR_REVERSE
)

// Descriptor is the immutable, per-algorithm record the rest of the
// engine looks up by ID.
type Descriptor struct {
	ID          ID
	Name        string
	BSDName     string
	MagnetURN   string
	DigestSize  int
	BlockSize   int
	Encoding    Encoding
	ByteOrder   ByteOrder
	New         func() leaf.Hash
	IsTreeHash  bool // true for TTH/BTIH/AICH: built by the treehash package, not leaf
}

var table = []Descriptor{
	{ID: CRC32, Name: "crc32", BSDName: "CRC32", DigestSize: 4, BlockSize: 1, Encoding: EncodingHex, New: leaf.NewCRC32},
	{ID: CRC32C, Name: "crc32c", BSDName: "CRC32C", DigestSize: 4, BlockSize: 1, Encoding: EncodingHex, New: leaf.NewCRC32C},
	{ID: MD4, Name: "md4", BSDName: "MD4", DigestSize: 16, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewMD4},
	{ID: MD5, Name: "md5", BSDName: "MD5", MagnetURN: "md5", DigestSize: 16, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewMD5},
	{ID: SHA1, Name: "sha1", BSDName: "SHA1", MagnetURN: "sha1", DigestSize: 20, BlockSize: 64, Encoding: EncodingBase32, New: leaf.NewSHA1},
	{ID: TIGER, Name: "tiger", BSDName: "TIGER", MagnetURN: "tree:tiger", DigestSize: leaf.TigerDigestSize, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewTiger},
	{ID: TTH, Name: "tth", BSDName: "TTH", MagnetURN: "tree:tiger", DigestSize: leaf.TigerDigestSize, BlockSize: 1024, Encoding: EncodingBase32, IsTreeHash: true},
	{ID: BTIH, Name: "btih", BSDName: "BTIH", MagnetURN: "btih", DigestSize: 20, BlockSize: 0, Encoding: EncodingHex, IsTreeHash: true},
	{ID: ED2K, Name: "ed2k", BSDName: "ED2K", MagnetURN: "ed2k", DigestSize: 16, BlockSize: leaf.ED2KChunkSize, Encoding: EncodingHex, New: leaf.NewED2K},
	{ID: AICH, Name: "aich", BSDName: "AICH", MagnetURN: "aich", DigestSize: 20, BlockSize: 0, Encoding: EncodingBase32, IsTreeHash: true},
	{ID: WHIRLPOOL, Name: "whirlpool", BSDName: "WHIRLPOOL", DigestSize: 64, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewWhirlpool},
	{ID: RIPEMD160, Name: "ripemd160", BSDName: "RMD160", DigestSize: 20, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewRIPEMD160},
	{ID: GOST94, Name: "gost94", BSDName: "GOST94", DigestSize: leaf.GOST94DigestSize, BlockSize: 32, Encoding: EncodingHex, ByteOrder: OrderReversible, New: leaf.NewGOST94},
	{ID: GOST94CryptoPro, Name: "gost94-cryptopro", BSDName: "GOST94-CRYPTOPRO", DigestSize: leaf.GOST94DigestSize, BlockSize: 32, Encoding: EncodingHex, ByteOrder: OrderReversible, New: leaf.NewGOST94CryptoPro},
	{ID: HAS160, Name: "has160", BSDName: "HAS160", DigestSize: leaf.HAS160DigestSize, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewHAS160},
	{ID: SNEFRU128, Name: "snefru128", BSDName: "SNEFRU128", DigestSize: 16, BlockSize: 32, Encoding: EncodingHex, New: leaf.NewSnefru128},
	{ID: SNEFRU256, Name: "snefru256", BSDName: "SNEFRU256", DigestSize: 32, BlockSize: 32, Encoding: EncodingHex, New: leaf.NewSnefru256},
	{ID: SHA224, Name: "sha224", BSDName: "SHA224", DigestSize: 28, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewSHA224},
	{ID: SHA256, Name: "sha256", BSDName: "SHA256", MagnetURN: "sha256", DigestSize: 32, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewSHA256},
	{ID: SHA384, Name: "sha384", BSDName: "SHA384", DigestSize: 48, BlockSize: 128, Encoding: EncodingHex, New: leaf.NewSHA384},
	{ID: SHA512, Name: "sha512", BSDName: "SHA512", DigestSize: 64, BlockSize: 128, Encoding: EncodingHex, New: leaf.NewSHA512},
	{ID: EDONR256, Name: "edonr256", BSDName: "EDON-R256", DigestSize: leaf.EdonR256DigestSize, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewEdonR256},
	{ID: EDONR512, Name: "edonr512", BSDName: "EDON-R512", DigestSize: leaf.EdonR512DigestSize, BlockSize: 128, Encoding: EncodingHex, New: leaf.NewEdonR512},
	{ID: SHA3_224, Name: "sha3-224", BSDName: "SHA3-224", DigestSize: 28, BlockSize: 144, Encoding: EncodingHex, New: leaf.NewSHA3_224},
	{ID: SHA3_256, Name: "sha3-256", BSDName: "SHA3-256", DigestSize: 32, BlockSize: 136, Encoding: EncodingHex, New: leaf.NewSHA3_256},
	{ID: SHA3_384, Name: "sha3-384", BSDName: "SHA3-384", DigestSize: 48, BlockSize: 104, Encoding: EncodingHex, New: leaf.NewSHA3_384},
	{ID: SHA3_512, Name: "sha3-512", BSDName: "SHA3-512", DigestSize: 64, BlockSize: 72, Encoding: EncodingHex, New: leaf.NewSHA3_512},
	{ID: BLAKE2S, Name: "blake2s", BSDName: "BLAKE2s", DigestSize: 32, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewBLAKE2s},
	{ID: BLAKE2B, Name: "blake2b", BSDName: "BLAKE2b", DigestSize: 64, BlockSize: 128, Encoding: EncodingHex, New: leaf.NewBLAKE2b},
	{ID: BLAKE3, Name: "blake3", BSDName: "BLAKE3", DigestSize: 32, BlockSize: 64, Encoding: EncodingHex, New: leaf.NewBLAKE3},
}

var byID map[ID]*Descriptor
var byName map[string]*Descriptor

func init() {
	byID = make(map[ID]*Descriptor, len(table))
	byName = make(map[string]*Descriptor, len(table))
	for i := range table {
		d := &table[i]
		byID[d.ID] = d
		byName[d.Name] = d
	}
}

// Lookup returns the descriptor for a single-bit ID, or false if id is
// not a known single algorithm (e.g. it's unset, a multi-bit mask, or
// out of range).
func Lookup(id ID) (*Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// LookupName resolves a CLI-style lowercase algorithm name (e.g. "sha256").
func LookupName(name string) (*Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// Split decomposes a selection mask into its individual single-bit IDs,
// in ascending bit order - the order verify's candidate narrowing and
// multihash's digest enumeration both rely on.
func Split(mask ID) []ID {
	var ids []ID
	for bit := ID(1); bit != 0 && bit <= mask; bit <<= 1 {
		if mask&bit != 0 {
			if _, ok := byID[bit]; ok {
				ids = append(ids, bit)
			}
		}
	}
	return ids
}

// All returns every registered descriptor, ordered by ascending bit ID.
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	return out
}
