// Package hashfile implements component C8: recognizing and parsing the
// checksum-file line formats the verification engine consumes - magnet
// links, ed2k links, BSD-style "ALGO (path) = digest" lines, and plain
// SFV/simple "digest  path" / "path digest" lines. Candidate algorithms
// for a bare digest are narrowed by its decoded byte length alone, since a
// simple line never names its algorithm. Bare digests in simple lines are
// recognized in hex only; a base32 bare digest is not accepted.
package hashfile

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ielm/mhash/internal/codec"
	mherrors "github.com/ielm/mhash/errors"
	"github.com/ielm/mhash/registry"
)

// Format identifies which line convention an Entry was parsed from.
type Format int

const (
	FormatUnknown Format = iota
	FormatSimple
	FormatSFV
	FormatBSD
	FormatMagnet
	FormatED2K
)

// Entry is one parsed line: a file path (or reconstructed from a link),
// its expected size if the format carried one, and either a single
// digest with a narrowed candidate algorithm mask (simple/SFV lines) or
// a fully-named set of digests (BSD/magnet/ed2k lines).
type Entry struct {
	Format        Format
	Path          string
	Size          int64 // -1 if unknown
	Digests       map[registry.ID][]byte
	CandidateMask registry.ID // non-zero only for FormatSimple/FormatSFV
	RawDigest     []byte      // the bare digest bytes for FormatSimple/FormatSFV, whose algorithm isn't yet known
	EmbeddedCRC32 []byte      // CRC32 embedded in the file name itself ("movie.[A1B2C3D4].mkv"), distinct from any digest carried by the line
}

var (
	bsdLineRE       = regexp.MustCompile(`^([A-Za-z0-9_-]+) \((.+)\) = ([0-9A-Za-z+/=]+)$`)
	simpleLineRE    = regexp.MustCompile(`^([0-9A-Fa-f]+)\s[\s*]?(.+)$`)
	sfvLineRE       = regexp.MustCompile(`^(.+?)\s+([0-9A-Fa-f]{8})$`)
	ed2kLineRE      = regexp.MustCompile(`^ed2k://\|file\|([^|]+)\|(\d+)\|([0-9A-Fa-f]{32})\|`)
	embeddedCRC32RE = regexp.MustCompile(`\[([0-9A-Fa-f]{8})\]`)
)

// ParseLine recognizes and parses a single hash-file line. Blank lines
// and lines starting with ';' or '#' (comment conventions carried over
// from SFV/BSD tooling) return (nil, nil).
func ParseLine(line string) (*Entry, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	var (
		entry *Entry
		err   error
	)
	switch {
	case strings.HasPrefix(trimmed, "magnet:?"):
		entry, err = parseMagnet(trimmed)
	case strings.HasPrefix(trimmed, "ed2k://"):
		entry, err = parseED2K(trimmed)
	default:
		if m := bsdLineRE.FindStringSubmatch(trimmed); m != nil {
			entry, err = parseBSD(m)
		} else if m := simpleLineRE.FindStringSubmatch(trimmed); m != nil {
			entry, err = parseSimple(m)
		} else if m := sfvLineRE.FindStringSubmatch(trimmed); m != nil {
			entry, err = parseSFV(m)
		} else {
			return nil, mherrors.Newf(mherrors.ErrParse, "hashfile: unrecognized line: %q", line)
		}
	}
	if err != nil {
		return nil, err
	}
	entry.EmbeddedCRC32 = extractEmbeddedCRC32(entry.Path)
	return entry, nil
}

// extractEmbeddedCRC32 pulls an 8-hex-digit CRC32 out of a bracketed
// segment of a file name (the "movie.[A1B2C3D4].mkv" release-naming
// convention), distinct from any digest the hash-file line itself
// carries. Returns nil if the name carries no such segment.
func extractEmbeddedCRC32(path string) []byte {
	m := embeddedCRC32RE.FindStringSubmatch(path)
	if m == nil {
		return nil
	}
	digest, ok := codec.HexDecode(m[1])
	if !ok {
		return nil
	}
	return digest
}

func normalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func parseBSD(m []string) (*Entry, error) {
	algoName, path, digestText := m[1], normalizePath(m[2]), m[3]
	d, ok := findByBSDName(algoName)
	if !ok {
		return nil, mherrors.Newf(mherrors.ErrParse, "hashfile: unknown BSD algorithm name %q", algoName)
	}
	digest, ok := codec.HexDecode(digestText)
	if !ok {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: invalid hex digest in BSD line")
	}
	return &Entry{
		Format:  FormatBSD,
		Path:    path,
		Size:    -1,
		Digests: map[registry.ID][]byte{d.ID: digest},
	}, nil
}

func findByBSDName(name string) (*registry.Descriptor, bool) {
	for _, d := range registry.All() {
		if strings.EqualFold(d.BSDName, name) {
			dd := d
			return &dd, true
		}
	}
	return nil, false
}

func parseSimple(m []string) (*Entry, error) {
	digestText, path := m[1], normalizePath(strings.TrimLeft(m[2], "*"))
	digest, ok := codec.HexDecode(digestText)
	if !ok {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: invalid hex digest in simple line")
	}
	return &Entry{
		Format:        FormatSimple,
		Path:          path,
		Size:          -1,
		CandidateMask: candidatesByLength(len(digest)),
		RawDigest:     digest,
	}, nil
}

func parseSFV(m []string) (*Entry, error) {
	path, digestText := normalizePath(strings.TrimSpace(m[1])), m[2]
	digest, ok := codec.HexDecode(digestText)
	if !ok || len(digest) != 4 {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: invalid CRC32 in SFV line")
	}
	return &Entry{
		Format:        FormatSFV,
		Path:          path,
		Size:          -1,
		CandidateMask: registry.CRC32,
		RawDigest:     digest,
	}, nil
}

func parseED2K(line string) (*Entry, error) {
	m := ed2kLineRE.FindStringSubmatch(line)
	if m == nil {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: malformed ed2k link")
	}
	name, err := url.QueryUnescape(m[1])
	if err != nil {
		name = m[1]
	}
	size, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: invalid size in ed2k link")
	}
	digest, ok := codec.HexDecode(m[3])
	if !ok {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: invalid hash in ed2k link")
	}
	return &Entry{
		Format:  FormatED2K,
		Path:    normalizePath(name),
		Size:    size,
		Digests: map[registry.ID][]byte{registry.ED2K: digest},
	}, nil
}

var magnetURNRE = regexp.MustCompile(`xt=urn:([a-zA-Z0-9.:]+):([0-9A-Za-z]+)`)

func parseMagnet(line string) (*Entry, error) {
	digests := make(map[registry.ID][]byte)
	var path string
	if idx := strings.Index(line, "dn="); idx >= 0 {
		rest := line[idx+3:]
		if end := strings.IndexByte(rest, '&'); end >= 0 {
			rest = rest[:end]
		}
		if decoded, ok := codec.URLDecode(rest); ok {
			path = decoded
		}
	}
	for _, m := range magnetURNRE.FindAllStringSubmatch(line, -1) {
		scheme, digestText := strings.ToLower(m[1]), m[2]
		d, ok := findByMagnetScheme(scheme)
		if !ok {
			continue
		}
		var digest []byte
		var ok2 bool
		if d.Encoding == registry.EncodingBase32 {
			digest, ok2 = codec.Base32Decode(digestText)
		} else {
			digest, ok2 = codec.HexDecode(digestText)
		}
		if ok2 {
			digests[d.ID] = digest
		}
	}
	if len(digests) == 0 {
		return nil, mherrors.New(mherrors.ErrParse, "hashfile: magnet link contains no recognized digest")
	}
	return &Entry{Format: FormatMagnet, Path: path, Size: -1, Digests: digests}, nil
}

func findByMagnetScheme(scheme string) (*registry.Descriptor, bool) {
	for _, d := range registry.All() {
		urn := strings.ToLower(d.MagnetURN)
		if urn != "" && urn == scheme {
			dd := d
			return &dd, true
		}
	}
	return nil, false
}

// candidatesByLength returns the OR of every algorithm whose raw digest
// size (in bytes) matches n, narrowing a bare simple-format digest down
// to its plausible algorithms before the verification engine tries each
// one in turn.
func candidatesByLength(n int) registry.ID {
	var mask registry.ID
	for _, d := range registry.All() {
		if d.DigestSize == n {
			mask |= d.ID
		}
	}
	return mask
}
