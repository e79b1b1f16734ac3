// Package format renders finished digests into the text forms spec.md
// §4.6 names: hex/base32/base64/url, magnet links, ed2k links and
// SFV/BSD-style checksum lines. It mirrors librhash's two-layer split of
// rhash_print_bytes (raw bytes -> encoded string) and rhash_print (a
// full formatted line for one file), kept as format.Bytes and the line
// renderers BSDLine, SFVLine, MagnetLink and ED2KLink respectively.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ielm/mhash/internal/codec"
	"github.com/ielm/mhash/registry"
)

// Encoding selects a text encoding for Bytes, independent of an
// algorithm's own default (registry.Descriptor.Encoding) so callers can
// override it (e.g. a BSD-style line always wants hex regardless of the
// algorithm's conventional base32 default).
type Encoding int

const (
	Hex Encoding = iota
	Base32
	Base64
	URL
	Raw
)

// Case controls upper/lowercase rendering for hex and URL-percent-encoded
// hex digits.
type Case int

const (
	Lower Case = iota
	Upper
)

// Bytes encodes a raw digest using the requested encoding and case,
// mirroring rhash_print_bytes.
func Bytes(digest []byte, enc Encoding, c Case) string {
	upper := c == Upper
	switch enc {
	case Base32:
		return codec.Base32Encode(digest, upper)
	case Base64:
		return codec.Base64Encode(digest)
	case URL:
		return codec.URLEncode(digest, upper)
	case Raw:
		return string(digest)
	default:
		return codec.HexEncode(digest, upper)
	}
}

// bsdNames overrides registry.Descriptor.BSDName for the handful of
// algorithms whose BSD-style line uses a different short name than their
// canonical name, per librhash's hash_print.c custom_bsd_name table.
var bsdNames = map[registry.ID]string{
	registry.RIPEMD160: "RMD160",
	registry.SHA224:    "SHA224",
	registry.SHA256:    "SHA256",
	registry.SHA384:    "SHA384",
	registry.SHA512:    "SHA512",
	registry.BLAKE2S:    "BLAKE2s",
	registry.BLAKE2B:    "BLAKE2b",
}

// BSDName returns the name an algorithm uses in a BSD-style checksum
// line ("ALGO (file) = digest"), which is not always the same as the
// algorithm's canonical registry name.
func BSDName(d *registry.Descriptor) string {
	if name, ok := bsdNames[d.ID]; ok {
		return name
	}
	return d.BSDName
}

// BSDLine renders "ALGO (path) = digest".
func BSDLine(d *registry.Descriptor, path string, digest []byte, c Case) string {
	return fmt.Sprintf("%s (%s) = %s", BSDName(d), path, Bytes(digest, Hex, c))
}

// SFVLine renders the simple-files-verification convention: "path CRC32",
// used almost exclusively with CRC32 itself.
func SFVLine(path string, digest []byte) string {
	return fmt.Sprintf("%s %s", path, Bytes(digest, Hex, Upper))
}

// MagnetURN renders one "xt=urn:<scheme>:<digest>" component of a magnet
// link for a single algorithm. Per §4.5, SHA-1 and BTIH digests in magnet
// links are always base32 regardless of the descriptor's own default
// rendering encoding; every other algorithm uses its default.
func MagnetURN(d *registry.Descriptor, digest []byte) string {
	scheme := d.MagnetURN
	if scheme == "" {
		scheme = d.Name
	}
	enc := Hex
	switch {
	case d.ID == registry.SHA1 || d.ID == registry.BTIH:
		enc = Base32
	case d.Encoding == registry.EncodingBase32:
		enc = Base32
	}
	return fmt.Sprintf("urn:%s:%s", scheme, Bytes(digest, enc, Upper))
}

// MagnetLink assembles a full magnet: link from a content size, a display
// name and one or more algorithm/digest pairs, in the order §4.5 and
// scenario S4 specify: "magnet:?xl=<size>&dn=<name>&xt=...&xt=...".
func MagnetLink(size int64, displayName string, parts []MagnetPart) string {
	var b strings.Builder
	b.WriteString("magnet:?xl=")
	b.WriteString(strconv.FormatInt(size, 10))
	if displayName != "" {
		b.WriteString("&dn=")
		b.WriteString(codec.URLEncode([]byte(displayName), false))
	}
	for _, p := range parts {
		b.WriteString("&xt=")
		b.WriteString(MagnetURN(p.Descriptor, p.Digest))
	}
	return b.String()
}

// MagnetPart pairs an algorithm descriptor with its computed digest for
// MagnetLink.
type MagnetPart struct {
	Descriptor *registry.Descriptor
	Digest     []byte
}

// ED2KLink renders an ed2k:// link: "ed2k://|file|name|size|hash|/", with
// an optional "h=<aich-base32>|" segment when an AICH digest is supplied,
// per §4.5. Pass a nil aich to omit the segment.
func ED2KLink(name string, size int64, digest []byte, aich []byte) string {
	var h string
	if len(aich) > 0 {
		h = "h=" + Bytes(aich, Base32, Upper) + "|"
	}
	return fmt.Sprintf("ed2k://|file|%s|%d|%s|%s/", codec.URLEncode([]byte(name), false), size, Bytes(digest, Hex, Lower), h)
}
