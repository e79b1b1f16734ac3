package hashfile

import (
	"testing"

	"github.com/ielm/mhash/registry"
)

func TestParseBSDLine(t *testing.T) {
	e, err := ParseLine("SHA256 (file.txt) = " + "00112233445566778899aabbccddeeff00112233445566778899aabbccddee")
	if err != nil {
		t.Fatal(err)
	}
	if e.Format != FormatBSD || e.Path != "file.txt" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, ok := e.Digests[registry.SHA256]; !ok {
		t.Fatalf("expected sha256 digest in entry")
	}
}

func TestParseSimpleLine(t *testing.T) {
	e, err := ParseLine("d41d8cd98f00b204e9800998ecf8427e  empty.txt")
	if err != nil {
		t.Fatal(err)
	}
	if e.Format != FormatSimple || e.Path != "empty.txt" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.CandidateMask&registry.MD5 == 0 {
		t.Fatalf("expected MD5 in candidate mask for a 16-byte digest")
	}
	if len(e.RawDigest) != 16 {
		t.Fatalf("expected a 16-byte raw digest, got %d bytes", len(e.RawDigest))
	}
}

func TestParseSFVLine(t *testing.T) {
	e, err := ParseLine("archive.zip 12345678")
	if err != nil {
		t.Fatal(err)
	}
	if e.Format != FormatSFV || e.CandidateMask != registry.CRC32 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestParseED2KLink(t *testing.T) {
	e, err := ParseLine("ed2k://|file|movie.avi|1000|d41d8cd98f00b204e9800998ecf8427e|/")
	if err != nil {
		t.Fatal(err)
	}
	if e.Format != FormatED2K || e.Size != 1000 || e.Path != "movie.avi" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestParseMagnetLine(t *testing.T) {
	e, err := ParseLine("magnet:?xt=urn:sha1:3I42H3S6NNFQ2MSVX7XZKYAYSCX5QBYJ&dn=test.txt")
	if err != nil {
		t.Fatal(err)
	}
	if e.Format != FormatMagnet || e.Path != "test.txt" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, ok := e.Digests[registry.SHA1]; !ok {
		t.Fatalf("expected sha1 digest parsed from magnet urn")
	}
}

func TestBlankAndCommentLinesSkip(t *testing.T) {
	for _, line := range []string{"", "   ", "; a comment", "# another comment"} {
		e, err := ParseLine(line)
		if err != nil || e != nil {
			t.Fatalf("expected nil, nil for %q, got %+v, %v", line, e, err)
		}
	}
}

// A bracketed 8-hex-digit segment in the file name itself is captured
// as EmbeddedCRC32, distinct from the line's own digest.
func TestEmbeddedCRC32Extraction(t *testing.T) {
	e, err := ParseLine("d41d8cd98f00b204e9800998ecf8427e  release.[A1B2C3D4].mkv")
	if err != nil {
		t.Fatal(err)
	}
	if e.EmbeddedCRC32 == nil {
		t.Fatal("expected EmbeddedCRC32 to be extracted from the file name")
	}
	want, _ := registry.Lookup(registry.CRC32)
	if want.DigestSize != len(e.EmbeddedCRC32) {
		t.Fatalf("expected a %d-byte embedded CRC32, got %d bytes", want.DigestSize, len(e.EmbeddedCRC32))
	}
}

func TestNoEmbeddedCRC32WhenNameCarriesNone(t *testing.T) {
	e, err := ParseLine("d41d8cd98f00b204e9800998ecf8427e  plain.txt")
	if err != nil {
		t.Fatal(err)
	}
	if e.EmbeddedCRC32 != nil {
		t.Fatalf("expected no embedded CRC32, got %x", e.EmbeddedCRC32)
	}
}

func TestBackslashPathNormalization(t *testing.T) {
	e, err := ParseLine(`d41d8cd98f00b204e9800998ecf8427e  sub\dir\file.txt`)
	if err != nil {
		t.Fatal(err)
	}
	if e.Path != "sub/dir/file.txt" {
		t.Fatalf("expected normalized path, got %q", e.Path)
	}
}
