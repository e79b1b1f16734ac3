package template

import (
	"strings"
	"testing"

	"github.com/ielm/mhash/registry"
)

func TestRenderLongForm(t *testing.T) {
	tmpl, err := Compile("{sha256}  {path}")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{
		Path:    "a.txt",
		Digests: map[registry.ID][]byte{registry.SHA256: {0xAB, 0xCD}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "ABCD  a.txt"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

// %M (uppercase canonical letter) renders lowercase; %m (lowercase)
// renders uppercase - the case-inversion convention §4.6 documents.
func TestHashSelectorCaseInversion(t *testing.T) {
	rec := Record{Digests: map[registry.ID][]byte{registry.MD5: {0xAB, 0xCD}}}

	tmpl, err := Compile("%M")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out != "abcd" {
		t.Errorf("%%M = %q, want lowercase", out)
	}

	tmpl, err = Compile("%m")
	if err != nil {
		t.Fatal(err)
	}
	out, err = tmpl.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out != "ABCD" {
		t.Errorf("%%m = %q, want uppercase", out)
	}
}

// The long form mirrors the short form's case convention: an uppercase
// first letter renders lowercase, a lowercase first letter renders
// uppercase.
func TestLongFormCaseInversion(t *testing.T) {
	rec := Record{Digests: map[registry.ID][]byte{registry.MD5: {0xAB, 0xCD}}}

	tmpl, err := Compile("{MD5}")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out != "abcd" {
		t.Errorf("{MD5} = %q, want lowercase", out)
	}

	tmpl, err = Compile("{md5}")
	if err != nil {
		t.Fatal(err)
	}
	out, err = tmpl.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out != "ABCD" {
		t.Errorf("{md5} = %q, want uppercase", out)
	}
}

func TestRenderShortFormPathAndSize(t *testing.T) {
	tmpl, err := Compile("%p %s")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{Path: "b.txt", Size: 42})
	if err != nil {
		t.Fatal(err)
	}
	want := "b.txt 42"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestZeroPadSizeDirective(t *testing.T) {
	tmpl, err := Compile("%06s")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{Size: 42})
	if err != nil {
		t.Fatal(err)
	}
	if out != "000042" {
		t.Errorf("got %q, want zero-padded width-6 size", out)
	}
}

// The force-encoding flags (x/b/B/@) override an algorithm's default
// rendering encoding.
func TestForceEncodingFlags(t *testing.T) {
	rec := Record{Digests: map[registry.ID][]byte{registry.TTH: {0xDE, 0xAD, 0xBE, 0xEF}}}

	tmpl, err := Compile("%xT")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out != "deadbeef" {
		t.Errorf("%%xT = %q, want forced-hex lowercase", out)
	}
}

// @ forces raw (unencoded) output.
func TestRawEncodingFlag(t *testing.T) {
	tmpl, err := Compile("%@M")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{Digests: map[registry.ID][]byte{registry.MD5: {0xAB, 0xCD}}})
	if err != nil {
		t.Fatal(err)
	}
	if out != string([]byte{0xAB, 0xCD}) {
		t.Errorf("%%@M should emit the raw digest bytes, got %q", out)
	}
}

// Bare "%u" is the legacy URL-encoded-basename selector, not an
// unterminated url-encode modifier.
func TestLegacyBareUSelector(t *testing.T) {
	tmpl, err := Compile("%u")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{Path: "dir/a file.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "a%20file.txt" {
		t.Errorf("got %q", out)
	}
}

// "u" as a modifier (followed by a real selector) URL-encodes that
// selector's output instead.
func TestURLEncodeModifierWithSelector(t *testing.T) {
	tmpl, err := Compile("%up")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{Path: "dir/a file.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "dir%2fa%20file.txt" {
		t.Errorf("got %q", out)
	}
}

func TestBackslashEscapes(t *testing.T) {
	tmpl, err := Compile(`a\tb\nc\\d\x41\0`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{})
	if err != nil {
		t.Fatal(err)
	}
	want := "a\tb\nc\\dA\x00"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPercentEscapeLiteral(t *testing.T) {
	tmpl, err := Compile("100%% done")
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Render(Record{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "100% done" {
		t.Errorf("got %q", out)
	}
}

func TestMissingDigestErrors(t *testing.T) {
	tmpl, _ := Compile("{md5}")
	_, err := tmpl.Render(Record{Digests: map[registry.ID][]byte{}})
	if err == nil {
		t.Fatal("expected error rendering a selector with no digest available")
	}
}

func TestUnknownPlaceholderFailsCompile(t *testing.T) {
	if _, err := Compile("{notarealalgorithm}"); err == nil {
		t.Fatal("expected compile error for unknown placeholder")
	}
}

func TestED2KLinkSelectors(t *testing.T) {
	rec := Record{
		Path: "movie.avi",
		Size: 1000,
		Digests: map[registry.ID][]byte{
			registry.ED2K: {0xAA, 0xBB},
			registry.AICH: {0x01, 0x02, 0x03},
		},
	}

	withoutAICH, err := Compile("%l")
	if err != nil {
		t.Fatal(err)
	}
	out, err := withoutAICH.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out != "ed2k://|file|movie.avi|1000|aabb|/" {
		t.Errorf("%%l = %q", out)
	}

	withAICH, err := Compile("%L")
	if err != nil {
		t.Fatal(err)
	}
	out, err = withAICH.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out == "" || !strings.Contains(out, "h=") {
		t.Errorf("%%L should carry an h= segment, got %q", out)
	}
}
