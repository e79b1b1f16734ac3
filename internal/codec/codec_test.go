package codec

import (
	"bytes"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xde, 0xad, 0xbe, 0xef},
		{0x01, 0x02, 0x03, 0x04, 0x05},
	}
	for _, c := range cases {
		enc := HexEncode(c, false)
		dec, ok := HexDecode(enc)
		if !ok {
			t.Fatalf("HexDecode(%q) failed", enc)
		}
		if !bytes.Equal(dec, c) {
			t.Errorf("round trip mismatch: got %x want %x", dec, c)
		}
	}
}

func TestHexEncodeCase(t *testing.T) {
	if got := HexEncode([]byte{0xab, 0xcd}, false); got != "abcd" {
		t.Errorf("lower: got %q", got)
	}
	if got := HexEncode([]byte{0xab, 0xcd}, true); got != "ABCD" {
		t.Errorf("upper: got %q", got)
	}
}

func TestHexDecodeOddLength(t *testing.T) {
	b, ok := HexDecode("abc")
	if !ok {
		t.Fatal("expected success on odd-length input")
	}
	want := []byte{0xab, 0xc0}
	if !bytes.Equal(b, want) {
		t.Errorf("got %x want %x", b, want)
	}
}

func TestBase32RoundTrip(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog")
	enc := Base32Encode(data, true)
	dec, ok := Base32Decode(enc)
	if !ok {
		t.Fatalf("Base32Decode(%q) failed", enc)
	}
	if !bytes.Equal(dec, data) {
		t.Errorf("round trip mismatch: got %q want %q", dec, data)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	for n := 0; n < 10; n++ {
		data := bytes.Repeat([]byte{0x5a}, n)
		enc := Base64Encode(data)
		if len(enc)%4 != 0 {
			t.Errorf("base64 output not padded to multiple of 4: %q", enc)
		}
		dec, ok := Base64Decode(enc)
		if !ok {
			t.Fatalf("Base64Decode(%q) failed", enc)
		}
		if !bytes.Equal(dec, data) {
			t.Errorf("round trip mismatch for n=%d", n)
		}
	}
}

func TestURLEncodeInvolution(t *testing.T) {
	samples := []string{
		"abc.bin",
		"hello world/path?x=1&y=2",
		"日本語.txt",
		"",
	}
	for _, s := range samples {
		enc := URLEncode([]byte(s), false)
		dec, ok := URLDecode(enc)
		if !ok {
			t.Fatalf("URLDecode(%q) failed", enc)
		}
		if dec != s {
			t.Errorf("round trip mismatch: got %q want %q", dec, s)
		}
	}
}

func TestURLEncodeSafeSet(t *testing.T) {
	got := URLEncode([]byte("a b"), false)
	if got != "a%20b" {
		t.Errorf("got %q want a%%20b", got)
	}
}

func TestCountTrailingZeros(t *testing.T) {
	cases := map[uint32]int{
		1: 0, 2: 1, 4: 2, 8: 3, 0x10000: 16,
	}
	for in, want := range cases {
		if got := CountTrailingZerosU32(in); got != want {
			t.Errorf("ctz(%#x) = %d want %d", in, got, want)
		}
	}
}

func TestReverseBytes(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out := ReverseBytes(in)
	want := []byte{4, 3, 2, 1}
	if !bytes.Equal(out, want) {
		t.Errorf("got %v want %v", out, want)
	}
}
