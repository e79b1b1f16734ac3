// Package template implements the printf-like output template engine
// (component C7): a print-item list compiled once from a format string,
// then rendered against a multi-hash context and file record for every
// verified or computed file. Two selector forms are supported: short
// printf-style directives ("%xT", "%uf") for scripting brevity, and long
// "{name}" placeholders for readability, mirroring the short/long
// option-name duality the rest of the corpus's CLIs favor.
package template

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	mherrors "github.com/ielm/mhash/errors"
	"github.com/ielm/mhash/format"
	"github.com/ielm/mhash/internal/codec"
	"github.com/ielm/mhash/registry"
)

// Record is everything a rendered template can reference about one
// file: its path, size, modification time, and the digests already
// computed for it.
type Record struct {
	Path    string
	Size    int64
	Mtime   time.Time
	Digests map[registry.ID][]byte
}

// hashLetters maps the canonical uppercase selector letter §4.6 assigns
// each algorithm a one-character shorthand for. Case of the letter the
// template actually uses selects the digest's rendered case: the
// uppercase form (the canonical one in this table) renders lowercase
// hex, and the lowercase form renders uppercase - e.g. %M is lower,
// %m is upper.
var hashLetters = map[byte]registry.ID{
	'C': registry.CRC32,
	'M': registry.MD5,
	'H': registry.SHA1,
	'T': registry.TTH,
	'G': registry.GOST94,
	'W': registry.WHIRLPOOL,
	'R': registry.RIPEMD160,
	'A': registry.AICH,
	'E': registry.ED2K,
}

type itemKind int

const (
	itemLiteral itemKind = iota
	itemAlgo
	itemField
	itemED2KLink
)

type printItem struct {
	kind     itemKind
	lit      string
	id       registry.ID
	field    string // "path" | "file" | "size" | "urlname" | "mtime"
	withAICH bool   // itemED2KLink only
	enc      *format.Encoding
	upper    bool
	urlWrap  bool
	urlUpper bool
	zeroPad  bool
	width    int
}

// Template is a compiled print-item list.
type Template struct {
	items []printItem
}

// Compile parses a template string into a reusable Template. Backslash
// escapes (\t \r \n \\ \0 \xNN \NNN) are decoded in literal text as
// they're scanned, per §4.6.
func Compile(s string) (*Template, error) {
	var items []printItem
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			items = append(items, printItem{kind: itemLiteral, lit: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(s) {
		switch s[i] {
		case '%':
			if i+1 < len(s) && s[i+1] == '%' {
				lit.WriteByte('%')
				i += 2
				continue
			}
			flushLit()
			item, next, err := parseDirective(s, i+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			i = next
		case '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, mherrors.New(mherrors.ErrParse, "template: unterminated '{' placeholder")
			}
			flushLit()
			name := s[i+1 : i+end]
			item, err := resolveLongName(name)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			i += end + 1
		case '\\':
			b, next, ok := decodeEscape(s, i)
			if !ok {
				return nil, mherrors.Newf(mherrors.ErrParse, "template: unrecognized escape at byte %d", i)
			}
			lit.WriteByte(b)
			i = next
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flushLit()
	return &Template{items: items}, nil
}

// decodeEscape decodes one backslash escape starting at s[i] == '\\' and
// returns the single decoded byte and the index just past the escape.
func decodeEscape(s string, i int) (byte, int, bool) {
	rest := s[i+1:]
	if len(rest) == 0 {
		return 0, i, false
	}
	switch rest[0] {
	case 't':
		return '\t', i + 2, true
	case 'r':
		return '\r', i + 2, true
	case 'n':
		return '\n', i + 2, true
	case '\\':
		return '\\', i + 2, true
	case 'x':
		if len(rest) >= 3 && isHexDigit(rest[1]) && isHexDigit(rest[2]) {
			return hexDigitVal(rest[1])<<4 | hexDigitVal(rest[2]), i + 4, true
		}
		return 0, i, false
	}
	if len(rest) >= 3 && isOctalDigit(rest[0]) && isOctalDigit(rest[1]) && isOctalDigit(rest[2]) {
		v := int(rest[0]-'0')*64 + int(rest[1]-'0')*8 + int(rest[2]-'0')
		return byte(v), i + 4, true
	}
	if rest[0] == '0' {
		return 0, i + 2, true
	}
	return 0, i, false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigitVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

// parseDirective parses "% [0|u|U] [x|b|B|@] [<width>] <selector>"
// starting right after the '%'. The leading 'u' modifier is ambiguous
// with the legacy "u" selector (URL-encoded basename); parseDirective
// backtracks to a bare selector read if consuming 'u' as a modifier
// leaves no valid selector.
func parseDirective(s string, i int) (printItem, int, error) {
	if item, next, err := parseDirectiveFrom(s, i, true); err == nil {
		return item, next, nil
	}
	return parseDirectiveFrom(s, i, false)
}

func parseDirectiveFrom(s string, i int, allowModifier bool) (printItem, int, error) {
	zeroPad, urlWrap, urlUpper := false, false, false
	if allowModifier && i < len(s) {
		switch s[i] {
		case '0':
			zeroPad = true
			i++
		case 'u':
			urlWrap = true
			i++
		case 'U':
			urlWrap = true
			urlUpper = true
			i++
		}
	}

	var encOverride *format.Encoding
	if i < len(s) {
		switch s[i] {
		case 'x':
			e := format.Hex
			encOverride = &e
			i++
		case 'b':
			e := format.Base32
			encOverride = &e
			i++
		case 'B':
			e := format.Base64
			encOverride = &e
			i++
		case '@':
			e := format.Raw
			encOverride = &e
			i++
		}
	}

	width := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		width = width*10 + int(s[i]-'0')
		i++
	}

	if i >= len(s) {
		return printItem{}, i, mherrors.New(mherrors.ErrParse, "template: directive missing selector letter")
	}
	letter := s[i]
	i++

	item, err := resolveSelectorLetter(letter, encOverride, zeroPad, urlWrap, urlUpper, width)
	if err != nil {
		return printItem{}, i, err
	}
	return item, i, nil
}

func resolveSelectorLetter(letter byte, encOverride *format.Encoding, zeroPad, urlWrap, urlUpper bool, width int) (printItem, error) {
	upperLetter := letter
	if letter >= 'a' && letter <= 'z' {
		upperLetter -= 'a' - 'A'
	}
	if id, ok := hashLetters[upperLetter]; ok {
		upper := letter != upperLetter // lowercase selector -> uppercase digest
		return printItem{kind: itemAlgo, id: id, enc: encOverride, upper: upper, urlWrap: urlWrap, urlUpper: urlUpper}, nil
	}

	switch letter {
	case 'L':
		return printItem{kind: itemED2KLink, withAICH: true, urlWrap: urlWrap, urlUpper: urlUpper}, nil
	case 'l':
		return printItem{kind: itemED2KLink, withAICH: false, urlWrap: urlWrap, urlUpper: urlUpper}, nil
	case 'p':
		return printItem{kind: itemField, field: "path", urlWrap: urlWrap, urlUpper: urlUpper}, nil
	case 'f':
		return printItem{kind: itemField, field: "file", urlWrap: urlWrap, urlUpper: urlUpper}, nil
	case 's':
		return printItem{kind: itemField, field: "size", zeroPad: zeroPad, width: width}, nil
	case 'u':
		return printItem{kind: itemField, field: "urlname"}, nil
	}
	return printItem{}, mherrors.Newf(mherrors.ErrParse, "template: unknown selector letter %q", letter)
}

func resolveLongName(name string) (printItem, error) {
	lower := strings.ToLower(name)
	switch lower {
	case "path":
		return printItem{kind: itemField, field: "path"}, nil
	case "file":
		return printItem{kind: itemField, field: "file"}, nil
	case "size":
		return printItem{kind: itemField, field: "size"}, nil
	case "urlname":
		return printItem{kind: itemField, field: "urlname"}, nil
	case "mtime":
		return printItem{kind: itemField, field: "mtime"}, nil
	}
	d, ok := registry.LookupName(lower)
	if !ok {
		return printItem{}, mherrors.Newf(mherrors.ErrParse, "template: unknown placeholder {%s}", name)
	}
	// As with the short form, the case of the selector's first letter
	// picks the digest's rendered case: an uppercase first letter is the
	// canonical form and renders lowercase, a lowercase first letter
	// renders uppercase.
	upper := len(name) > 0 && name[0] >= 'a' && name[0] <= 'z'
	return printItem{kind: itemAlgo, id: d.ID, upper: upper}, nil
}

// Render produces the final string for one file record.
func (t *Template) Render(r Record) (string, error) {
	var b strings.Builder
	for _, item := range t.items {
		text, err := renderItem(item, r)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func renderItem(item printItem, r Record) (string, error) {
	switch item.kind {
	case itemLiteral:
		return item.lit, nil
	case itemField:
		return wrapURL(renderField(item, r), item), nil
	case itemAlgo:
		digest, ok := r.Digests[item.id]
		if !ok {
			return "", mherrors.New(mherrors.ErrInvalidState, "template: no digest available for selected algorithm")
		}
		return wrapURL(renderDigest(item, digest), item), nil
	case itemED2KLink:
		ed2k, ok := r.Digests[registry.ED2K]
		if !ok {
			return "", mherrors.New(mherrors.ErrInvalidState, "template: ed2k link requested but no ED2K digest available")
		}
		var aich []byte
		if item.withAICH {
			aich = r.Digests[registry.AICH]
		}
		link := format.ED2KLink(path.Base(r.Path), r.Size, ed2k, aich)
		return wrapURL(link, item), nil
	}
	return "", mherrors.New(mherrors.ErrInvalidState, "template: unknown print item")
}

func renderField(item printItem, r Record) string {
	switch item.field {
	case "path":
		return r.Path
	case "file":
		return path.Base(r.Path)
	case "urlname":
		return codec.URLEncode([]byte(path.Base(r.Path)), false)
	case "size":
		text := strconv.FormatInt(r.Size, 10)
		if item.zeroPad && item.width > len(text) {
			text = strings.Repeat("0", item.width-len(text)) + text
		} else if item.width > len(text) {
			text = strings.Repeat(" ", item.width-len(text)) + text
		}
		return text
	case "mtime":
		return r.Mtime.Format(time.RFC3339)
	}
	return ""
}

func renderDigest(item printItem, digest []byte) string {
	d, ok := registry.Lookup(item.id)
	enc := format.Hex
	if ok && d.Encoding == registry.EncodingBase32 {
		enc = format.Base32
	}
	if item.enc != nil {
		enc = *item.enc
	}
	c := format.Lower
	if item.upper {
		c = format.Upper
	}
	return format.Bytes(digest, enc, c)
}

func wrapURL(text string, item printItem) string {
	if !item.urlWrap {
		return text
	}
	return codec.URLEncode([]byte(text), item.urlUpper)
}

// MustCompile is Compile's panic-on-error convenience form, for
// caller-supplied constant templates (e.g. the CLI's built-in default).
func MustCompile(s string) *Template {
	t, err := Compile(s)
	if err != nil {
		panic(fmt.Sprintf("template: MustCompile: %v", err))
	}
	return t
}
