// Command mhash is a thin CLI front end over the hashing engine, in the
// spirit of gtank-blake2s/cmd/blake2s/main.go: read each named file, run
// every requested algorithm over it, and print the result. Standard input
// is not read; with no file arguments it prints usage and exits.
// Flag parsing, progress bars and filesystem traversal are deliberately
// out of scope for the library itself - this binary is just one possible
// external collaborator exercising it.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ielm/mhash/format"
	"github.com/ielm/mhash/multihash"
	"github.com/ielm/mhash/registry"
	"github.com/ielm/mhash/template"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mhash <file> [file...]")
		os.Exit(2)
	}

	tmpl := template.MustCompile("{sha256}  {path}\n")
	mask := registry.SHA256 | registry.MD5 | registry.SHA1

	exit := 0
	for _, path := range os.Args[1:] {
		if err := hashFile(path, mask, tmpl); err != nil {
			fmt.Fprintf(os.Stderr, "mhash: %s: %v\n", path, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func hashFile(path string, mask registry.ID, tmpl *template.Template) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	ctx, err := multihash.New(mask)
	if err != nil {
		return err
	}
	if _, err := ctx.Copy(context.Background(), f); err != nil {
		return err
	}
	digests, err := ctx.Final()
	if err != nil {
		return err
	}

	out, err := tmpl.Render(template.Record{Path: path, Size: info.Size(), Digests: digests})
	if err != nil {
		return err
	}
	fmt.Print(out)
	fmt.Println(magnetLine(info.Size(), filepath.Base(path), digests))
	return nil
}

// magnetLine renders a magnet: link covering the MD5 and SHA-1 digests
// hashFile computed, giving format.MagnetLink a real caller.
func magnetLine(size int64, name string, digests map[registry.ID][]byte) string {
	var parts []format.MagnetPart
	for _, id := range []registry.ID{registry.MD5, registry.SHA1} {
		digest, ok := digests[id]
		if !ok {
			continue
		}
		d, ok := registry.Lookup(id)
		if !ok {
			continue
		}
		parts = append(parts, format.MagnetPart{Descriptor: d, Digest: digest})
	}
	return format.MagnetLink(size, name, parts)
}
