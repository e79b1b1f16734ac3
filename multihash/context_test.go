package multihash

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ielm/mhash/registry"
)

func TestMultiEqualsSingle(t *testing.T) {
	mask := registry.MD5 | registry.SHA1 | registry.SHA256
	ctx, err := New(mask)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte("multi-equals-single payload")
	if err := ctx.Update(payload); err != nil {
		t.Fatal(err)
	}
	digests, err := ctx.Final()
	if err != nil {
		t.Fatal(err)
	}

	single, err := New(registry.SHA256)
	if err != nil {
		t.Fatal(err)
	}
	single.Update(payload)
	want, _ := single.Final()

	if !bytes.Equal(digests[registry.SHA256], want[registry.SHA256]) {
		t.Fatalf("sha256 digest from combined context diverged from solo context")
	}
}

func TestResetEquivalence(t *testing.T) {
	ctx, err := New(registry.SHA256)
	if err != nil {
		t.Fatal(err)
	}
	ctx.Update([]byte("first payload"))
	ctx.Final()
	ctx.Reset()
	ctx.Update([]byte("second payload"))
	got, _ := ctx.Final()

	fresh, _ := New(registry.SHA256)
	fresh.Update([]byte("second payload"))
	want, _ := fresh.Final()

	if !bytes.Equal(got[registry.SHA256], want[registry.SHA256]) {
		t.Fatalf("reset context diverged from a freshly constructed one")
	}
}

func TestUpdateAfterFinalFails(t *testing.T) {
	ctx, _ := New(registry.MD5)
	ctx.Update([]byte("x"))
	ctx.Final()
	if err := ctx.Update([]byte("y")); err == nil {
		t.Fatal("expected error updating after Final")
	}
}

func TestEmptySelectionFails(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error constructing a context with no algorithm selected")
	}
}

func TestCancellationLiveness(t *testing.T) {
	ctx, _ := New(registry.SHA256)
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ctx.Copy(cctx, strings.NewReader(strings.Repeat("a", 1<<20)))
	if err == nil {
		t.Fatal("expected Copy to observe cancellation")
	}
}
