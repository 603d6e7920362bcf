// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/eriscorp/darkages-go/internal/daerr"
)

func isReadOnlyErr(err error) bool {
	return errors.Is(err, daerr.ReadOnlyArchive)
}

func mustReadAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return b
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o666); err != nil {
		t.Fatal(err)
	}

	a, err := FromDirectory(dir)
	if err != nil {
		t.Fatalf("FromDirectory: %v", err)
	}
	defer a.Close()

	out := filepath.Join(t.TempDir(), "out.dat")
	if err := a.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 25+5 {
		t.Fatalf("archive file length = %d, want 30", len(raw))
	}
	countField := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	if countField != 2 {
		t.Fatalf("count field = %d, want 2", countField)
	}

	loaded, err := Open(out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer loaded.Close()

	r, err := loaded.GetEntryStream("a.txt")
	if err != nil {
		t.Fatalf("GetEntryStream: %v", err)
	}
	got := mustReadAll(t, r)
	if string(got) != "hello" {
		t.Fatalf("a.txt contents = %q, want %q", got, "hello")
	}
	if len(loaded.Entries()) != 1 || loaded.Entries()[0].Length != 5 {
		t.Fatalf("unexpected entries: %+v", loaded.Entries())
	}
}

func TestEmptyArchiveLayout(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	out := filepath.Join(t.TempDir(), "empty.dat")
	if err := a.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 8 {
		t.Fatalf("empty archive length = %d, want 8", len(raw))
	}
	count := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	finalOffset := uint32(raw[4]) | uint32(raw[5])<<8 | uint32(raw[6])<<16 | uint32(raw[7])<<24
	if count != 1 || finalOffset != 8 {
		t.Fatalf("count=%d finalOffset=%d, want 1, 8", count, finalOffset)
	}
}

func TestPatchPreservesOrder(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := a.Patch("one.bin", []byte("111")); err != nil {
		t.Fatal(err)
	}
	if err := a.Patch("two.bin", []byte("222")); err != nil {
		t.Fatal(err)
	}
	if err := a.Patch("three.bin", []byte("333")); err != nil {
		t.Fatal(err)
	}
	if err := a.Patch("two.bin", []byte("222-new")); err != nil {
		t.Fatal(err)
	}

	names := make([]string, len(a.Entries()))
	for i, e := range a.Entries() {
		names[i] = e.Name
	}
	want := []string{"one.bin", "two.bin", "three.bin"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entry order = %v, want %v", names, want)
		}
	}

	r, err := a.GetEntryStream("two.bin")
	if err != nil {
		t.Fatal(err)
	}
	if got := string(mustReadAll(t, r)); got != "222-new" {
		t.Fatalf("two.bin = %q, want %q", got, "222-new")
	}
}

func TestDirectoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"one.bin":   "111",
		"two.bin":   "222",
		"three.bin": "333333",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o666); err != nil {
			t.Fatal(err)
		}
	}

	outPath := filepath.Join(t.TempDir(), "archive.dat")
	if err := Compile(dir, outPath); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	extractDir := t.TempDir()
	a, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()
	if err := a.ExtractTo(extractDir); err != nil {
		t.Fatalf("ExtractTo: %v", err)
	}
	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(extractDir, name))
		if err != nil {
			t.Fatalf("reading extracted %s: %v", name, err)
		}
		if string(got) != content {
			t.Fatalf("extracted %s = %q, want %q", name, got, content)
		}
	}
}

func TestMappedArchiveIsReadOnly(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o666); err != nil {
		t.Fatal(err)
	}
	datPath := filepath.Join(t.TempDir(), "a.dat")
	if err := Compile(dir, datPath); err != nil {
		t.Fatal(err)
	}

	a, err := OpenMapped(datPath)
	if err != nil {
		t.Fatalf("OpenMapped: %v", err)
	}
	defer a.Close()

	if err := a.Patch("a.txt", []byte("nope")); !isReadOnlyErr(err) {
		t.Fatalf("Patch on mapped archive: got %v, want ReadOnlyArchive", err)
	}
	if err := a.Save(filepath.Join(t.TempDir(), "out.dat")); !isReadOnlyErr(err) {
		t.Fatalf("Save on mapped archive: got %v, want ReadOnlyArchive", err)
	}
}

func TestNameTooLong(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	err = a.Patch("this-name-is-way-too-long-for-the-legacy-format.bin", []byte("x"))
	if err == nil {
		t.Fatal("expected NameTooLong error, got nil")
	}
}

func TestDisposedAfterClose(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := a.Patch("x", []byte("y")); err == nil {
		t.Fatal("expected Disposed error after close, got nil")
	}
}
