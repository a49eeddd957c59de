package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterKeepsOneBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.log")
	w, err := newRotatingWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	chunk := bytes.Repeat([]byte("a"), 600<<10)
	for i := 0; i < 3; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	cur, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if cur.Size() != int64(len(chunk)) {
		t.Fatalf("current log size = %d, want %d", cur.Size(), len(chunk))
	}
	old, err := os.Stat(path + ".1")
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if old.Size() != int64(len(chunk)) {
		t.Fatalf("backup size = %d, want %d", old.Size(), len(chunk))
	}
}

func TestRotatingWriterAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.log")
	if err := os.WriteFile(path, []byte("first\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	w, err := newRotatingWriter(path, 0)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	if _, err := w.Write([]byte("second\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "first\nsecond\n" {
		t.Fatalf("log contents = %q", got)
	}
	if _, err := os.Stat(path + ".1"); err == nil {
		t.Fatalf("unexpected backup for small log")
	}
}
