package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("upload folder not created: %v", err)
	}

	ctx := context.Background()
	path, err := store.Save(ctx, "meeting.wav", strings.NewReader("RIFF"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != filepath.Join(dir, "meeting.wav") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "RIFF" {
		t.Fatalf("saved content = %q, err = %v", data, err)
	}

	if err := store.Remove(ctx, "meeting.wav"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove")
	}
	if err := store.Remove(ctx, "meeting.wav"); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestDiskStoreOverwritesSameName(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	store.Save(ctx, "a.mp3", strings.NewReader("first"))
	path, err := store.Save(ctx, "a.mp3", strings.NewReader("second"))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}

func TestDiskStorePathStaysInDir(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := store.Path("../../etc/passwd"); filepath.Dir(got) != store.Dir() {
		t.Errorf("Path escaped upload dir: %q", got)
	}
}

func TestObjectName(t *testing.T) {
	if got := objectName("dir/meeting.m4a"); got != "uploads/meeting.m4a" {
		t.Errorf("objectName() = %q", got)
	}
}
