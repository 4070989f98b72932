package fileops

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestMove(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/src/a.txt", []byte("hello"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := fs.MkdirAll("/dst", 0755); err != nil {
		t.Fatal(err)
	}

	if err := Move(fs, "/src/a.txt", "/dst/a.txt"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, "/src/a.txt"); ok {
		t.Error("source should not exist after move")
	}
	data, err := afero.ReadFile(fs, "/dst/a.txt")
	if err != nil || string(data) != "hello" {
		t.Errorf("unexpected destination content: %q, %v", data, err)
	}
}

func TestMove_MissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := Move(fs, "/src/missing.txt", "/dst/missing.txt"); err == nil {
		t.Error("Expected error for missing source")
	}
}

func TestCopy_PreservesModTime(t *testing.T) {
	fs := afero.NewOsFs()
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "a.txt")
	dst := filepath.Join(tempDir, "b.txt")

	if err := afero.WriteFile(fs, src, []byte("content"), 0640); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	mtime := time.Date(2022, 5, 1, 10, 0, 0, 0, time.Local)
	if err := fs.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := Copy(fs, src, dst); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	info, err := fs.Stat(dst)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("Expected mtime %v, got %v", mtime, info.ModTime())
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("Expected mode 0640, got %v", info.Mode().Perm())
	}
	if ok, _ := afero.Exists(fs, src); !ok {
		t.Error("source should remain after copy")
	}
}

func TestCopy_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/in/photos/a.jpg", []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/in/photos/sub/b.jpg", []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Copy(fs, "/in/photos", "/out/photos"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	for _, p := range []string{"/out/photos/a.jpg", "/out/photos/sub/b.jpg"} {
		if ok, _ := afero.Exists(fs, p); !ok {
			t.Errorf("Expected %s to exist", p)
		}
	}
}

func TestCopy_RefusesOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/a.txt", []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/b.txt", []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Copy(fs, "/a.txt", "/b.txt"); err == nil {
		t.Error("Expected error when destination exists")
	}
	data, _ := afero.ReadFile(fs, "/b.txt")
	if string(data) != "old" {
		t.Errorf("destination was overwritten: %q", data)
	}
}

var errReadFailed = errors.New("read failed")

// brokenReadFs 打开的文件读取时总是失败
type brokenReadFs struct {
	afero.Fs
}

type brokenFile struct {
	afero.File
}

func (f brokenFile) Read(p []byte) (int, error) {
	return 0, errReadFailed
}

func (b brokenReadFs) Open(name string) (afero.File, error) {
	f, err := b.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return brokenFile{File: f}, nil
}

func TestCopy_RemovesPartialDestination(t *testing.T) {
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "/src/a.txt", []byte("hello"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := mem.MkdirAll("/dst", 0755); err != nil {
		t.Fatal(err)
	}

	err := Copy(brokenReadFs{Fs: mem}, "/src/a.txt", "/dst/a.txt")
	if !errors.Is(err, errReadFailed) {
		t.Fatalf("Copy() error = %v, want %v", err, errReadFailed)
	}
	if ok, _ := afero.Exists(mem, "/dst/a.txt"); ok {
		t.Error("partial destination should be removed")
	}
	if ok, _ := afero.Exists(mem, "/src/a.txt"); !ok {
		t.Error("source should be kept")
	}
}
