package undo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
	"github.com/stargirl99/Cable/pkg/destination"
	"github.com/stargirl99/Cable/pkg/oplog"
	"github.com/stargirl99/Cable/pkg/scanner"
	"github.com/stargirl99/Cable/pkg/sorter"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
}

func sortDir(t *testing.T, fs afero.Fs, target string) *sorter.Result {
	t.Helper()
	registry := classifier.NewRegistry([]classifier.Category{
		{ID: "documents", Folder: "Documents", Extensions: []string{".pdf"}},
		{ID: "notepads", Folder: "Notepads", Extensions: []string{".txt"}},
	}, nil)
	engine := sorter.NewEngine(fs, registry, destination.NewResolver(fs, registry, nil, "/fallback"))

	entries, err := scanner.NewFileWalker(fs, registry.RootFolders(), nil).List(target)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	result, err := engine.Run(context.Background(), target, scanner.Order(entries, internal.SortAlpha), sorter.Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return result
}

func TestUndo_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/a.txt", "a")
	writeFile(t, fs, "/in/b.pdf", "b")
	writeFile(t, fs, "/in/Notepads/a.txt", "older a")

	result := sortDir(t, fs, "/in")
	if len(result.Moves) != 2 {
		t.Fatalf("Expected 2 moves, got %+v", result.Moves)
	}

	out, err := NewUndoer(fs).Undo("/in")
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if out.Restored != 2 || out.NotFound != 0 || out.Failed != 0 {
		t.Errorf("unexpected outcome: %+v", out)
	}

	for path, want := range map[string]string{"/in/a.txt": "a", "/in/b.pdf": "b", "/in/Notepads/a.txt": "older a"} {
		data, err := afero.ReadFile(fs, path)
		if err != nil || string(data) != want {
			t.Errorf("%s = %q, %v; want %q", path, data, err, want)
		}
	}
	if ok, _ := afero.Exists(fs, "/in/Notepads/a (1).txt"); ok {
		t.Error("disambiguated file should be restored")
	}
	if oplog.Exists(fs, "/in") {
		t.Error("operation log should be deleted after undo")
	}

	// 第二次撤销没有日志
	out, err = NewUndoer(fs).Undo("/in")
	if err != nil {
		t.Fatalf("second Undo() error = %v", err)
	}
	if !out.NothingToUndo {
		t.Error("Expected NothingToUndo on second run")
	}
}

func TestUndo_NotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/Notepads/a.txt", "a")
	l := oplog.New([]oplog.Op{
		{Src: "/in/a.txt", Dst: "/in/Notepads/a.txt"},
		{Src: "/in/b.txt", Dst: "/in/Notepads/b.txt"},
	})
	if err := oplog.Write(fs, "/in", l); err != nil {
		t.Fatal(err)
	}

	out, err := NewUndoer(fs).Undo("/in")
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if out.Restored != 1 || out.NotFound != 1 {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestUndo_RecreatesParent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/out/Documents/r.pdf", "r")
	l := oplog.New([]oplog.Op{{Src: "/in/sub/r.pdf", Dst: "/out/Documents/r.pdf"}})
	if err := oplog.Write(fs, "/in", l); err != nil {
		t.Fatal(err)
	}

	if _, err := NewUndoer(fs).Undo("/in"); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, "/in/sub/r.pdf"); !ok {
		t.Error("file should be restored into recreated parent")
	}
}

func TestUndo_Rejected(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    error
	}{
		{"copy log", `{"timestamp":"2024-03-10T12:00:00","mode":"copy","ops":[{"src":"/in/a.txt","dst":"/in/Notepads/a.txt"}]}`, ErrNotUndoable},
		{"corrupt log", `{"timestamp":`, ErrCorruptLog},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "/in/Notepads/a.txt", "a")
			writeFile(t, fs, oplog.Path("/in"), tc.content)

			_, err := NewUndoer(fs).Undo("/in")
			if !errors.Is(err, tc.want) {
				t.Fatalf("Expected %v, got %v", tc.want, err)
			}
			if !oplog.Exists(fs, "/in") {
				t.Error("log must be left untouched")
			}
			if ok, _ := afero.Exists(fs, "/in/Notepads/a.txt"); !ok {
				t.Error("files must not be touched")
			}
		})
	}
}
