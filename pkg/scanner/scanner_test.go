package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
)

func TestFileWalker_List(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []string{
		"file1.txt",
		"file2.pdf",
		".hidden_file",
		"desktop.ini",
		"build.tmp",
		internal.OperationLogName,
		"Documents/already.pdf",
		"subdir/file3.txt",
	}

	for _, file := range testFiles {
		fullPath := filepath.Join(tempDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("test content"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	walker := NewFileWalker(afero.NewOsFs(), map[string]bool{"Documents": true}, []string{"desktop.ini", "*.tmp"})
	entries, err := walker.List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	got := make(map[string]Entry)
	for _, e := range entries {
		got[e.Name] = e
	}

	for _, name := range []string{"file1.txt", "file2.pdf", "subdir"} {
		if _, ok := got[name]; !ok {
			t.Errorf("Expected %s to be listed", name)
		}
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 entries, got %d: %v", len(got), got)
	}

	if !got["subdir"].IsDir {
		t.Error("subdir should be a directory entry")
	}
	if got["file2.pdf"].Ext != ".pdf" || got["file2.pdf"].Size != int64(len("test content")) {
		t.Errorf("unexpected entry: %+v", got["file2.pdf"])
	}
	if got["file1.txt"].Path != filepath.Join(tempDir, "file1.txt") {
		t.Errorf("unexpected path: %s", got["file1.txt"].Path)
	}
}

func TestFileWalker_List_MissingDir(t *testing.T) {
	walker := NewFileWalker(afero.NewOsFs(), nil, nil)
	if _, err := walker.List("/non/existent/dir"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestNewEntry_StatFailure(t *testing.T) {
	e := NewEntry(afero.NewMemMapFs(), "/gone/Report.PDF")

	if e.Stated {
		t.Error("Stated should be false for a missing path")
	}
	if e.Size != 0 || !e.ModTime.Equal(Epoch) {
		t.Errorf("Expected zero size and epoch time, got %d %v", e.Size, e.ModTime)
	}
	if e.Ext != ".pdf" {
		t.Errorf("Expected lower-cased extension, got %q", e.Ext)
	}
}

func TestExcluded(t *testing.T) {
	patterns := []string{"*.tmp", "Thumbs.db", "~$*"}

	testCases := []struct {
		name     string
		excluded bool
	}{
		{"a.tmp", true},
		{"Thumbs.db", true},
		{"~$report.docx", true},
		{"report.docx", false},
		{"tmp", false},
	}

	for _, tc := range testCases {
		if got := Excluded(tc.name, patterns); got != tc.excluded {
			t.Errorf("Excluded(%q) = %v, want %v", tc.name, got, tc.excluded)
		}
	}

	if Excluded("anything", nil) {
		t.Error("no patterns should exclude nothing")
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestOrder(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Path: "/d/b.txt", Name: "b.txt", Ext: ".txt", Size: 10, ModTime: base},
		{Path: "/d/A.pdf", Name: "A.pdf", Ext: ".pdf", Size: 30, ModTime: base.Add(time.Hour)},
		{Path: "/d/c.TXT", Name: "c.TXT", Ext: ".txt", Size: 30, ModTime: base.Add(-time.Hour)},
		{Path: "/d/a.txt", Name: "a.txt", Ext: ".txt", Size: 10, ModTime: base},
		{Path: "/d/broken", Name: "broken", Ext: "", Size: 0, ModTime: Epoch},
	}

	testCases := []struct {
		mode internal.SortMode
		want []string
	}{
		{internal.SortAlpha, []string{"A.pdf", "a.txt", "b.txt", "broken", "c.TXT"}},
		{internal.SortExt, []string{"broken", "A.pdf", "a.txt", "b.txt", "c.TXT"}},
		{internal.SortSize, []string{"A.pdf", "c.TXT", "a.txt", "b.txt", "broken"}},
		{internal.SortDate, []string{"A.pdf", "a.txt", "b.txt", "c.TXT", "broken"}},
		{internal.SortCombo, []string{"broken", "A.pdf", "c.TXT", "a.txt", "b.txt"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.mode), func(t *testing.T) {
			first := names(Order(entries, tc.mode))
			second := names(Order(entries, tc.mode))

			for i := range tc.want {
				if first[i] != tc.want[i] {
					t.Fatalf("Order(%s) = %v, want %v", tc.mode, first, tc.want)
				}
				if first[i] != second[i] {
					t.Fatalf("Order(%s) not deterministic: %v vs %v", tc.mode, first, second)
				}
			}
		})
	}
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{Path: "/d/z", Name: "z"},
		{Path: "/d/a", Name: "a"},
	}
	Order(entries, internal.SortAlpha)
	if entries[0].Name != "z" {
		t.Error("Order must not reorder the input slice")
	}
}
