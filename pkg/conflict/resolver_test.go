package conflict

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
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

func TestResolver_Free(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/report.pdf", "v1")

	res := NewResolver(fs).Resolve("/in/report.pdf", false, "/in/Documents/report.pdf")
	if res.Outcome != Free || res.Path != "/in/Documents/report.pdf" {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestResolver_Duplicate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/report.pdf", "same bytes")
	writeFile(t, fs, "/in/Documents/report.pdf", "same bytes")

	res := NewResolver(fs).Resolve("/in/report.pdf", false, "/in/Documents/report.pdf")
	if res.Outcome != Duplicate {
		t.Errorf("Expected duplicate, got %s", res.Outcome)
	}
}

func TestResolver_RenamedWhenContentDiffers(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/report.pdf", "new bytes")
	writeFile(t, fs, "/in/Documents/report.pdf", "old bytes")
	writeFile(t, fs, "/in/Documents/report (1).pdf", "older bytes")

	res := NewResolver(fs).Resolve("/in/report.pdf", false, "/in/Documents/report.pdf")
	if res.Outcome != Renamed {
		t.Fatalf("Expected renamed, got %s", res.Outcome)
	}
	if res.Path != filepath.FromSlash("/in/Documents/report (2).pdf") {
		t.Errorf("Expected report (2).pdf, got %s", res.Path)
	}
}

func TestResolver_SameSizeDifferentContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/a.txt", "abcd")
	writeFile(t, fs, "/in/Notepads/a.txt", "abce")

	res := NewResolver(fs).Resolve("/in/a.txt", false, "/in/Notepads/a.txt")
	if res.Outcome != Renamed || res.Path != filepath.FromSlash("/in/Notepads/a (1).txt") {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestResolver_UnreadableSourceIsNotDuplicate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/Documents/report.pdf", "bytes")

	// 源文件不存在，无法计算哈希
	res := NewResolver(fs).Resolve("/in/report.pdf", false, "/in/Documents/report.pdf")
	if res.Outcome != Renamed {
		t.Errorf("Expected renamed, got %s", res.Outcome)
	}
}

func TestResolver_DirectoryNeverHashed(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/in/photos", 0755); err != nil {
		t.Fatal(err)
	}
	if err := fs.MkdirAll("/in/Folders/photos", 0755); err != nil {
		t.Fatal(err)
	}

	res := NewResolver(fs).Resolve("/in/photos", true, "/in/Folders/photos")
	if res.Outcome != Renamed || res.Path != filepath.FromSlash("/in/Folders/photos (1)") {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestDisambiguate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/archive.tar.gz", "x")
	writeFile(t, fs, "/d/.env", "x")

	testCases := map[string]string{
		"/d/archive.tar.gz": "/d/archive.tar (1).gz",
		"/d/.env":           "/d/.env (1)",
		"/d/Makefile":       "/d/Makefile (1)",
	}
	for in, want := range testCases {
		if got := Disambiguate(fs, in); got != filepath.FromSlash(want) {
			t.Errorf("Disambiguate(%s) = %s, want %s", in, got, want)
		}
	}
}
