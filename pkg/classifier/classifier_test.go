package classifier

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/scanner"
)

func testRegistry() *Registry {
	return NewRegistry([]Category{
		{ID: "documents", Folder: "Documents", Extensions: []string{".pdf", "DOCX"}},
		{ID: "images", Folder: "Media/Images", Extensions: []string{".jpg", ".png"}},
		{ID: "video", Folder: "Media/Video", Extensions: []string{".mp4"}},
		// .pdf 已被 documents 注册
		{ID: "ebooks", Folder: "Books", Extensions: []string{".pdf", ".epub"}},
		{ID: "documents", Folder: "Ignored", Extensions: []string{".txt"}},
	}, []string{"images", "video"})
}

func TestRegistry_Classify(t *testing.T) {
	r := testRegistry()

	testCases := []struct {
		entry    scanner.Entry
		expected string
	}{
		{scanner.Entry{Name: "a.pdf", Ext: ".pdf"}, "documents"},
		{scanner.Entry{Name: "b.docx", Ext: ".docx"}, "documents"},
		{scanner.Entry{Name: "c.JPG", Ext: ".JPG"}, "images"},
		{scanner.Entry{Name: "d.epub", Ext: ".epub"}, "ebooks"},
		{scanner.Entry{Name: "e.txt", Ext: ".txt"}, internal.MiscCategory},
		{scanner.Entry{Name: "Makefile", Ext: ""}, internal.MiscCategory},
		{scanner.Entry{Name: "f.unknown", Ext: ".unknown"}, internal.MiscCategory},
		{scanner.Entry{Name: "photos.jpg", Ext: ".jpg", IsDir: true}, internal.FoldersCategory},
	}

	for _, tc := range testCases {
		t.Run(tc.entry.Name, func(t *testing.T) {
			got := r.Classify(tc.entry)
			if got != tc.expected {
				t.Errorf("Classify(%s) = %s, want %s", tc.entry.Name, got, tc.expected)
			}
			if again := r.Classify(tc.entry); again != got {
				t.Errorf("Classify is not stable: %s vs %s", got, again)
			}
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := testRegistry()

	if c := r.Lookup("images"); c.Folder != "Media/Images" {
		t.Errorf("Expected Media/Images, got %s", c.Folder)
	}
	if c := r.Lookup(internal.MiscCategory); c.Folder != internal.MiscFolder {
		t.Errorf("Expected Miscellaneous, got %s", c.Folder)
	}
	if c := r.Lookup(internal.FoldersCategory); c.Folder != internal.FoldersFolder {
		t.Errorf("Expected Folders, got %s", c.Folder)
	}
	if c := r.Lookup("documents"); c.Folder != "Documents" {
		t.Errorf("first registration should win, got %s", c.Folder)
	}
	if len(r.Categories()) != 4 {
		t.Errorf("Expected 4 categories, got %d", len(r.Categories()))
	}
}

func TestRegistry_IsDatedAndRootFolders(t *testing.T) {
	r := testRegistry()

	if !r.IsDated("images") || r.IsDated("documents") || r.IsDated(internal.MiscCategory) {
		t.Error("unexpected dated categories")
	}

	roots := r.RootFolders()
	for _, name := range []string{"Documents", "Media", "Books"} {
		if !roots[name] {
			t.Errorf("Expected %s in root folders", name)
		}
	}
	if roots[internal.MiscFolder] {
		t.Error("misc folder must not be part of the registry folder set")
	}
}

func TestNormalizeExt(t *testing.T) {
	testCases := map[string]string{
		"PDF":   ".pdf",
		".Jpg":  ".jpg",
		" .md ": ".md",
		"":      "",
		".":     "",
	}
	for in, want := range testCases {
		if got := NormalizeExt(in); got != want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSniffer_Refine(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := testRegistry()
	s := NewSniffer(fs, r)

	if err := afero.WriteFile(fs, "/in/IMG_0001", []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := afero.WriteFile(fs, "/in/notes", []byte("random content"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	img := scanner.NewEntry(fs, "/in/IMG_0001")
	if got := s.Refine(img, r.Classify(img)); got != "images" {
		t.Errorf("Expected images, got %s", got)
	}

	notes := scanner.NewEntry(fs, "/in/notes")
	if got := s.Refine(notes, r.Classify(notes)); got != internal.MiscCategory {
		t.Errorf("Expected misc, got %s", got)
	}

	// 已有分类的文件不做检测
	if got := s.Refine(img, "documents"); got != "documents" {
		t.Errorf("Expected documents to be kept, got %s", got)
	}

	missing := scanner.NewEntry(fs, "/in/missing")
	if got := s.Refine(missing, internal.MiscCategory); got != internal.MiscCategory {
		t.Errorf("Expected misc for unreadable file, got %s", got)
	}
}
