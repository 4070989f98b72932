package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stargirl99/Cable/internal"
)

func TestProvider_MissingFile(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "session.toml"), internal.DefaultSession())

	s, err := p.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if s.SortMode != internal.SortAlpha || s.DestMode != internal.DestHere {
		t.Errorf("Expected base session, got %+v", s)
	}
}

func TestProvider_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.toml")
	p := NewProvider(path, internal.DefaultSession())

	s := internal.DefaultSession()
	s.SortMode = internal.SortCombo
	s.CopyMode = true
	s.DateSubfolders = true
	s.DestMode = internal.DestWhere
	s.DestCustom = `C:\Users\me\Sorted`
	s.ExcludePatterns = []string{"*.part"}

	if err := p.SaveSession(s); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	got, err := p.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if got.SortMode != internal.SortCombo || !got.CopyMode || !got.DateSubfolders ||
		got.DestMode != internal.DestWhere || got.DestCustom != s.DestCustom {
		t.Errorf("unexpected session: %+v", got)
	}
	if len(got.ExcludePatterns) != 1 || got.ExcludePatterns[0] != "*.part" {
		t.Errorf("unexpected excludes: %v", got.ExcludePatterns)
	}
}

func TestProvider_PartialFileOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	content := "run_mode = \"2\"\nsort_mode = \"extension\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	base := internal.DefaultSession()
	base.DateSubfolders = true
	got, err := NewProvider(path, base).LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if got.RunMode != internal.RunWatch || got.SortMode != internal.SortExt {
		t.Errorf("legacy values not normalized: %+v", got)
	}
	if !got.DateSubfolders || len(got.ExcludePatterns) != 3 {
		t.Errorf("base values should be kept: %+v", got)
	}
}

func TestProvider_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("sort_mode = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewProvider(path, internal.DefaultSession()).LoadSession()
	if err == nil {
		t.Error("Expected parse error")
	}
	if s.SortMode != internal.SortAlpha {
		t.Errorf("Expected base session on error, got %+v", s)
	}
}

func TestProvider_ExpandsDestCustom(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path := filepath.Join(t.TempDir(), "session.toml")
	content := "dest_mode = \"where\"\ndest_custom = \"~/Sorted\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewProvider(path, internal.DefaultSession()).LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if want := filepath.Join("/home/tester", "Sorted"); got.DestCustom != want {
		t.Errorf("Expected dest_custom %s, got %s", want, got.DestCustom)
	}
}
