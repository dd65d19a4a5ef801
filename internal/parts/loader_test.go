package parts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseCSVSkipsBadRows(t *testing.T) {
	list, err := ParseCSV(strings.NewReader("name,price,socket_type\nRyzen 5 5600,129.99,AM4\nBroken,n/a,AM4\n\"Core i5, boxed\",109.99,LGA 1700\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(list))
	}
	if list[1].Name != "Core i5, boxed" || list[1].Attr("socket_type") != "LGA 1700" {
		t.Fatalf("unexpected part: %+v", list[1])
	}
}

func TestParseCSVRequiresNameAndPrice(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("title,cost\nx,1\n")); err == nil {
		t.Fatalf("expected header error")
	}
}

func TestLoadFSLeavesMissingCategoriesEmpty(t *testing.T) {
	fsys := fstest.MapFS{
		"cat/cpus.csv": &fstest.MapFile{Data: []byte("name,price,socket_type\nRyzen 5 7600,199.99,AM5\n")},
	}
	cat, found, err := LoadFS(fsys, "cat")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if found != 1 {
		t.Fatalf("expected 1 file found, got %d", found)
	}
	if len(cat.Parts(CPUs)) != 1 {
		t.Fatalf("expected 1 cpu")
	}
	if got := cat.Parts(GPUs); len(got) != 0 {
		t.Fatalf("expected no gpus, got %d", len(got))
	}
}

func TestLoadDirFallsBackToSample(t *testing.T) {
	cat, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	for _, c := range AllCategories {
		if len(cat.Parts(c)) == 0 {
			t.Fatalf("sample catalog has no %s", c)
		}
	}
}

func TestLoadDirPrefersDirectoryFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gpus.csv"), []byte("name,price,length\nOnly GPU,100,200\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cat.Size() != 1 {
		t.Fatalf("expected only the directory part, got %d parts", cat.Size())
	}
	if _, ok := cat.Find(GPUs, "Only GPU"); !ok {
		t.Fatalf("expected Only GPU in catalog")
	}
}
