package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func readReport(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	res := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		res[f.Name] = string(data)
	}
	return res
}

func TestReport_Finalize(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(tmpDir, "stored.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	srcDir := filepath.Join(tmpDir, "parts")
	if err := os.MkdirAll(filepath.Join(srcDir, "word"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "word", "document.xml"), []byte("<w:document/>"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	r.Store("final.log", stored)
	r.StoreData("article/result.html", []byte("<html></html>"))
	if err := r.StoreCopy("source", srcDir); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	r.Store("absent.log", filepath.Join(tmpDir, "absent.log"))

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readReport(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["article/result.html"] != "<html></html>" {
		t.Errorf("article/result.html = %q", files["article/result.html"])
	}
	if files["source/word/document.xml"] != "<w:document/>" {
		t.Errorf("source/word/document.xml = %q", files["source/word/document.xml"])
	}
	if _, ok := files["absent.log"]; ok {
		t.Error("absent file must not be archived")
	}

	manifest := strings.Split(strings.TrimSpace(files["MANIFEST"]), "\n")
	if len(manifest) != 4 {
		t.Fatalf("MANIFEST has %d lines, want 4:\n%s", len(manifest), files["MANIFEST"])
	}
	var names []string
	for _, l := range manifest {
		names = append(names, strings.Split(l, "\t")[1])
	}
	if !slices.IsSorted(names) {
		t.Errorf("MANIFEST is not sorted: %v", names)
	}
}

func TestReport_StoreCopyVersioned(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "out.html")
	if err := os.WriteFile(src, []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("out", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if err := r.StoreCopy("out", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if len(r.entries) != 2 {
		t.Errorf("expected two versioned entries, got %d", len(r.entries))
	}
}

func TestReport_StoreDataTwicePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate data entry")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy() on nil report error = %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() with nil file error = %v", err)
	}
}

func TestReport_StoreVersusCopy(t *testing.T) {
	tmpDir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(tmpDir, "article.html")
	if err := os.WriteFile(src, []byte("first"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	r.Store("late", src)
	if err := r.StoreCopy("early", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if err := os.WriteFile(src, []byte("second"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readReport(t, conf.Destination)
	if files["early"] != "first" || files["late"] != "second" {
		t.Errorf("early = %q, late = %q", files["early"], files["late"])
	}
	if !strings.Contains(files["MANIFEST"], "(copy)") {
		t.Errorf("MANIFEST does not mark snapshots:\n%s", files["MANIFEST"])
	}
}
