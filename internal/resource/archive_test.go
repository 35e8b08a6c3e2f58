package resource

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range entries {
		wf, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := wf.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArchiveLoader(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"p/q/Foo":      "foo-content",
		"org/jboss/Bar": "bar-content",
	})

	loader, err := NewArchiveLoader(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer loader.Close()

	r, ok := loader.LoadResource("p/q/Foo")
	if !ok {
		t.Fatal("expected p/q/Foo")
	}
	data, _ := io.ReadAll(r)
	r.Close()
	if string(data) != "foo-content" {
		t.Errorf("got %q", data)
	}

	if _, ok := loader.LoadResource("p/q/Missing"); ok {
		t.Error("expected p/q/Missing to be absent")
	}

	paths := loader.Paths()
	for _, want := range []string{"p", "p/q", "org", "org/jboss"} {
		if _, ok := paths[want]; !ok {
			t.Errorf("expected directory path %q, got %v", want, paths)
		}
	}
}
