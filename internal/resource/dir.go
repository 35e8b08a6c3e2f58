package resource

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirLoader backs a ResourceLoader with a directory tree on disk. It
// mirrors AILANG's internal/module/loader.go file-reading logic
// (os.ReadFile + filepath.Join over a root), generalized from "resolve
// and read one file" to "enumerate and open any file under a root."
type DirLoader struct {
	root  string
	paths map[string]struct{}
}

// NewDirLoader walks root once at construction and records every
// directory path it finds (relative to root, forward-slash separated).
// Per spec.md §4.2, Paths() answers for directories, not files.
func NewDirLoader(root string) (*DirLoader, error) {
	paths := make(map[string]struct{})
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		paths[toSlash(rel)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DirLoader{root: root, paths: paths}, nil
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, string(filepath.Separator), "/")
}

// Paths implements Loader.
func (d *DirLoader) Paths() map[string]struct{} {
	return d.paths
}

// LoadSymbol implements Loader: a symbol "a.b.c.Foo" resolves to the file
// at "a/b/c/Foo" under root.
func (d *DirLoader) LoadSymbol(name string) (io.ReadCloser, bool) {
	return d.LoadResource(strings.ReplaceAll(name, ".", "/"))
}

// LoadResource implements Loader.
func (d *DirLoader) LoadResource(path string) (io.ReadCloser, bool) {
	f, err := os.Open(filepath.Join(d.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, false
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, false
	}
	return f, true
}

// LoadResources implements Loader. A directory tree only ever holds one
// file per path, so this returns at most one reader.
func (d *DirLoader) LoadResources(path string) []io.ReadCloser {
	if r, ok := d.LoadResource(path); ok {
		return []io.ReadCloser{r}
	}
	return nil
}
