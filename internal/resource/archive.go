package resource

import (
	"archive/zip"
	"io"
	"path"
	"strings"
)

// ArchiveLoader backs a ResourceLoader with a zip archive file. It mirrors
// DirLoader's shape but reads entries out of a zip.Reader instead of a
// filesystem; no pack example carries a dedicated non-stdlib archive
// library, so archive/zip is used directly (see DESIGN.md).
type ArchiveLoader struct {
	reader  *zip.ReadCloser
	entries map[string]*zip.File // path -> entry
	paths   map[string]struct{}  // directory-like prefixes
}

// NewArchiveLoader opens the zip file at archivePath and indexes its
// entries and the directory prefixes they imply.
func NewArchiveLoader(archivePath string) (*ArchiveLoader, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]*zip.File)
	paths := map[string]struct{}{"": {}}
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			paths[strings.TrimSuffix(f.Name, "/")] = struct{}{}
			continue
		}
		entries[f.Name] = f
		dir := path.Dir(f.Name)
		for dir != "." && dir != "/" {
			paths[dir] = struct{}{}
			dir = path.Dir(dir)
		}
	}

	return &ArchiveLoader{reader: r, entries: entries, paths: paths}, nil
}

// Close releases the underlying zip file handle.
func (a *ArchiveLoader) Close() error {
	return a.reader.Close()
}

// Paths implements Loader.
func (a *ArchiveLoader) Paths() map[string]struct{} {
	return a.paths
}

// LoadSymbol implements Loader.
func (a *ArchiveLoader) LoadSymbol(name string) (io.ReadCloser, bool) {
	return a.LoadResource(strings.ReplaceAll(name, ".", "/"))
}

// LoadResource implements Loader.
func (a *ArchiveLoader) LoadResource(path string) (io.ReadCloser, bool) {
	f, ok := a.entries[path]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	return rc, true
}

// LoadResources implements Loader. A zip archive only ever holds one
// entry per name, so this returns at most one reader.
func (a *ArchiveLoader) LoadResources(path string) []io.ReadCloser {
	if r, ok := a.LoadResource(path); ok {
		return []io.ReadCloser{r}
	}
	return nil
}
