package main

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aloubyansky/jboss-modules/internal/descriptor"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/modspec"
	"github.com/aloubyansky/jboss-modules/internal/registry"
	"github.com/aloubyansky/jboss-modules/internal/resource"
)

// descriptorIndex maps a module identifier to the descriptor file that
// declares it, built by a one-time scan of one or more directories.
type descriptorIndex struct {
	dirs []string
	byID map[modident.ID]string
}

// scanDescriptors walks each of dirs for *.xml files and peeks each one's
// <module name=.../> attribute, without fully decoding it, to build an
// identifier -> file index cheaply. Directories are scanned in order; a
// module name that appears under more than one directory resolves to the
// first directory that declared it (the --dir root takes precedence over
// a config file's searchRoots).
func scanDescriptors(dirs ...string) (*descriptorIndex, error) {
	idx := &descriptorIndex{dirs: dirs, byID: make(map[modident.ID]string)}
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".xml") {
				return nil
			}
			id, err := peekIdentifier(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if _, exists := idx.byID[id]; !exists {
				idx.byID[id] = path
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func peekIdentifier(path string) (modident.ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return modident.ID{}, err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			return modident.ID{}, fmt.Errorf("no <module> root element: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var name, slot string
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "name":
				name = a.Value
			case "slot":
				slot = a.Value
			}
		}
		if name == "" {
			return modident.ID{}, fmt.Errorf("<module> missing name attribute")
		}
		id, err := modident.Parse(name)
		if err != nil {
			return modident.ID{}, err
		}
		if slot != "" {
			id = modident.NewWithSlot(id.Group, id.Artifact, slot)
		}
		return id, nil
	}
}

// openRoot opens a <resource-root path="..."> relative to baseDir: a
// ".zip"/".jar" suffix selects the archive backend, anything else the
// directory backend.
func openRoot(baseDir string) descriptor.RootOpener {
	return func(path string) (resource.Loader, error) {
		full := filepath.Join(baseDir, path)
		if strings.HasSuffix(path, ".zip") || strings.HasSuffix(path, ".jar") {
			return resource.NewArchiveLoader(full)
		}
		return resource.NewDirLoader(full)
	}
}

// findFunc builds a registry.FindFunc backed by idx, parsing the
// descriptor for id lazily on first request.
func (idx *descriptorIndex) findFunc() registry.FindFunc {
	return func(id modident.ID) (spec *modspec.Spec, found bool, err error) {
		path, ok := idx.byID[id]
		if !ok {
			return nil, false, nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, false, err
		}
		defer f.Close()
		s, err := descriptor.Parse(f, id, openRoot(filepath.Dir(path)))
		if err != nil {
			return nil, false, err
		}
		return s, true, nil
	}
}
