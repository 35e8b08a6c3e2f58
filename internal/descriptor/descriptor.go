// Package descriptor parses the XML module descriptor format spec.md §6
// specifies only at the interface level ("descriptor file format parsing
// is out of scope for the core") into a *modspec.Spec the registry's
// findModule hook can hand back. It is the one internal package that
// reads stdlib encoding/xml directly (the modlink command also uses it,
// only to peek at a descriptor's module name): no example repo in the
// retrieval pack carries a third-party XML library, so stdlib is the
// justified choice here.
//
// Grammar (spec.md §6):
//
//	<module name required [slot]>
//	  <dependencies>
//	    <module name [slot] [export] [optional]>
//	      <imports> <include path/> <exclude path/> </imports>
//	      <exports> <include path/> <exclude path/> </exports>
//	    </module>
//	  </dependencies>
//	  <resources>
//	    <resource-root path [name]>
//	      <exports> ... </exports>
//	    </resource-root>
//	  </resources>
//	  <main-class name/>
//	</module>
package descriptor

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/aloubyansky/jboss-modules/internal/errlist"
	"github.com/aloubyansky/jboss-modules/internal/localloader"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/modspec"
	"github.com/aloubyansky/jboss-modules/internal/pathfilter"
	"github.com/aloubyansky/jboss-modules/internal/resource"
)

// RootOpener opens a <resource-root path="..."> into a concrete
// resource.Loader. The descriptor package never picks a backend itself
// (directory vs. archive) — the caller supplies that policy, keeping
// descriptor's only dependency on the resource package its Loader
// interface.
type RootOpener func(path string) (resource.Loader, error)

type moduleXML struct {
	XMLName      xml.Name         `xml:"module"`
	Name         string           `xml:"name,attr"`
	Slot         string           `xml:"slot,attr"`
	Dependencies *dependenciesXML `xml:"dependencies"`
	Resources    *resourcesXML    `xml:"resources"`
	MainClass    *mainClassXML    `xml:"main-class"`
}

type dependenciesXML struct {
	Modules []moduleDepXML `xml:"module"`
}

type moduleDepXML struct {
	Name     string     `xml:"name,attr"`
	Slot     string     `xml:"slot,attr"`
	Export   bool       `xml:"export,attr"`
	Optional bool       `xml:"optional,attr"`
	Imports  *filterXML `xml:"imports"`
	Exports  *filterXML `xml:"exports"`
}

type resourcesXML struct {
	Roots []resourceRootXML `xml:"resource-root"`
}

type resourceRootXML struct {
	Path    string     `xml:"path,attr"`
	Name    string     `xml:"name,attr"`
	Exports *filterXML `xml:"exports"`
}

type mainClassXML struct {
	Name string `xml:"name,attr"`
}

// filterXML captures an <imports>/<exports> element's <include>/
// <exclude> children in document order — order matters (spec.md §4.1's
// first-match-wins semantics), so this implements xml.Unmarshaler
// directly rather than declaring Includes/Excludes as separate slices.
type filterXML struct {
	rules []pathfilter.Rule
}

func (f *filterXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var path string
			for _, a := range t.Attr {
				if a.Name.Local == "path" {
					path = a.Value
				}
			}
			if path == "" {
				return errlist.Descriptor(errlist.DSC002, fmt.Sprintf("<%s> missing required attribute path", t.Name.Local))
			}
			var filt pathfilter.Filter
			if pathfilter.IsGlob(path) {
				filt = pathfilter.Glob(path)
			} else {
				filt = pathfilter.Literal(path)
			}
			f.rules = append(f.rules, pathfilter.Rule{Filter: filt, Include: t.Name.Local == "include"})
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

func (f *filterXML) toFilter() pathfilter.Filter {
	if f == nil {
		return nil
	}
	return pathfilter.Multiple(f.rules, true)
}

// Parse reads a module descriptor from r and builds a *modspec.Spec.
// expected is the identifier the caller asked for; a descriptor naming a
// different identifier is rejected (DSC001) rather than silently
// accepted under a different name.
func Parse(r io.Reader, expected modident.ID, opener RootOpener) (*modspec.Spec, error) {
	var mx moduleXML
	if err := xml.NewDecoder(r).Decode(&mx); err != nil {
		return nil, errlist.Descriptor(errlist.DSC004, err.Error())
	}

	if mx.Name == "" {
		return nil, errlist.Descriptor(errlist.DSC002, "<module> missing required attribute name")
	}
	id, err := modident.Parse(mx.Name)
	if err != nil {
		return nil, errlist.Descriptor(errlist.DSC002, fmt.Sprintf("<module name=%q>: %v", mx.Name, err))
	}
	if mx.Slot != "" {
		id = modident.NewWithSlot(id.Group, id.Artifact, mx.Slot)
	}
	if !id.Equal(expected) {
		return nil, errlist.Descriptor(errlist.DSC001, fmt.Sprintf("descriptor declares %q, expected %q", id, expected))
	}

	deps, err := parseDependencies(mx.Dependencies)
	if err != nil {
		return nil, err
	}

	roots, rootDeps, err := parseResources(mx.Resources, opener)
	if err != nil {
		return nil, err
	}
	deps = append(deps, rootDeps...)

	mainSymbol := ""
	if mx.MainClass != nil {
		mainSymbol = mx.MainClass.Name
	}

	return modspec.New(id, mainSymbol, roots, deps), nil
}

func parseDependencies(dx *dependenciesXML) ([]modspec.DependencySpec, error) {
	if dx == nil {
		return nil, nil
	}
	seen := make(map[string]bool, len(dx.Modules))
	deps := make([]modspec.DependencySpec, 0, len(dx.Modules))
	for _, mdx := range dx.Modules {
		if mdx.Name == "" {
			return nil, errlist.Descriptor(errlist.DSC002, "<module> dependency missing required attribute name")
		}
		depID, err := modident.Parse(mdx.Name)
		if err != nil {
			return nil, errlist.Descriptor(errlist.DSC002, fmt.Sprintf("dependency <module name=%q>: %v", mdx.Name, err))
		}
		if mdx.Slot != "" {
			depID = modident.NewWithSlot(depID.Group, depID.Artifact, mdx.Slot)
		}
		if seen[depID.String()] {
			return nil, errlist.Descriptor(errlist.DSC003, fmt.Sprintf("duplicate dependency on %q", depID))
		}
		seen[depID.String()] = true

		importFilter := mdx.Imports.toFilter()
		exportFilter := mdx.Exports.toFilter()
		if exportFilter == nil && mdx.Export {
			exportFilter = pathfilter.AcceptAll()
		}
		deps = append(deps, modspec.NewModule(depID, mdx.Optional, importFilter, exportFilter))
	}
	return deps, nil
}

func parseResources(rx *resourcesXML, opener RootOpener) (*localloader.LocalLoader, []modspec.DependencySpec, error) {
	if rx == nil {
		return nil, nil, nil
	}
	backends := make([]resource.Loader, 0, len(rx.Roots))
	deps := make([]modspec.DependencySpec, 0, len(rx.Roots))
	for _, root := range rx.Roots {
		if root.Path == "" {
			return nil, nil, errlist.Descriptor(errlist.DSC002, "<resource-root> missing required attribute path")
		}
		backend, err := opener(root.Path)
		if err != nil {
			return nil, nil, err
		}
		backends = append(backends, backend)

		exportFilter := root.Exports.toFilter()
		if exportFilter == nil {
			exportFilter = pathfilter.AcceptAll()
		}
		deps = append(deps, modspec.NewLocal(localloader.New(backend), pathfilter.AcceptAll(), exportFilter))
	}
	return localloader.New(backends...), deps, nil
}
