package descriptor_test

import (
	"strings"
	"testing"

	"github.com/aloubyansky/jboss-modules/internal/descriptor"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/resource"
	"github.com/aloubyansky/jboss-modules/testutil"
)

func memOpener(files map[string]string) descriptor.RootOpener {
	return func(path string) (resource.Loader, error) {
		return testutil.NewMemLoader(files), nil
	}
}

const basicXML = `<module name="org.example:a">
  <dependencies>
    <module name="org.example:b" export="true"/>
    <module name="org.example:c" optional="true">
      <imports>
        <include path="a/pub"/>
        <exclude path="a/**"/>
      </imports>
    </module>
  </dependencies>
  <resources>
    <resource-root path="."/>
  </resources>
  <main-class name="org.example.a.Main"/>
</module>`

func TestParseBasic(t *testing.T) {
	spec, err := descriptor.Parse(strings.NewReader(basicXML), modident.New("org.example", "a"), memOpener(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if spec.MainSymbol != "org.example.a.Main" {
		t.Errorf("MainSymbol = %q", spec.MainSymbol)
	}
	// 2 explicit module deps + 1 implicit resource-root local dep.
	if len(spec.Dependencies) != 3 {
		t.Fatalf("got %d dependencies, want 3", len(spec.Dependencies))
	}
	if spec.Dependencies[0].Module == nil || spec.Dependencies[0].Module.Identifier.Artifact != "b" {
		t.Errorf("dependency 0 should target b")
	}
	if !spec.Dependencies[0].ExportFilter.Match("anything") {
		t.Errorf("export=\"true\" with no <exports> should accept-all")
	}
	if spec.Dependencies[1].Module == nil || !spec.Dependencies[1].Module.Optional {
		t.Errorf("dependency 1 should be optional")
	}
	if !spec.Dependencies[1].ImportFilter.Match("a/pub") {
		t.Errorf("include a/pub should be importable")
	}
	if spec.Dependencies[1].ImportFilter.Match("a/priv") {
		t.Errorf("exclude a/** (after include a/pub) should block a/priv")
	}
	if spec.Dependencies[2].Local == nil {
		t.Errorf("dependency 2 should be the implicit resource-root local dependency")
	}
}

func TestParseIdentifierMismatch(t *testing.T) {
	_, err := descriptor.Parse(strings.NewReader(basicXML), modident.New("org.example", "wrong"), memOpener(nil))
	if err == nil {
		t.Fatal("expected an identifier mismatch error")
	}
}

func TestParseMissingNameAttribute(t *testing.T) {
	const xml = `<module><dependencies/></module>`
	_, err := descriptor.Parse(strings.NewReader(xml), modident.New("g", "a"), memOpener(nil))
	if err == nil {
		t.Fatal("expected a missing-attribute error")
	}
}

func TestParseDuplicateDependency(t *testing.T) {
	const xml = `<module name="g:a">
	  <dependencies>
	    <module name="g:b"/>
	    <module name="g:b"/>
	  </dependencies>
	</module>`
	_, err := descriptor.Parse(strings.NewReader(xml), modident.New("g", "a"), memOpener(nil))
	if err == nil {
		t.Fatal("expected a duplicate-dependency error")
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, err := descriptor.Parse(strings.NewReader("<module name=\"g:a\">"), modident.New("g", "a"), memOpener(nil))
	if err == nil {
		t.Fatal("expected a malformed-XML error")
	}
}
