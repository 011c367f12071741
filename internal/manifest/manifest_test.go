package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stencil/internal/iet"
	"stencil/internal/manifest"
)

const kernelToml = `
[kernel]
name = "foo"
return = "void"

[[dims]]
name = "i"
start = 0
end = 3

[[dims]]
name = "j"
start = 0
end = 5

[[dims]]
name = "k"
start = 0
end = 7

[[dims]]
name = "s"
start = 0
end = 4

[[dims]]
name = "q"
start = 0
end = 4

[[symbols]]
name = "a"
dtype = "float32"
array = true

[[symbols]]
name = "b"
dtype = "float32"
array = true

[[exprs]]
lhs = "a[i]"
rhs = "a[i] + b[i] + 5.0"
reads = ["a[i]", "b[i]"]
loops = ["i", "s"]

[[exprs]]
lhs = "a[i]"
rhs = "-a[i] + b[i]"
reads = ["a[i]", "b[i]"]
loops = ["i", "j", "k"]

[[exprs]]
lhs = "a[i]"
rhs = "4*a[i]*b[i]"
reads = ["a[i]", "b[i]"]
loops = ["i", "j", "k"]

[[exprs]]
lhs = "a[i]"
rhs = "8.0*a[i] + 6.0/b[i]"
reads = ["a[i]", "b[i]"]
loops = ["i", "q"]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kernel.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestBuildNonTrivialNest(t *testing.T) {
	m, err := manifest.Load(writeManifest(t, kernelToml))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	kernel, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got := iet.PrintAST(kernel)
	want := `<Callable foo>
  <Iteration i::i::(0, 3, 1)::(0, 0)>
    <Iteration s::s::(0, 4, 1)::(0, 0)>
      <Expression a[i] = a[i] + b[i] + 5.0>
    <Iteration j::j::(0, 5, 1)::(0, 0)>
      <Iteration k::k::(0, 7, 1)::(0, 0)>
        <Expression a[i] = -a[i] + b[i]>
        <Expression a[i] = 4*a[i]*b[i]>
    <Iteration q::q::(0, 4, 1)::(0, 0)>
      <Expression a[i] = 8.0*a[i] + 6.0/b[i]>`
	if got != want {
		t.Errorf("unexpected projection:\n%s\nwant:\n%s", got, want)
	}

	sections := iet.FindSections(kernel.Body)
	if sections.Len() != 3 {
		t.Errorf("expected 3 sections, got %d", sections.Len())
	}
}

func TestBuildSynthesizesParams(t *testing.T) {
	m, err := manifest.Load(writeManifest(t, kernelToml))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	kernel, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []string{"a", "b", "a_size", "b_size"}
	if len(kernel.Params) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(kernel.Params))
	}
	for i, name := range want {
		if kernel.Params[i].Name != name {
			t.Errorf("param %d: expected %s, got %s", i, name, kernel.Params[i].Name)
		}
	}
}

func TestBuildGuardedExpression(t *testing.T) {
	guarded := strings.Replace(kernelToml,
		`loops = ["i", "s"]`,
		"loops = [\"i\", \"s\"]\nguard = \"Eq(Mod(i, 2), 0)\"", 1)
	m, err := manifest.Load(writeManifest(t, guarded))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	kernel, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(iet.PrintAST(kernel), "<If Eq(Mod(i, 2), 0)>") {
		t.Errorf("guard not wrapped in a conditional:\n%s", iet.PrintAST(kernel))
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	bad := kernelToml + "\n[unknown]\nfield = 1\n"
	if _, err := manifest.Load(writeManifest(t, bad)); err == nil {
		t.Errorf("unknown key accepted")
	}
}

func TestBuildRejectsUndeclaredSymbol(t *testing.T) {
	bad := strings.Replace(kernelToml, `lhs = "a[i]"`, `lhs = "c[i]"`, 1)
	m, err := manifest.Load(writeManifest(t, bad))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := m.Build(); err == nil {
		t.Errorf("undeclared symbol accepted")
	}
}

func TestBuildRejectsUnknownLoopDimension(t *testing.T) {
	bad := strings.Replace(kernelToml, `loops = ["i", "q"]`, `loops = ["i", "z"]`, 1)
	m, err := manifest.Load(writeManifest(t, bad))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := m.Build(); err == nil {
		t.Errorf("unknown loop dimension accepted")
	}
}

func TestLoadRejectsBadBounds(t *testing.T) {
	bad := strings.Replace(kernelToml, "start = 0\nend = 3", "start = 5\nend = 3", 1)
	m, err := manifest.Load(writeManifest(t, bad))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := m.Build(); err == nil {
		t.Errorf("inverted bounds accepted")
	}
}

func TestBuildDerivedDimension(t *testing.T) {
	derived := strings.Replace(kernelToml,
		"[[dims]]\nname = \"i\"\nstart = 0\nend = 3",
		"[[dims]]\nname = \"time\"\nstart = 0\nend = 9\n\n[[dims]]\nname = \"i\"\nparent = \"time\"\nstart = 0\nend = 3", 1)
	m, err := manifest.Load(writeManifest(t, derived))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	kernel, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(iet.PrintAST(kernel), "<Iteration i::time::(0, 3, 1)::(0, 0)>") {
		t.Errorf("derived dimension should print its root name:\n%s", iet.PrintAST(kernel))
	}
}
