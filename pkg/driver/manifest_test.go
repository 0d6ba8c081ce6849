package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func fixturesRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join("..", "..", "fixtures")
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("fixtures directory missing: %v", err)
	}
	return root
}

func TestFixtureConformance(t *testing.T) {
	dirs, err := DiscoverFixtures(fixturesRoot(t))
	if err != nil {
		t.Fatalf("discover fixtures: %v", err)
	}
	if len(dirs) == 0 {
		t.Fatalf("no fixtures discovered")
	}
	for _, dir := range dirs {
		t.Run(filepath.Base(dir), func(t *testing.T) {
			if err := RunFixture(dir); err != nil {
				t.Fatalf("%v", err)
			}
		})
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.yml")
	data := "description: defaults\nexpect:\n  stdout:\n    - \"1\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if manifest.Entry != "main.imp" {
		t.Fatalf("entry should default to main.imp, got %q", manifest.Entry)
	}
}

func TestLoadManifestRejectsConflictingExpectations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.yml")
	data := "expect:\n  stdout:\n    - \"1\"\n  error:\n    code: TypeError\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestRunFixtureReportsWrongOutput(t *testing.T) {
	dir := t.TempDir()
	manifest := "expect:\n  stdout:\n    - \"2\"\n"
	if err := os.WriteFile(filepath.Join(dir, "fixture.yml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.imp"), []byte("print 1;\n"), 0o644); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := RunFixture(dir); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
