package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"imp/interpreter-go/pkg/diagnostics"
)

// Manifest represents the parsed contents of a fixture.yml: one executable
// program plus its expected observable behaviour.
type Manifest struct {
	Path        string `yaml:"-"`
	Description string `yaml:"description,omitempty"`
	Entry       string `yaml:"entry"`
	Expect      Expect `yaml:"expect"`
}

// Expect describes a fixture's expected outcome: the printed lines on
// success, or the diagnostic raised on failure. The two are exclusive.
type Expect struct {
	Stdout []string     `yaml:"stdout,omitempty"`
	Error  *ErrorExpect `yaml:"error,omitempty"`
}

// ErrorExpect names the diagnostic a fixture must fail with. Message, when
// set, must be contained in the diagnostic's message.
type ErrorExpect struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message,omitempty"`
}

const manifestName = "fixture.yml"

// LoadManifest parses and validates a fixture manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", path)
	}
	manifest.Path = path
	if manifest.Entry == "" {
		manifest.Entry = "main.imp"
	}
	if manifest.Expect.Error != nil && len(manifest.Expect.Stdout) > 0 {
		return nil, errors.Errorf("manifest %s expects both stdout and an error", path)
	}
	if manifest.Expect.Error != nil && manifest.Expect.Error.Code == "" {
		return nil, errors.Errorf("manifest %s error expectation missing code", path)
	}
	return &manifest, nil
}

// RunFixture replays the fixture in dir against a fresh interpreter and
// checks the outcome against the manifest.
func RunFixture(dir string) error {
	manifest, err := LoadManifest(filepath.Join(dir, manifestName))
	if err != nil {
		return err
	}
	source, err := os.ReadFile(filepath.Join(dir, manifest.Entry))
	if err != nil {
		return errors.Wrapf(err, "read fixture entry %s", manifest.Entry)
	}

	var stdout bytes.Buffer
	runErr := Run(string(source), &stdout)

	if expect := manifest.Expect.Error; expect != nil {
		if runErr == nil {
			return errors.Errorf("fixture %s expected %s, ran cleanly", dir, expect.Code)
		}
		if code := diagnostics.CodeOf(runErr); code != expect.Code {
			return errors.Errorf("fixture %s expected %s, got %v", dir, expect.Code, runErr)
		}
		if expect.Message != "" && !strings.Contains(runErr.Error(), expect.Message) {
			return errors.Errorf("fixture %s expected message %q, got %v", dir, expect.Message, runErr)
		}
		return nil
	}

	if runErr != nil {
		return errors.Wrapf(runErr, "fixture %s", dir)
	}
	got := splitLines(stdout.String())
	if len(got) != len(manifest.Expect.Stdout) {
		return errors.Errorf("fixture %s printed %d lines, expected %d:\n%s",
			dir, len(got), len(manifest.Expect.Stdout), stdout.String())
	}
	for idx, want := range manifest.Expect.Stdout {
		if got[idx] != want {
			return errors.Errorf("fixture %s line %d: got %q, expected %q", dir, idx+1, got[idx], want)
		}
	}
	return nil
}

// DiscoverFixtures lists the immediate subdirectories of root that contain a
// fixture manifest, in lexical order.
func DiscoverFixtures(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture root %s", root)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, manifestName)); err == nil {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
