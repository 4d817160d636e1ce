package interpreter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

const execFixtureRoot = "testdata/exec"

type fixtureManifest struct {
	Description string            `yaml:"description"`
	Entry       string            `yaml:"entry"`
	Stdin       string            `yaml:"stdin"`
	Expect      fixtureExpect     `yaml:"expect"`
	Files       map[string]string `yaml:"files"`
}

type fixtureExpect struct {
	Stdout []string      `yaml:"stdout"`
	Result string        `yaml:"result"`
	Error  *fixtureError `yaml:"error"`
}

type fixtureError struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
	Line    *int   `yaml:"line"`
}

func TestExecFixtures(t *testing.T) {
	dirs := collectFixtureDirs(t, execFixtureRoot)
	if len(dirs) == 0 {
		t.Fatalf("no fixtures found under %s", execFixtureRoot)
	}
	for _, dir := range dirs {
		rel, _ := filepath.Rel(execFixtureRoot, dir)
		t.Run(filepath.ToSlash(rel), func(t *testing.T) {
			runExecFixture(t, dir)
		})
	}
}

func collectFixtureDirs(t *testing.T, root string) []string {
	t.Helper()
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == "manifest.yml" {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	sort.Strings(dirs)
	return dirs
}

func readFixtureManifest(t *testing.T, dir string) fixtureManifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "manifest.yml"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest fixtureManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", dir, err)
	}
	if manifest.Entry == "" {
		manifest.Entry = "main.lang"
	}
	return manifest
}

func runExecFixture(t *testing.T, dir string) {
	manifest := readFixtureManifest(t, dir)
	source, err := os.ReadFile(filepath.Join(dir, manifest.Entry))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}

	interp := New()
	var stdout bytes.Buffer
	interp.SetOutput(&stdout)
	interp.SetInput(strings.NewReader(manifest.Stdin))
	interp.SetHost(&fakeHost{files: manifest.Files})

	value, runErr := interp.Run(manifest.Entry, string(source))

	gotLines := splitOutput(stdout.String())
	if !equalLines(gotLines, manifest.Expect.Stdout) {
		t.Fatalf("stdout mismatch\n got: %q\nwant: %q", gotLines, manifest.Expect.Stdout)
	}

	if want := manifest.Expect.Error; want != nil {
		if runErr == nil {
			t.Fatalf("expected %s error, program returned %s", want.Kind, runtime.Repr(value))
		}
		var diag *diagnostics.Error
		if !errors.As(runErr, &diag) {
			t.Fatalf("error %T is not a diagnostic", runErr)
		}
		if diag.Kind.String() != want.Kind {
			t.Fatalf("error kind = %s, want %s\n%s", diag.Kind, want.Kind, diag.Render())
		}
		if want.Message != "" && diag.Message != want.Message {
			t.Fatalf("error message = %q, want %q", diag.Message, want.Message)
		}
		if want.Line != nil && diag.Start.Line+1 != *want.Line {
			t.Fatalf("error line = %d, want %d", diag.Start.Line+1, *want.Line)
		}
		return
	}

	if runErr != nil {
		var diag *diagnostics.Error
		if errors.As(runErr, &diag) {
			t.Fatalf("unexpected error:\n%s", diag.Render())
		}
		t.Fatalf("unexpected error: %v", runErr)
	}
	if manifest.Expect.Result != "" {
		list, ok := value.(runtime.ListValue)
		if !ok || list.Len() == 0 {
			t.Fatalf("program value %s has no final statement", runtime.Repr(value))
		}
		if got := runtime.Repr(list.Elements()[list.Len()-1]); got != manifest.Expect.Result {
			t.Fatalf("result = %s, want %s", got, manifest.Expect.Result)
		}
	}
}

func splitOutput(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func equalLines(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for idx := range got {
		if got[idx] != want[idx] {
			return false
		}
	}
	return true
}
