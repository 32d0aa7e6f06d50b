// Package snapshot_test provides golden snapshot tests for the preprocessor.
//
// For each shader in testdata/in/, the test runs the full preprocessing
// pipeline with testdata/include/ on the search path and compares the
// condensed output to a golden file stored in testdata/golden/.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glslpp"
)

// TestSnapshots preprocesses every input shader and compares each result
// with its golden file.
func TestSnapshots(t *testing.T) {
	names := loadInputNames(t, filepath.Join("testdata", "in"))
	if len(names) == 0 {
		t.Fatal("no input shaders found in testdata/in/")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			proc := glslpp.NewProcessor(glslpp.Options{
				IncludeDirs:         []string{filepath.Join("testdata", "include")},
				AllowMissingVersion: glslpp.KindFromPath(name) == glslpp.KindWGSL,
			})

			source, err := proc.ProcessUnit(filepath.Join("testdata", "in", name))
			if err != nil {
				t.Fatalf("preprocess %s: %v", name, err)
			}

			compareGolden(t, filepath.Join("testdata", "golden", name+".golden"), source)
		})
	}
}

// loadInputNames lists the shader file names under dir in deterministic order.
func loadInputNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual+"\n"), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.", path)
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	// Normalize line endings and the final newline so goldens survive
	// editors and Windows checkouts.
	expectedStr := normalize(string(expected))
	actualStr := normalize(actual)

	if diff := cmp.Diff(expectedStr, actualStr); diff != "" {
		t.Errorf("output differs from golden %s (-want +got):\n%s", path, diff)
	}
}

func normalize(s string) string {
	return strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
