package units

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtension is acorn's one source file extension (spec.md's
// opening line: "source extension `.acorn`"). Unlike the teacher's
// DWScript, which also accepted legacy `.pas` files, acorn units only
// ever exist as `.acorn` files.
const sourceExtension = ".acorn"

// FindUnit locates name's source file among searchPaths, trying an
// exact-case match first and falling back to a case-insensitive
// directory scan (acorn unit names are case-insensitive, spec §5).
// A nil or empty searchPaths searches no directory at all; the
// current-directory default for a nil slice is applied by
// NewUnitRegistry, not here.
func FindUnit(name string, searchPaths []string) (string, error) {
	for _, dir := range searchPaths {
		exact := filepath.Join(dir, name+sourceExtension)
		if fileExists(exact) {
			return exact, nil
		}
		if found, ok := findCaseInsensitive(dir, name); ok {
			return found, nil
		}
	}
	return "", fmt.Errorf("unit %q not found in search paths %v", name, searchPaths)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func findCaseInsensitive(dir, name string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	target := strings.ToLower(name + sourceExtension)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(entry.Name()) == target {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}
