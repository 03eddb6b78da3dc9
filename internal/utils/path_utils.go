package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/funvibe/semcore/internal/config"
)

// IsModuleFile reports whether path has a recognized module extension.
func IsModuleFile(path string) bool {
	for _, ext := range config.ModuleFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ExtractModuleName derives a module name from a file path.
// It takes the base filename and removes any recognized module extension.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	for _, ext := range config.ModuleFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// ExpandModulePaths replaces every directory in paths by the module files
// it directly contains, sorted by name. Files are kept as given.
// A directory without module files is an error.
func ExpandModulePaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && IsModuleFile(e.Name()) {
				found = append(found, filepath.Join(path, e.Name()))
			}
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no module files in %s", path)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
