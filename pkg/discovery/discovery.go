// Package discovery finds the YAML files to annotate.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const yamlExtension = ".yaml"

// Root is a directory searched recursively for YAML files.
type Root struct {
	Path string
	// Exclude drops any file whose path contains one of these substrings.
	// Excluded files are not reported as candidates at all.
	Exclude []string
}

// DefaultRoots are the repository directories holding cluster manifests and
// node configuration.
var DefaultRoots = []Root{
	{Path: "kubernetes"},
	{Path: filepath.Join("talos", "talos1018"), Exclude: []string{"clusterconfig"}},
}

// DefaultSkipPatterns match files that are found but never annotated.
var DefaultSkipPatterns = []string{
	"clusterconfig/",
	".git/",
	"flux-system/gotk",
	// Helm values files don't need schemas
	"values.yaml",
}

// FindYAMLFiles lists YAML files under root in lexical order
func FindYAMLFiles(fs afero.Fs, root Root) ([]string, error) {
	var files []string

	err := afero.Walk(fs, root.Path,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.Mode().IsRegular() || !strings.HasSuffix(path, yamlExtension) {
				return nil
			}
			if matchesAny(path, root.Exclude) {
				return nil
			}
			files = append(files, path)
			return nil
		})
	if err != nil {
		return files, errors.Wrapf(err, "failed to walk %s", root.Path)
	}

	return files, nil
}

// IsSkipped returns true if the path contains any of the patterns
func IsSkipped(path string, patterns []string) bool {
	return matchesAny(path, patterns)
}

func matchesAny(path string, patterns []string) bool {
	slashPath := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if strings.Contains(slashPath, pattern) {
			return true
		}
	}
	return false
}
