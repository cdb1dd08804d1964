package annotate

import (
	"path/filepath"
	"strings"

	"github.com/dippynark/kschema/pkg/classify"
	"github.com/dippynark/kschema/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const annotationPrefix = "# " + classify.AnnotationMarker + ": $schema="

// Annotation returns the comment line pointing yaml-language-server at url
func Annotation(url string) string {
	return annotationPrefix + url
}

// EnsureSeparator prepends a document separator unless content already starts
// with one. The returned bool reports whether content changed.
func EnsureSeparator(content []byte) ([]byte, bool) {
	if classify.StartsWithSeparator(content) {
		return content, false
	}
	return append([]byte(classify.Separator+"\n"), content...), true
}

// InsertAnnotation adds the schema annotation and a blank line directly after
// the leading document separator, adding the separator first if it is
// missing. Blank lines in front of an existing separator are dropped.
func InsertAnnotation(content []byte, url string) []byte {
	annotation := Annotation(url)

	lines := utils.SplitLines(string(content))
	i := utils.FirstNonBlankLine(lines)
	if i != -1 && strings.TrimSpace(lines[i]) == classify.Separator {
		newLines := make([]string, 0, len(lines)+2)
		newLines = append(newLines, lines[i], annotation, "")
		newLines = append(newLines, lines[i+1:]...)
		return []byte(strings.Join(newLines, "\n"))
	}

	return []byte(classify.Separator + "\n" + annotation + "\n\n" + string(content))
}

// WriteFile replaces the contents of path by writing a temporary file in the
// same directory and renaming it into place. The file mode is preserved.
func WriteFile(fs afero.Fs, path string, content []byte) error {
	info, err := fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}

	f, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file for %s", path)
	}
	tempFile := f.Name()

	_, err = f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = fs.Chmod(tempFile, info.Mode().Perm())
	}
	if err == nil {
		err = fs.Rename(tempFile, path)
	}
	if err != nil {
		_ = fs.Remove(tempFile)
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return nil
}
