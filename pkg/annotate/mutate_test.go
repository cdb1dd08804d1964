package annotate

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const kubernetesSchema = "https://json.schemastore.org/kubernetes"

func TestEnsureSeparator(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		changed  bool
	}{
		{
			name:     "missing",
			content:  "kind: Secret\n",
			expected: "---\nkind: Secret\n",
			changed:  true,
		},
		{
			name:     "present",
			content:  "---\nkind: Secret\n",
			expected: "---\nkind: Secret\n",
		},
		{
			name:     "present after blank lines",
			content:  "\n\n---\nkind: Secret\n",
			expected: "\n\n---\nkind: Secret\n",
		},
		{
			name:     "empty file",
			content:  "",
			expected: "---\n",
			changed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, changed := EnsureSeparator([]byte(tt.content))
			require.Equal(t, tt.expected, string(content))
			require.Equal(t, tt.changed, changed)
		})
	}
}

func TestInsertAnnotation(t *testing.T) {
	annotation := Annotation(kubernetesSchema)

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "without separator",
			content:  "kind: Deployment\napiVersion: apps/v1\n",
			expected: "---\n" + annotation + "\n\nkind: Deployment\napiVersion: apps/v1\n",
		},
		{
			name:     "with separator",
			content:  "---\nkind: Deployment\napiVersion: apps/v1\n",
			expected: "---\n" + annotation + "\n\nkind: Deployment\napiVersion: apps/v1\n",
		},
		{
			name:     "with blank lines before separator",
			content:  "\n\n---\nkind: Deployment\n",
			expected: "---\n" + annotation + "\n\nkind: Deployment\n",
		},
		{
			name:     "separator line kept verbatim",
			content:  "---\r\nkind: Deployment\r\n",
			expected: "---\r\n" + annotation + "\n\nkind: Deployment\r\n",
		},
		{
			name:     "comment before separator",
			content:  "# header\n---\nkind: Deployment\n",
			expected: "---\n" + annotation + "\n\n# header\n---\nkind: Deployment\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, string(InsertAnnotation([]byte(tt.content), kubernetesSchema)))
		})
	}
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "apps/secret.yaml", []byte("kind: Secret\n"), 0640))

	err := WriteFile(fs, "apps/secret.yaml", []byte("---\nkind: Secret\n"))
	require.Nil(t, err)

	b, err := afero.ReadFile(fs, "apps/secret.yaml")
	require.Nil(t, err)
	require.Equal(t, "---\nkind: Secret\n", string(b))

	info, err := fs.Stat("apps/secret.yaml")
	require.Nil(t, err)
	require.Equal(t, os.FileMode(0640), info.Mode().Perm())

	// No temporary files are left behind
	entries, err := afero.ReadDir(fs, "apps")
	require.Nil(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(base, "secret.yaml", []byte("kind: Secret\n"), 0644))

	err := WriteFile(afero.NewReadOnlyFs(base), "secret.yaml", []byte("---\nkind: Secret\n"))
	require.NotNil(t, err)

	b, err := afero.ReadFile(base, "secret.yaml")
	require.Nil(t, err)
	require.Equal(t, "kind: Secret\n", string(b))
}

func TestWriteFileMissing(t *testing.T) {
	err := WriteFile(afero.NewMemMapFs(), "missing.yaml", []byte("---\n"))
	require.NotNil(t, err)
}
