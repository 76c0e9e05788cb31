package oracle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script into a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.sh")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestInvoke_CapturesOrderedLines(t *testing.T) {
	exe := writeScript(t, `printf '1.5\n-2\n0.25\n'`)

	lines, err := Invoke(context.Background(), exe, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5", "-2", "0.25"}, lines)
}

func TestInvoke_PassesArgsAndStdin(t *testing.T) {
	exe := writeScript(t, `echo "$1 $2"; cat`)

	lines, err := Invoke(context.Background(), exe, []string{"autocorr", "4"}, []byte("0.5\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "autocorr 4", lines[0])
	assert.Equal(t, "0.5", lines[1])
}

func TestInvoke_NonZeroExitCarriesStderr(t *testing.T) {
	exe := writeScript(t, `echo "partial" ; echo "bad coefficients" >&2; exit 3`)

	_, err := Invoke(context.Background(), exe, nil, nil)
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Contains(t, execErr.Stderr, "bad coefficients")
	assert.Contains(t, execErr.Error(), "exit status 3")
}

func TestInvoke_MissingBinaryIsUnavailable(t *testing.T) {
	_, err := Invoke(context.Background(), "/no/such/tool", nil, nil)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"trailing_newline", "a\nb\n", []string{"a", "b"}},
		{"trailing_whitespace", "a\nb  \n\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"empty", "", nil},
		{"only_whitespace", " \n\t\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestProbe(t *testing.T) {
	t.Run("executable_passes", func(t *testing.T) {
		exe := writeScript(t, "exit 0")
		assert.NoError(t, Probe(exe))
	})

	t.Run("missing_is_unavailable", func(t *testing.T) {
		err := Probe(filepath.Join(t.TempDir(), "absent"))
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("empty_path_is_unavailable", func(t *testing.T) {
		assert.True(t, errors.Is(Probe(""), ErrUnavailable))
	})

	t.Run("non_executable_is_unavailable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.txt")
		require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))
		assert.True(t, errors.Is(Probe(path), ErrUnavailable))
	})

	t.Run("directory_is_unavailable", func(t *testing.T) {
		assert.True(t, errors.Is(Probe(t.TempDir()), ErrUnavailable))
	})
}

func TestArtifactPath_Unique(t *testing.T) {
	dir := t.TempDir()
	a := ArtifactPath(dir, "czt", "txt")
	b := ArtifactPath(dir, "czt", "txt")

	assert.NotEqual(t, a, b, "artifact names must be invocation-unique")
	assert.True(t, strings.HasPrefix(filepath.Base(a), "vv_czt_"))
	assert.True(t, strings.HasSuffix(a, ".txt"))
	assert.Equal(t, dir, filepath.Dir(a))
}

func TestRemoveArtifact_BestEffort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	RemoveArtifact(path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing a non-existent artifact must not panic or complain.
	RemoveArtifact(path)
}
