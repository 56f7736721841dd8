// internal/writer/writer_test.go
package writer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/tic-settings/internal/batch"
	"github.com/tamzrod/tic-settings/internal/config"
	"github.com/tamzrod/tic-settings/internal/fix"
)

// ---- fake filesystem ----

type fakeFiles struct {
	written map[string]string
	fail    error
}

func (f *fakeFiles) WriteFile(path string, data []byte) error {
	if f.fail != nil {
		return f.fail
	}
	if f.written == nil {
		f.written = map[string]string{}
	}
	f.written[path] = string(data)
	return nil
}

// ---- helpers ----

func fixed(t *testing.T, path, text string) batch.Result {
	t.Helper()
	res, err := fix.FixText([]byte(text), fix.Options{})
	require.NoError(t, err)
	return batch.Result{Path: path, Fixed: res}
}

// ---- tests ----

func TestWriter_StdoutWarningsThenText(t *testing.T) {
	var stdout, diag bytes.Buffer
	w := New(Plan{Mode: config.OutputStdout}, &stdout, &diag, &fakeFiles{})

	res := fixed(t, "-", "product: T825\nserial_baud_rate: 101\n")
	require.NoError(t, w.Write(res))

	assert.Equal(t, "Warning: The serial baud rate is too low so it will be changed to 200.\n", diag.String())
	assert.Equal(t, string(res.Fixed.Text), stdout.String())
}

func TestWriter_ReadErrorLine(t *testing.T) {
	var stdout, diag bytes.Buffer
	w := New(FilePlan("-"), &stdout, &diag, &fakeFiles{})

	_, err := fix.FixText([]byte("product: T825\nserial_baud_rate: -11a"), fix.Options{})
	require.Error(t, err)

	require.NoError(t, w.Write(batch.Result{Path: "-", Err: err}))
	assert.Equal(t,
		"Error: There was an error reading the settings file.  Invalid serial_baud_rate value.\n",
		diag.String())
	assert.Empty(t, stdout.String())
}

func TestWriter_FileModes(t *testing.T) {
	res := fixed(t, "in/a.yaml", "product: T249\n")

	tests := []struct {
		name string
		plan Plan
		want string
	}{
		{"file", FilePlan("out.yaml"), "out.yaml"},
		{"inplace", Plan{Mode: config.OutputInPlace}, "in/a.yaml"},
		{"dir", Plan{Mode: config.OutputDir, Dir: "fixed"}, filepath.Join("fixed", "a.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, diag bytes.Buffer
			files := &fakeFiles{}

			require.NoError(t, New(tt.plan, &stdout, &diag, files).Write(res))
			assert.Equal(t, map[string]string{tt.want: string(res.Fixed.Text)}, files.written)
			assert.Empty(t, stdout.String())
			assert.Empty(t, diag.String())
		})
	}
}

func TestWriter_NoneWritesDiagnosticsOnly(t *testing.T) {
	var stdout, diag bytes.Buffer
	files := &fakeFiles{}
	w := New(Plan{Mode: config.OutputNone, Label: true}, &stdout, &diag, files)

	require.NoError(t, w.Write(fixed(t, "a.yaml", "product: T500\nstep_mode: 16\n")))
	assert.Equal(t,
		"a.yaml: Warning: The step mode is invalid so it will be changed to 1 (full step).\n",
		diag.String())
	assert.Empty(t, stdout.String())
	assert.Empty(t, files.written)
}

func TestWriter_FileErrorReturned(t *testing.T) {
	var stdout, diag bytes.Buffer
	w := New(Plan{Mode: config.OutputInPlace}, &stdout, &diag, &fakeFiles{fail: errors.New("read-only")})

	err := w.Write(fixed(t, "a.yaml", "product: T825\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path=a.yaml")
	assert.Contains(t, err.Error(), "read-only")
}

func TestBuildPlan(t *testing.T) {
	plan, err := BuildPlan(config.BatchConfig{Output: config.OutputStdout}, []string{"a.yaml"})
	require.NoError(t, err)
	assert.False(t, plan.Label)

	_, err = BuildPlan(config.BatchConfig{Output: config.OutputStdout}, []string{"a.yaml", "b.yaml"})
	assert.Error(t, err)

	plan, err = BuildPlan(config.BatchConfig{Output: config.OutputDir, Dir: "out"}, []string{"a.yaml", "b.yaml"})
	require.NoError(t, err)
	assert.Equal(t, Plan{Mode: config.OutputDir, Dir: "out", Label: true}, plan)

	_, err = BuildPlan(config.BatchConfig{Output: config.OutputInPlace}, []string{"a.yaml", batch.StdioPath})
	assert.Error(t, err)

	_, err = BuildPlan(config.BatchConfig{Output: config.OutputDir, Dir: "out"}, []string{batch.StdioPath})
	assert.Error(t, err)

	_, err = BuildPlan(config.BatchConfig{Output: config.OutputDir, Dir: "out"}, []string{"a/x.yaml", "b/x.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a/x.yaml and b/x.yaml")

	// in place keeps each file where it is
	_, err = BuildPlan(config.BatchConfig{Output: config.OutputInPlace}, []string{"a/x.yaml", "b/x.yaml"})
	assert.NoError(t, err)

	_, err = BuildPlan(config.BatchConfig{Output: "printer"}, []string{"a.yaml"})
	assert.Error(t, err)

	_, err = BuildPlan(config.BatchConfig{Output: config.OutputNone}, nil)
	assert.Error(t, err)
}

func TestOSFiles_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "a.yaml")
	require.NoError(t, OSFiles{}.WriteFile(path, []byte("product: T825\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "product: T825\n", string(data))
}
