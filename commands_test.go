package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/muhammadolammi/resumeclassifier/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runClassify(t *testing.T, args ...string) (string, error) {
	t.Helper()
	paths := fixturePaths()
	t.Setenv("MODEL_PATH", paths.Model)
	t.Setenv("VECTORIZER_PATH", paths.Vectorizer)
	t.Setenv("ENCODER_PATH", paths.Encoder)

	out := new(bytes.Buffer)
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetArgs(append([]string{"classify"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClassifyCommand(t *testing.T) {
	path := writeResume(t, "resume.TXT", "Payroll and recruitment specialist")

	out, err := runClassify(t, path)

	require.NoError(t, err)
	assert.Equal(t, "Resume text successfully extracted.\nPredicted Category: HR\n", out)
}

func TestClassifyCommand_ShowText(t *testing.T) {
	path := writeResume(t, "resume.txt", "machine learning, statistics")

	out, err := runClassify(t, path, "--show-text")

	require.NoError(t, err)
	assert.Contains(t, out, "\nmachine learning, statistics\n")
	assert.Contains(t, out, "Predicted Category: Data Science\n")
}

func TestClassifyCommand_EmptyFile(t *testing.T) {
	path := writeResume(t, "empty.txt", "")

	out, err := runClassify(t, path)

	require.NoError(t, err)
	assert.Equal(t, noReadableTextMessage+"\n", out)
}

func TestClassifyCommand_Unsupported(t *testing.T) {
	path := writeResume(t, "resume.csv", "python")

	_, err := runClassify(t, path)

	assert.True(t, errors.Is(err, extract.ErrUnsupportedFileType))
}

func TestClassifyCommand_RequiresFile(t *testing.T) {
	_, err := runClassify(t)
	assert.Error(t, err)
}

func TestWorkerCommand_RejectsZeroWorkers(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"worker", "--workers", "0"})
	assert.Error(t, cmd.Execute())
}
