package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPaths() Paths {
	return Paths{
		Model:      filepath.Join("testdata", "clf.json"),
		Vectorizer: filepath.Join("testdata", "tfidf.json"),
		Encoder:    filepath.Join("testdata", "encoder.json"),
	}
}

func loadTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	artifacts, err := LoadArtifacts(testdataPaths())
	require.NoError(t, err)
	return NewPipeline(artifacts)
}

func TestPipeline_Predict(t *testing.T) {
	p := loadTestPipeline(t)

	tests := []struct {
		text     string
		expected string
	}{
		{"python software engineer with python and software experience", "Python Developer"},
		{"recruitment and payroll specialist", "HR"},
		{"machine learning statistics", "Data Science"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := p.Predict(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPipeline_PredictIsDeterministic(t *testing.T) {
	p := loadTestPipeline(t)
	text := "software engineer python machine learning recruitment"

	first, err := p.Predict(text)
	require.NoError(t, err)
	second, err := p.Predict(text)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPipeline_EmptyTextStillPredicts(t *testing.T) {
	p := loadTestPipeline(t)

	got, err := p.Predict("")
	require.NoError(t, err)
	assert.Contains(t, p.Categories(), got)
}

func TestPipeline_MismatchedArtifacts(t *testing.T) {
	dir := t.TempDir()
	paths := testdataPaths()
	paths.Model = filepath.Join(dir, "clf.json")
	require.NoError(t, os.WriteFile(paths.Model,
		[]byte(`{"kind":"linear_ovr","classes":[0,1,7],"coef":[[1,0],[0,1],[1,1]],"intercept":[0,0,1]}`), 0o644))

	artifacts, err := LoadArtifacts(paths)
	require.NoError(t, err, "cross-consistency is not checked at load")

	_, err = NewPipeline(artifacts).Predict("python")
	var shapeErr *ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestLoadArtifacts_Missing(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		kind   string
		mutate func(*Paths)
	}{
		{"model", func(p *Paths) { p.Model = filepath.Join(dir, "clf.json") }},
		{"vectorizer", func(p *Paths) { p.Vectorizer = filepath.Join(dir, "tfidf.json") }},
		{"encoder", func(p *Paths) { p.Encoder = filepath.Join(dir, "encoder.json") }},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			paths := testdataPaths()
			tt.mutate(&paths)

			_, err := LoadArtifacts(paths)
			var missing *ArtifactMissingError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.kind, missing.Kind)
			assert.Contains(t, err.Error(), filepath.Join(dir, ""))
		})
	}
}

func TestLoadArtifacts_Malformed(t *testing.T) {
	dir := t.TempDir()
	paths := testdataPaths()
	paths.Encoder = filepath.Join(dir, "encoder.json")
	require.NoError(t, os.WriteFile(paths.Encoder, []byte(`{"classes": [`), 0o644))

	_, err := LoadArtifacts(paths)
	require.Error(t, err)
	var missing *ArtifactMissingError
	assert.NotErrorAs(t, err, &missing)
}
