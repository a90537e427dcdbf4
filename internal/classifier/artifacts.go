package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Paths locates the three exported artifacts of one training run.
type Paths struct {
	Model      string
	Vectorizer string
	Encoder    string
}

func DefaultPaths() Paths {
	return Paths{
		Model:      "artifacts/clf.json",
		Vectorizer: "artifacts/tfidf.json",
		Encoder:    "artifacts/encoder.json",
	}
}

// Artifacts are loaded once and only read afterwards. Nothing checks that
// the vectorizer, model and encoder come from the same training run; a
// mismatch shows up as a ShapeError or decode error at predict time.
type Artifacts struct {
	Vectorizer *Vectorizer
	Model      Model
	Labels     *LabelEncoder
}

type ArtifactMissingError struct {
	Kind string
	Path string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

func LoadArtifacts(paths Paths) (*Artifacts, error) {
	modelData, err := readArtifact("model", paths.Model)
	if err != nil {
		return nil, err
	}
	vectorizerData, err := readArtifact("vectorizer", paths.Vectorizer)
	if err != nil {
		return nil, err
	}
	encoderData, err := readArtifact("encoder", paths.Encoder)
	if err != nil {
		return nil, err
	}

	model, err := decodeModel(modelData)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", paths.Model, err)
	}

	var vf vectorizerFile
	if err := json.Unmarshal(vectorizerData, &vf); err != nil {
		return nil, fmt.Errorf("failed to load vectorizer %s: %w", paths.Vectorizer, err)
	}
	vectorizer, err := newVectorizer(vf)
	if err != nil {
		return nil, fmt.Errorf("failed to load vectorizer %s: %w", paths.Vectorizer, err)
	}

	labels, err := decodeLabels(encoderData)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoder %s: %w", paths.Encoder, err)
	}

	return &Artifacts{Vectorizer: vectorizer, Model: model, Labels: labels}, nil
}

func readArtifact(kind, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ArtifactMissingError{Kind: kind, Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s: %w", kind, path, err)
	}
	return data, nil
}
