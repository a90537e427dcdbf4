// Package classifier runs exported scikit-learn style TF-IDF + classifier
// artifacts to turn cleaned résumé text into a job category.
package classifier

import "fmt"

// Pipeline is stateless and safe for concurrent use.
type Pipeline struct {
	artifacts *Artifacts
}

func NewPipeline(artifacts *Artifacts) *Pipeline {
	return &Pipeline{artifacts: artifacts}
}

// Predict classifies already-normalized text. Empty text is not special
// cased: whatever the model makes of a zero vector is returned.
func (p *Pipeline) Predict(cleanText string) (string, error) {
	features := p.artifacts.Vectorizer.Transform(cleanText).Dense()

	class, err := p.artifacts.Model.Predict(features)
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	label, err := p.artifacts.Labels.Decode(class)
	if err != nil {
		return "", fmt.Errorf("decode label: %w", err)
	}
	return label, nil
}

// Categories lists every label the pipeline can return.
func (p *Pipeline) Categories() []string {
	return p.artifacts.Labels.Classes()
}
