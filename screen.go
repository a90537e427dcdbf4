package main

import (
	"strings"

	"github.com/muhammadolammi/resumeclassifier/internal/classifier"
	"github.com/muhammadolammi/resumeclassifier/internal/extract"
	"github.com/muhammadolammi/resumeclassifier/internal/textclean"
	"github.com/rs/zerolog/log"
)

const noReadableTextMessage = "The uploaded file doesn't contain readable text."

type Screening struct {
	Text     string
	Category string
	// NoText is set when nothing readable was extracted; Category is empty
	// and the model was not consulted.
	NoText  bool
	Warning error
}

// screenResume runs one document through extraction, cleaning and prediction.
// The only errors returned are an unsupported file type and a prediction
// failure caused by mismatched artifacts.
func screenResume(pipeline *classifier.Pipeline, doc extract.Document) (Screening, error) {
	res, err := extract.Extract(doc)
	if err != nil {
		return Screening{}, err
	}
	screening := Screening{Text: res.Text, Warning: res.Warning}
	if res.Warning != nil {
		log.Error().Err(res.Warning).Str("file", doc.Name).Msg("text extraction failed")
	}

	if strings.TrimSpace(res.Text) == "" {
		log.Warn().Str("file", doc.Name).Msg("no readable text in document")
		screening.NoText = true
		return screening, nil
	}

	category, err := pipeline.Predict(textclean.Clean(res.Text))
	if err != nil {
		return screening, err
	}
	screening.Category = category
	return screening, nil
}
