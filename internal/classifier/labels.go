package classifier

import (
	"encoding/json"
	"fmt"
)

// LabelEncoder decodes an encoded class back into its category name.
type LabelEncoder struct {
	classes []string
}

type labelFile struct {
	Classes []string `json:"classes"`
}

func decodeLabels(data []byte) (*LabelEncoder, error) {
	var f labelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Classes) == 0 {
		return nil, fmt.Errorf("label encoder has no classes")
	}
	return &LabelEncoder{classes: f.Classes}, nil
}

func (l *LabelEncoder) Decode(class int) (string, error) {
	if class < 0 || class >= len(l.classes) {
		return "", fmt.Errorf("class %d is not in the label encoder's %d classes", class, len(l.classes))
	}
	return l.classes[class], nil
}

// Classes returns a copy of the known category names in encoded order.
func (l *LabelEncoder) Classes() []string {
	return append([]string(nil), l.classes...)
}
