package inference

import (
	"errors"
	"fmt"
)

// LabelEncoder maps a category to its position in a closed vocabulary.
type LabelEncoder struct {
	Classes []string `json:"classes"`
	index   map[string]int
}

// NewLabelEncoder builds an encoder over classes. Codes are slice positions.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		index[c] = i
	}
	return &LabelEncoder{Classes: classes, index: index}, nil
}

// LoadLabelEncoder reads an encoder exported as {"classes": [...]}.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	var raw LabelEncoder
	if err := loadJSON(path, &raw); err != nil {
		return nil, err
	}
	enc, err := NewLabelEncoder(raw.Classes)
	if err != nil {
		return nil, fmt.Errorf("label encoder %s: %w", path, err)
	}
	return enc, nil
}

// Encode returns the code for value. There is no fallback for unseen values.
func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	return code, nil
}
