package external

import (
	"github.com/askiada/go-dataflow/pkg/dataflow"
)

// LoadTranslations reads a translation table from a YAML or JSON document
// holding a flat vendor name to canonical name mapping.
func LoadTranslations(path string) (dataflow.Translations, error) {
	var out map[string]string
	if err := decodeFile(path, &out); err != nil {
		return nil, err
	}

	return dataflow.Translations(out), nil
}
