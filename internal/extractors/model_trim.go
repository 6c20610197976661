package extractors

import "strings"

var modelTrimPatterns = []string{
	`(Cayman|Boxster|911|Cayenne|Macan|Panamera|Taycan|918|959|944|928|968|924|356|550)\s*(S|R|Turbo|GT3|GT4|GT2|GT2RS|GT3RS|GT4RS|Spyder|Targa|Carrera|GTS|4S|4|2S|2|Black\s+Edition)?`,
	`(Porsche)\s*(Cayman|Boxster|911|Cayenne|Macan|Panamera|Taycan|918|959|944|928|968|924|356|550)\s*(S|R|Turbo|GT3|GT4|GT2|GT2RS|GT3RS|GT4RS|Spyder|Targa|Carrera|GTS|4S|4|2S|2|Black\s+Edition)?`,
	`(\d{4})\s*(Cayman|Boxster|911|Cayenne|Macan|Panamera|Taycan|918|959|944|928|968|924|356|550)\s*(S|R|Turbo|GT3|GT4|GT2|GT2RS|GT3RS|GT4RS|Spyder|Targa|Carrera|GTS|4S|4|2S|2|Black\s+Edition)?`,
}

// ModelTrimExtractor recognizes the model+trim combination of spec §4.3,
// emitting a single combined display string ("Cayman S") with a sibling
// helper to split it back into separate model/trim fields.
type ModelTrimExtractor struct {
	fe *FieldExtractor[string]
}

// NewModelTrimExtractor builds the model+trim extractor.
func NewModelTrimExtractor() *ModelTrimExtractor {
	mte := &ModelTrimExtractor{}
	mte.fe = newFieldExtractor("model_trim", modelTrimPatterns, mte.process)
	return mte
}

func (mte *ModelTrimExtractor) process(m []string, raw string, ctx map[string]string) (string, bool) {
	groups := m[1:]
	var model, trim string
	switch {
	case len(groups) == 3 && isDigits(groups[0]):
		model = orDefault(groups[1], "Unknown")
		trim = orDefault(groups[2], "Base")
	case len(groups) >= 2:
		model = orDefault(groups[0], "Unknown")
		trim = orDefault(groups[1], "Base")
	case len(groups) == 1:
		model = orDefault(groups[0], "Unknown")
		trim = "Base"
	default:
		return "", false
	}

	model = strings.TrimSpace(model)
	trim = strings.TrimSpace(trim)

	// Ignore spurious '2' trim (e.g. from '2d' = 2 door). Treat as Base.
	if trim == "2" {
		trim = "Base"
	}

	if trim == "Base" && (model == "Cayman" || model == "Boxster" || model == "911") {
		return model, true
	}
	if trim != "" && trim != "Base" {
		return model + " " + trim, true
	}
	return model, true
}

// Extract returns the combined model+trim display string.
func (mte *ModelTrimExtractor) Extract(text string) (string, bool) {
	res := mte.fe.Extract(text, nil)
	if res == nil {
		return "", false
	}
	return res.Value, true
}

// ExtractSeparate splits the combined extraction back into model and trim,
// defaulting to ("Unknown", "Base") when nothing is detected.
func (mte *ModelTrimExtractor) ExtractSeparate(text string) (model, trim string) {
	value, ok := mte.Extract(text)
	if !ok || value == "" {
		return "Unknown", "Base"
	}
	if idx := strings.Index(value, " "); idx >= 0 {
		return value[:idx], value[idx+1:]
	}
	return value, "Base"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
