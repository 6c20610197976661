package extractors

// Registry is the static, process-wide set of field extractors (year,
// price, mileage, model+trim, colors, source). It replaces the original's
// importlib directory-scan discovery with compile-time registration, per
// the same static-registration rearchitecture applied to
// internal/options.Registry.
type Registry struct {
	year      *FieldExtractor[int]
	price     *FieldExtractor[int]
	mileage   *FieldExtractor[int]
	modelTrim *ModelTrimExtractor
	colors    *ColorsExtractor
	source    *SourceExtractor
}

var defaultRegistry = buildRegistry()

// Default returns the process-wide extractor registry.
func Default() *Registry { return defaultRegistry }

func buildRegistry() *Registry {
	return &Registry{
		year:      NewYearExtractor(),
		price:     NewPriceExtractor(),
		mileage:   NewMileageExtractor(),
		modelTrim: NewModelTrimExtractor(),
		colors:    NewColorsExtractor(),
		source:    NewSourceExtractor(),
	}
}

// Year returns the year field extractor.
func (r *Registry) Year() *FieldExtractor[int] { return r.year }

// Price returns the price field extractor.
func (r *Registry) Price() *FieldExtractor[int] { return r.price }

// Mileage returns the mileage field extractor.
func (r *Registry) Mileage() *FieldExtractor[int] { return r.mileage }

// ModelTrim returns the model+trim extractor.
func (r *Registry) ModelTrim() *ModelTrimExtractor { return r.modelTrim }

// Colors returns the colors extractor.
func (r *Registry) Colors() *ColorsExtractor { return r.colors }

// Source returns the source extractor.
func (r *Registry) Source() *SourceExtractor { return r.source }
