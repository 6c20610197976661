// Package models holds the data types shared across every pipeline stage.
package models

import "time"

// SearchSource is a single configured meta-search results page URL.
type SearchSource struct {
	URL string `json:"url"`
}

// CollectedListing is a candidate listing URL plus the metadata visible on
// the meta-search result card, before the VDP itself has been fetched.
type CollectedListing struct {
	ID                string    `json:"id"`
	SourceURL         string    `json:"sourceUrl"`
	ListingURL        string    `json:"listingUrl"`
	Title             string    `json:"title"`
	CollectionTime    time.Time `json:"collectionTimestamp"`
	ScrapingMethod    string    `json:"scrapingMethod"`
}

// ScrapeStatus is the terminal state of a single VDP scrape.
type ScrapeStatus string

const (
	ScrapeSuccess ScrapeStatus = "success"
	ScrapeFailed  ScrapeStatus = "failed"
	ScrapeError   ScrapeStatus = "error"
)

// Section names used as keys into ScrapedPage.RawSections.
const (
	SectionPageTitle    = "page_title"
	SectionTitle        = "title_section"
	SectionPrice        = "price_section"
	SectionBasic        = "basic_section"
	SectionFeatures     = "features_section"
	SectionSellerNotes  = "seller_notes"
)

// AllSections lists the section keys in the order profiles declare them.
var AllSections = []string{
	SectionPageTitle,
	SectionTitle,
	SectionPrice,
	SectionBasic,
	SectionFeatures,
	SectionSellerNotes,
}

// ScrapedPage is the raw snapshot of a vehicle detail page.
type ScrapedPage struct {
	ID              string            `json:"id"`
	ListingURL      string            `json:"listingUrl"`
	Source          string            `json:"source"` // profile name used
	RawSections     map[string]string `json:"rawSections"`
	RawDOMText      string            `json:"rawDomText,omitempty"`
	RawHTML         string            `json:"rawHtml,omitempty"`
	StructuredData  map[string]any    `json:"structuredData,omitempty"`
	Status          ScrapeStatus      `json:"scrapingStatus"`
	Error           string            `json:"error,omitempty"`
	ScrapingTime    time.Time         `json:"scrapingTimestamp"`
	WaitConditions  []string          `json:"-"` // conditions that were satisfied
	RawHTMLPath     string            `json:"rawHtmlPath,omitempty"`
	RawTextPath     string            `json:"rawTextPath,omitempty"`
}

// ExtractionResult is the outcome of a single field extractor.
type ExtractionResult[T any] struct {
	Value        T       `json:"value"`
	Confidence   float64 `json:"confidence"`
	SourcePattern string `json:"sourcePattern,omitempty"`
	RawMatch     string  `json:"rawMatch,omitempty"`
}

// FieldSet is the fixed set of fields data_quality_score is computed over.
var FieldSet = []string{"year", "price", "mileage", "model", "trim", "exterior", "interior", "source"}

// NormalizedListing is the canonical per-listing record produced by the
// transformation stage.
type NormalizedListing struct {
	ListingURL  string `json:"listingUrl"`
	SourceURL   string `json:"sourceUrl"`
	Source      string `json:"source"`

	Year          *int    `json:"year"`
	Model         string  `json:"model"`
	Trim          string  `json:"trim"`
	ModelTrim     string  `json:"modelTrim"`
	Mileage       *int    `json:"mileage"`
	AskingPrice   *int    `json:"askingPriceUsd"`
	Exterior      string  `json:"exterior"`
	Interior      string  `json:"interior"`
	Transmission  string  `json:"transmission,omitempty"`

	RawText string `json:"rawText"`

	Confidence map[string]float64 `json:"confidence"`

	DataQualityScore float64 `json:"dataQualityScore"`

	Options ListingOptions `json:"options"`

	VIN string `json:"vin,omitempty"`
}

// DetectedOption is one option found in listing text.
type DetectedOption struct {
	ID       string `json:"id"`
	Display  string `json:"display"`
	Category string `json:"category"`
	ValueUSD int    `json:"valueUsd"`
	MSRPUSD  int    `json:"msrpUsd"`
}

// Option categories.
const (
	CategoryPerformance  = "performance"
	CategoryComfort      = "comfort"
	CategoryTechnology   = "technology"
	CategoryExterior     = "exterior"
	CategorySeating      = "seating"
	CategoryConvenience  = "convenience"
	CategoryTransmission = "transmission"
	CategoryOther        = "other"
)

// ListingOptions is the aggregated detector output for one listing.
type ListingOptions struct {
	Detected          []DetectedOption            `json:"detectedOptions"`
	ByCategory        map[string][]DetectedOption `json:"optionsByCategory"`
	TotalValueUSD     int                         `json:"totalOptionsValue"`
	TotalMSRPUSD      int                         `json:"totalOptionsMsrp"`
}

// DealQuality buckets the deal delta per spec §4.3.
type DealQuality string

const (
	DealExcellent      DealQuality = "Excellent"
	DealGood           DealQuality = "Good"
	DealFair           DealQuality = "Fair"
	DealOverpriced     DealQuality = "Overpriced"
	DealVeryOverpriced DealQuality = "Very Overpriced"
	DealUnknown        DealQuality = "Unknown"
)

// ValuedListing is a NormalizedListing plus a computed fair value.
type ValuedListing struct {
	NormalizedListing
	FairValueUSD *int        `json:"fairValueUsd"`
	DealDeltaUSD *int        `json:"dealDeltaUsd"`
	DealQuality  DealQuality `json:"dealQuality"`
}

// RankedListing is a ValuedListing plus its rank in the final ordering.
type RankedListing struct {
	ValuedListing
	CompositeScore float64 `json:"compositeScore"`
	Rank           int     `json:"rank"`
}

// GenerationCatalog is the exported model -> generation -> trim/option
// taxonomy written by the catalog stage.
type GenerationCatalog struct {
	Models []CatalogModel `json:"models"`
}

type CatalogModel struct {
	Name        string             `json:"name"`
	Generations []CatalogGeneration `json:"generations"`
}

type CatalogGeneration struct {
	Key            string          `json:"key"`
	Code           string          `json:"code"`
	YearsMin       int             `json:"yearsMin"`
	YearsMax       int             `json:"yearsMax"`
	Trims          []string        `json:"trims"`
	TrimsDefault   bool            `json:"trimsDefault"`
	Options        []CatalogOption `json:"options"`
	OptionsDefault bool            `json:"optionsDefault"`
}

type CatalogOption struct {
	ID      string `json:"id"`
	Display string `json:"display"`
	MSRP    *int   `json:"msrp,omitempty"`
}

// DeduplicationSummary describes the result of the dedup stage.
type DeduplicationSummary struct {
	OriginalCount    int     `json:"originalCount"`
	FinalCount       int     `json:"finalCount"`
	DuplicatesRemoved int    `json:"duplicatesRemoved"`
	DuplicateRate    float64 `json:"duplicateRate"`
	RetentionRate    float64 `json:"retentionRate"`
}
