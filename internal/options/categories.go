package options

// Category constants, matching spec §4.4's closed set.
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

// DefaultOptionValueUSD is used when an option has neither a per-generation
// override nor an entry in the configured MSRP catalog (spec §4.4 step 3c,
// design note "MSRP default... is a constant (494). Is this intended or a
// placeholder?" — treated here as intended until a domain owner says
// otherwise, per DESIGN.md's Open Question resolution).
const DefaultOptionValueUSD = 494
