package extractors

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var sourcePatterns = []string{
	`https?://(?:www\.)?([a-zA-Z0-9\-]+)\.com`, // cars.com, truecar.com
	`https?://(?:www\.)?([a-zA-Z0-9\-]+)\.net`, // autotempest.net
	`https?://(?:www\.)?([a-zA-Z0-9\-]+)\.org`, // pca.org
	`Source\s*:?\s*([A-Za-z0-9\-\s]+)`,         // Source: Cars.com
	`From\s*:?\s*([A-Za-z0-9\-\s]+)`,           // From: TrueCar
	`Listed\s+on\s+([A-Za-z0-9\-\s]+)`,         // Listed on Carvana
}

var sourcePrefixRe = regexp.MustCompile(`(?i)^(Source|From|Listed\s+on)\s*:?\s*`)

// hostnameFriendlyNames maps common VDP hostnames to a display name, per
// spec §4.3.
var hostnameFriendlyNames = map[string]string{
	"cars.com":         "Cars.com",
	"truecar.com":      "TrueCar",
	"carvana.com":      "Carvana",
	"autotempest.com":  "AutoTempest",
	"autotempest.net":  "AutoTempest",
	"pca.org":          "PCA",
	"porsche.com":      "Porsche",
	"cargurus.com":     "CarGurus",
	"autotrader.com":   "AutoTrader",
	"carsdirect.com":   "CarsDirect",
	"edmunds.com":      "Edmunds",
	"kbb.com":          "KBB",
	"nada.com":         "NADA",
	"hemmings.com":     "Hemmings",
	"bringatrailer.com": "Bring a Trailer",
	"carsandbids.com":  "Cars & Bids",
}

var titleCaser = cases.Title(language.English)

// SourceExtractor resolves a listing's source name from its URL or from
// in-page text mentions, per spec §4.3.
type SourceExtractor struct {
	fe *FieldExtractor[string]
}

// NewSourceExtractor builds the source extractor.
func NewSourceExtractor() *SourceExtractor {
	se := &SourceExtractor{}
	se.fe = newFieldExtractor("source", sourcePatterns, se.process)
	return se
}

func (se *SourceExtractor) process(m []string, raw string, ctx map[string]string) (string, bool) {
	if len(m) < 2 {
		return "", false
	}
	s := cleanSource(m[1])
	if s == "" {
		return "", false
	}
	return s, true
}

func cleanSource(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 1 {
		return ""
	}
	s = sourcePrefixRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if len(s) <= 1 {
		return ""
	}
	return s
}

// ExtractFromURL maps a listing URL's hostname to a friendly source name,
// falling back to the title-cased hostname with "www." stripped.
func (se *SourceExtractor) ExtractFromURL(rawURL string) string {
	if rawURL == "" {
		return "unknown"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}
	hostname := strings.ToLower(parsed.Hostname())

	if name, ok := hostnameFriendlyNames[hostname]; ok {
		return name
	}
	for host, name := range hostnameFriendlyNames {
		if strings.Contains(hostname, host) {
			return name
		}
	}
	return titleCaser.String(strings.TrimPrefix(hostname, "www."))
}

// ExtractFromText runs the text-based source patterns (URL mentions and
// "Source:"/"From:"/"Listed on:" prefixes), returning "unknown" if none
// match.
func (se *SourceExtractor) ExtractFromText(text string) string {
	res := se.fe.Extract(text, nil)
	if res == nil {
		return "unknown"
	}
	return res.Value
}
