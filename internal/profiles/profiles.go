// Package profiles implements the per-site scraping profiles of spec §4.2:
// a named set of CSS selectors (tried left-to-right) per VDP section, plus
// the wait conditions the scraper blocks on before capturing a page.
package profiles

import (
	"strings"

	"github.com/rkaplan/x987scout/internal/models"
)

// Profile is one site's scraping configuration.
type Profile struct {
	Name           string
	Domain         string
	Selectors      map[string][]string
	WaitConditions []string
}

// Selector returns the comma-separated selector list for a section, tried
// left-to-right by the scraper, or nil if the section isn't configured.
func (p *Profile) Selector(section string) []string {
	return p.Selectors[section]
}

// WaitSelector returns the primary selector the scraper waits on before
// considering the page loaded.
func (p *Profile) WaitSelector() string {
	if len(p.WaitConditions) == 0 {
		return ""
	}
	return p.WaitConditions[0]
}

func selectors(csv ...string) []string {
	if len(csv) == 0 {
		return nil
	}
	return csv
}

func split(spec string) []string {
	parts := strings.Split(spec, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var carsComProfile = &Profile{
	Name:   "Cars.com",
	Domain: "cars.com",
	Selectors: map[string][]string{
		models.SectionPageTitle:   split("head title"),
		models.SectionTitle:       split(".title-section"),
		models.SectionPrice:       split(".price-section, .primary-price, [data-qa='primary-price'], .price-display, .vehicle-price"),
		models.SectionBasic:       split(".basics-section"),
		models.SectionFeatures:    split(".features-section"),
		models.SectionSellerNotes: split(".seller-notes"),
	},
	WaitConditions: selectors(".title-section", ".basics-section"),
}

var trueCarProfile = &Profile{
	Name:   "TrueCar",
	Domain: "truecar.com",
	Selectors: map[string][]string{
		models.SectionPageTitle: split("head title"),
		models.SectionTitle:     split("main h1, [role='main'] h1, h1.vehicle-title, [data-test*='Header'] h1"),
		models.SectionPrice:     split("main [data-test*='Price'], [role='main'] [data-test*='Price'], main .price-display, [role='main'] .price-display, main [class*='price']:not([class*='similar']):not([class*='related'])"),
		models.SectionBasic:     split("main .vehicle-overview, [role='main'] .vehicle-overview, main [data-test*='Overview'], [role='main'] [data-test*='Overview'], main .vdp-fact-list, [role='main'] [class*='facts']"),
		models.SectionFeatures:  split("main [data-test*='Features'], [role='main'] [data-test*='Features'], main .features, [role='main'] .features, main [class*='feature-list']"),
		models.SectionSellerNotes: split(
			"main .seller-notes, [role='main'] .seller-notes, main .vehicle-highlights, [role='main'] .vehicle-highlights, main [data-test*='Highlights']",
		),
	},
	WaitConditions: selectors(
		"main h1, [role='main'] h1, h1.vehicle-title",
		"main [data-test*='Price'], [role='main'] [data-test*='Price'], .price-display",
	),
}

var carvanaProfile = &Profile{
	Name:   "Carvana",
	Domain: "carvana.com",
	Selectors: map[string][]string{
		models.SectionPageTitle: split("head title"),
		models.SectionTitle:     split("main h1, [role='main'] h1, main [data-qa*='title'], main [data-test*='Title'], .vehicle-title"),
		models.SectionPrice:     split("main .price, [role='main'] .price, main [data-qa*='price'], [data-test*='Price'], [class*='price-display']"),
		models.SectionBasic: split(
			"main section:has(h2:has-text('Details')), main section:has(h3:has-text('Details')), main .vehicle-details, [role='main'] .vehicle-details, main .specs, [role='main'] .specs, main [data-test*='Details'], [role='main'] [data-test*='Details'], main [class*='overview']",
		),
		models.SectionFeatures: split(
			"main section:has(h2:has-text('Features')), main section:has(h3:has-text('Features')), main .features, [role='main'] .features, main [data-test*='Features'], [role='main'] [data-test*='Features'], main [class*='feature-list']",
		),
		models.SectionSellerNotes: split(
			"main section:has(h2:has-text('Description')), main section:has(h3:has-text('Description')), main .seller-notes, [role='main'] .seller-notes, main .vehicle-description, [role='main'] .vehicle-description, [data-test*='Description']",
		),
	},
	WaitConditions: selectors(
		"main h1, [role='main'] h1, .vehicle-title",
		"main .price, [role='main'] .price, [data-test*='Price']",
	),
}

var ebayProfile = &Profile{
	Name:   "eBay",
	Domain: "ebay.com",
	Selectors: map[string][]string{
		models.SectionPageTitle: split("head title"),
		models.SectionTitle: split(
			"[role='main'] #CenterPanel h1#itemTitle, [role='main'] h1.x-item-title__mainTitle, [role='main'] main h1#itemTitle",
		),
		models.SectionPrice: split(
			"[role='main'] #CenterPanel #prcIsum, [role='main'] #CenterPanel #mm-saleDscPrc, [role='main'] span[itemprop='price'], [role='main'] .x-price-primary, [role='main'] [data-testid*='x-price-primary']",
		),
		models.SectionBasic: split(
			"[role='main'] #CenterPanel .itemAttr, [role='main'] div#viTabs, [role='main'] main section:has(h2:has-text('Item specifics')), [role='main'] main section:has(h3:has-text('Item specifics'))",
		),
		models.SectionFeatures: split(
			"[role='main'] main section:has(h2:has-text('Features')), [role='main'] main section:has(h3:has-text('Features')), [role='main'] #viTabs_0_is, [role='main'] .ux-layout-section--features",
		),
		models.SectionSellerNotes: split(
			"[role='main'] main section:has(h2:has-text('Description')), [role='main'] main section:has(h3:has-text('Description')), [role='main'] #viTabs_0_pd, [role='main'] #desc_div, [role='main'] [itemprop='description'], [role='main'] #desc_ifr",
		),
	},
	WaitConditions: selectors(
		"[role='main'] #CenterPanel h1#itemTitle, [role='main'] h1.x-item-title__mainTitle",
		"[role='main'] #CenterPanel #prcIsum, [role='main'] .x-price-primary, [role='main'] span[itemprop='price']",
	),
}

// Registry is the process-wide site profile set, keyed by domain.
type Registry struct {
	byDomain map[string]*Profile
	ordered  []*Profile
	fallback *Profile
}

var defaultRegistry = buildRegistry()

// Default returns the built-in profile registry (cars.com, truecar.com,
// carvana.com, ebay.com), falling back to the cars.com profile for
// unrecognized hosts.
func Default() *Registry { return defaultRegistry }

func buildRegistry() *Registry {
	r := &Registry{byDomain: make(map[string]*Profile)}
	for _, p := range []*Profile{carsComProfile, trueCarProfile, carvanaProfile, ebayProfile} {
		r.byDomain[p.Domain] = p
		r.ordered = append(r.ordered, p)
	}
	r.fallback = carsComProfile
	return r
}

// ForURL returns the profile whose domain appears in url, or the fallback
// (cars.com) profile when no registered domain matches - the unknown-host
// default-profile-inheritance behavior SPEC_FULL supplements from
// original_source/x987-app/x987/config/profiles.py.
func (r *Registry) ForURL(url string) *Profile {
	lower := strings.ToLower(url)
	for _, p := range r.ordered {
		if strings.Contains(lower, p.Domain) {
			return p
		}
	}
	return r.fallback
}

// All returns every registered profile.
func (r *Registry) All() []*Profile { return r.ordered }

// Add registers a new or replacement profile, keyed by domain.
func (r *Registry) Add(p *Profile) {
	if _, exists := r.byDomain[p.Domain]; !exists {
		r.ordered = append(r.ordered, p)
	} else {
		for i, existing := range r.ordered {
			if existing.Domain == p.Domain {
				r.ordered[i] = p
				break
			}
		}
	}
	r.byDomain[p.Domain] = p
}
