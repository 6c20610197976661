// Package collector enumerates candidate vehicle listing URLs from
// configured meta-search result pages (spec §4.9).
package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/ratelimit"
	"github.com/rkaplan/x987scout/internal/scraper"
)

var log = logging.New("collector")

// ErrUnsupportedHost is returned (wrapped) when a search URL's host has no
// registered collection strategy.
type ErrUnsupportedHost struct {
	URL string
}

func (e *ErrUnsupportedHost) Error() string {
	return fmt.Sprintf("unsupported collection source: %s", e.URL)
}

// Options configures a collection run.
type Options struct {
	Headful     bool
	ChromePath  string
	UserAgent   string
	CapPerSource int
	PoliteDelay time.Duration
}

// sourceStrategy enumerates listing URLs from one search results page.
type sourceStrategy func(ctx context.Context, browserCtx context.Context, searchURL string, opts Options) ([]models.CollectedListing, error)

var strategies = map[string]sourceStrategy{
	"autotempest.com": collectAutoTempest,
}

// Collector runs the enumeration pass across all configured search URLs.
type Collector struct {
	opts  Options
	pacer *ratelimit.Pacer
}

// New builds a Collector; PoliteDelay paces requests between sources.
func New(opts Options) *Collector {
	return &Collector{opts: opts, pacer: ratelimit.NewPacer(opts.PoliteDelay)}
}

// CollectAll runs collection over every search URL, skipping unsupported
// hosts with a warning rather than aborting the whole run, and returns the
// deduplicated union of collected listings.
func (c *Collector) CollectAll(ctx context.Context, searchURLs []string) ([]models.CollectedListing, []error) {
	var all []models.CollectedListing
	var errs []error

	valid := validateURLs(searchURLs)

	browserCtx, cancel, err := scraper.NewBrowserContext(ctx, scraper.BrowserOptions{
		Headful:    c.opts.Headful,
		ChromePath: c.opts.ChromePath,
		UserAgent:  c.opts.UserAgent,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("collection browser unavailable: %w", err))
		return nil, errs
	}
	defer cancel()

	for i, searchURL := range valid {
		listings, err := c.collectFromSource(ctx, browserCtx, searchURL)
		if err != nil {
			log.Warn("collection failed for %s: %v", searchURL, err)
			errs = append(errs, err)
			continue
		}
		log.Info("collected %d listings from %s", len(listings), sourceName(searchURL))
		all = append(all, listings...)

		if i < len(valid)-1 {
			if err := c.pacer.Wait(ctx); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}

	return dedupeByListingURL(all), errs
}

func (c *Collector) collectFromSource(ctx context.Context, browserCtx context.Context, searchURL string) ([]models.CollectedListing, error) {
	host := hostOf(searchURL)
	for domain, strat := range strategies {
		if strings.Contains(host, domain) {
			return strat(ctx, browserCtx, searchURL, c.opts)
		}
	}
	return nil, &ErrUnsupportedHost{URL: searchURL}
}

func validateURLs(urls []string) []string {
	var out []string
	for _, u := range urls {
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			out = append(out, u)
		} else {
			log.Warn("skipping invalid search url: %s", u)
		}
	}
	return out
}

func sourceName(searchURL string) string {
	host := hostOf(searchURL)
	switch {
	case strings.Contains(host, "autotempest.com"):
		return "AutoTempest"
	case strings.Contains(host, "cars.com"):
		return "Cars.com"
	case strings.Contains(host, "cargurus.com"):
		return "CarGurus"
	case strings.Contains(host, "truecar.com"):
		return "TrueCar"
	case strings.Contains(host, "carmax.com"):
		return "CarMax"
	default:
		return "Unknown Source"
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.ToLower(u.Host)
}

func dedupeByListingURL(listings []models.CollectedListing) []models.CollectedListing {
	seen := make(map[string]bool, len(listings))
	out := make([]models.CollectedListing, 0, len(listings))
	for _, l := range listings {
		if l.ListingURL == "" || seen[l.ListingURL] {
			continue
		}
		seen[l.ListingURL] = true
		out = append(out, l)
	}
	return out
}

var collectionBlockPatterns = []string{
	"*googletagmanager.com*", "*google-analytics.com*", "*doubleclick.net*",
	"*facebook.net*", "*adservice.google*", "*adsystem*", "*scorecardresearch*",
	"*criteo*", "*hotjar*", "*optimizely*", "*segment.io*", "*newrelic*", "*snowplow*",
}

// installCollectionBlocking blocks the same lightweight tracking-host
// denylist the scraper uses, to speed up search-results page loads.
func installCollectionBlocking(ctx context.Context) error {
	return chromedp.Run(ctx,
		network.Enable(),
		network.SetBlockedURLs(collectionBlockPatterns),
	)
}

// collectAutoTempest enumerates listing anchors from an AutoTempest search
// results page, normalizing hrefs, fixing double-domain artifacts, and
// skipping internal detail/interstitial pages.
func collectAutoTempest(ctx context.Context, browserCtx context.Context, searchURL string, opts Options) ([]models.CollectedListing, error) {
	navCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	if err := installCollectionBlocking(navCtx); err != nil {
		log.Debug("collection network blocking setup failed: %v", err)
	}

	if err := chromedp.Run(navCtx, chromedp.Navigate(searchURL)); err != nil {
		loadCtx, loadCancel := context.WithTimeout(browserCtx, 30*time.Second)
		defer loadCancel()
		if err2 := chromedp.Run(loadCtx, chromedp.Navigate(searchURL), chromedp.Sleep(2*time.Second)); err2 != nil {
			return nil, fmt.Errorf("page load failed: %w", err2)
		}
	}

	const primarySelector = `li.result-list-item a.listing-link.source-link`
	const fallbackSelector = `a.listing-link`

	waitCtx, waitCancel := context.WithTimeout(browserCtx, 5*time.Second)
	err := chromedp.Run(waitCtx, chromedp.WaitVisible(primarySelector, chromedp.ByQuery))
	waitCancel()
	if err != nil {
		waitCtx2, waitCancel2 := context.WithTimeout(browserCtx, 3*time.Second)
		_ = chromedp.Run(waitCtx2, chromedp.WaitVisible(fallbackSelector, chromedp.ByQuery))
		waitCancel2()
	}

	type anchor struct {
		Href  string
		Title string
	}
	var anchors []anchor

	if err := chromedp.Run(browserCtx, chromedp.Evaluate(autoTempestExtractJS(primarySelector), &anchors)); err != nil || len(anchors) == 0 {
		if err2 := chromedp.Run(browserCtx, chromedp.Evaluate(autoTempestExtractJS(fallbackSelector), &anchors)); err2 != nil {
			return nil, fmt.Errorf("no vehicle listings found on %s: %w", searchURL, err2)
		}
	}

	if len(anchors) == 0 {
		return nil, fmt.Errorf("no vehicle listings found on %s", searchURL)
	}

	now := time.Now()
	var out []models.CollectedListing
	for _, a := range anchors {
		fullURL := normalizeListingURL(searchURL, a.Href)
		if fullURL == "" {
			continue
		}
		if strings.Contains(fullURL, "autotempest.com/details/") {
			log.Debug("skipping internal AutoTempest detail page: %s", fullURL)
			continue
		}

		title := strings.TrimSpace(a.Title)
		if title == "" {
			title = "Vehicle Listing"
		}

		out = append(out, models.CollectedListing{
			ID:             uuid.NewString(),
			SourceURL:      searchURL,
			ListingURL:     fullURL,
			Title:          title,
			CollectionTime: now,
			ScrapingMethod: "autotempest_urls_only",
		})

		if opts.CapPerSource > 0 && len(out) >= opts.CapPerSource {
			log.Debug("cap reached for %s (%d); stopping enumeration", searchURL, opts.CapPerSource)
			break
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no vehicle listing urls found on %s", searchURL)
	}
	return out, nil
}

// autoTempestExtractJS builds the in-page JS that pulls href+title pairs
// for every anchor matching sel, reading the nearest result card's title.
func autoTempestExtractJS(sel string) string {
	return `Array.from(document.querySelectorAll(` + backtickQuote(sel) + `)).map(function(a){
		var card = a.closest('li.result-list-item');
		var titleEl = card ? card.querySelector('h3, h4, .title, .vehicle-title, .listing-title, .result-title') : null;
		return {Href: a.getAttribute('href') || '', Title: titleEl ? titleEl.innerText.trim() : ''};
	})`
}

func backtickQuote(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return `'` + escaped + `'`
}

// normalizeListingURL resolves href against the search page URL and fixes
// the /www.host.com/path double-domain artifact AutoTempest sometimes
// produces in its outbound links.
func normalizeListingURL(baseURL, href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	full := base.ResolveReference(ref)

	if strings.HasSuffix(full.Host, "autotempest.com") && strings.HasPrefix(full.Path, "/www.autotempest.com/") {
		full.Path = strings.Replace(full.Path, "/www.autotempest.com/", "/", 1)
	}

	return full.String()
}
