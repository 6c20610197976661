// Package scraper drives the vehicle detail page (VDP) scrape: chromedp
// navigation with tracking/resource blocking, profile-selector-first HTML
// extraction with JSON-LD enrichment, and an HTTP-only fallback path when
// no browser could be started or navigation failed.
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/profiles"
)

var scrapeLog = logging.New("scraper.universal")

// Scraper scrapes vehicle detail pages using a shared browser context.
type Scraper struct {
	opts     BrowserOptions
	profiles *profiles.Registry
}

// New builds a Scraper with the given browser options and site profile
// registry (profiles.Default() if nil).
func New(opts BrowserOptions, reg *profiles.Registry) *Scraper {
	if reg == nil {
		reg = profiles.Default()
	}
	return &Scraper{opts: opts, profiles: reg}
}

// Scrape fetches and extracts one VDP. When the browser cannot start or
// navigation fails it falls back to a plain HTTP GET so the pipeline still
// gets a raw-HTML artifact to work with; a successful fallback is recorded
// as ScrapeSuccess with a "degraded" Error note, a failed one as
// ScrapeFailed.
func (s *Scraper) Scrape(ctx context.Context, listingURL string) *models.ScrapedPage {
	page := &models.ScrapedPage{
		ID:           listingURL,
		ListingURL:   listingURL,
		RawSections:  map[string]string{},
		ScrapingTime: scrapeNow(),
	}

	profile := s.profiles.ForURL(listingURL)
	page.Source = profile.Name

	browserCtx, cancel, err := NewBrowserContext(ctx, s.opts)
	if err != nil {
		scrapeLog.Warn("browser unavailable for %s, falling back to HTTP: %v", listingURL, err)
		return s.scrapeViaHTTP(ctx, listingURL, profile, err)
	}
	defer cancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, 60*time.Second)
	defer timeoutCancel()

	if err := installNetworkBlocking(timeoutCtx); err != nil {
		scrapeLog.Debug("network blocking setup failed for %s: %v", listingURL, err)
	}

	if err := chromedp.Run(timeoutCtx, chromedp.Navigate(listingURL)); err != nil {
		scrapeLog.Warn("navigation failed for %s: %v", listingURL, err)
		return s.scrapeViaHTTP(ctx, listingURL, profile, err)
	}

	if err := waitForLoad(timeoutCtx, 10*time.Second); err != nil {
		scrapeLog.Debug("dom content load wait failed for %s: %v", listingURL, err)
	}

	satisfied := s.waitForProfileContent(timeoutCtx, profile)
	if !satisfied {
		scrapeLog.Warn("profile wait conditions failed for %s; proceeding with HTML-first extraction", listingURL)
	}

	var rawHTML, domText string
	if err := chromedp.Run(timeoutCtx,
		chromedp.OuterHTML("html", &rawHTML, chromedp.ByQuery),
		chromedp.Evaluate(`document.body.innerText`, &domText),
	); err != nil {
		scrapeLog.Warn("capture failed for %s: %v", listingURL, err)
		page.Status = models.ScrapeError
		page.Error = err.Error()
		return page
	}

	page.RawHTML = rawHTML
	page.RawDOMText = domText
	page.WaitConditions = profile.WaitConditions

	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if parseErr != nil {
		scrapeLog.Warn("goquery parse failed for %s: %v", listingURL, parseErr)
	} else {
		page.RawSections = extractSectionsFromHTML(doc, profile)
		if sd := extractJSONLD(doc); len(sd) > 0 {
			page.StructuredData = sd
		}
	}

	for _, section := range models.AllSections {
		if strings.TrimSpace(page.RawSections[section]) != "" {
			continue
		}
		if text := extractSectionFromLiveDOM(timeoutCtx, profile.Selector(section)); text != "" {
			page.RawSections[section] = text
		}
	}

	if page.StructuredData != nil {
		enrichSectionsFromJSONLD(page.RawSections, page.StructuredData)
	}

	page.Status = models.ScrapeSuccess
	return page
}

// waitForProfileContent waits for each profile wait condition, retrying
// once after a scroll pass to trigger lazy-loaded content. It returns true
// if at least one condition was satisfied, or if the profile declares none.
func (s *Scraper) waitForProfileContent(ctx context.Context, profile *profiles.Profile) bool {
	if len(profile.WaitConditions) == 0 {
		return true
	}

	satisfied := 0
	for _, cond := range profile.WaitConditions {
		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := chromedp.Run(waitCtx, chromedp.WaitVisible(cond, chromedp.ByQuery))
		cancel()
		if err == nil {
			satisfied++
			continue
		}

		scrollToTriggerLazyLoading(ctx)

		waitCtx2, cancel2 := context.WithTimeout(ctx, 5*time.Second)
		err = chromedp.Run(waitCtx2, chromedp.WaitVisible(cond, chromedp.ByQuery))
		cancel2()
		if err == nil {
			satisfied++
		}
	}

	_ = chromedp.Run(ctx, chromedp.Sleep(2*time.Second))
	return satisfied > 0
}

// scrollToTriggerLazyLoading scrolls the page in progressive steps and back
// to the top, giving lazy-loaded sections a chance to mount.
func scrollToTriggerLazyLoading(ctx context.Context) {
	var pageHeight int
	if err := chromedp.Run(ctx, chromedp.Evaluate(`document.body.scrollHeight`, &pageHeight)); err != nil {
		return
	}
	if pageHeight <= 0 {
		return
	}

	var discard any
	fractions := []float64{0.25, 0.5, 0.75, 1.0}
	for _, f := range fractions {
		target := int(float64(pageHeight) * f)
		_ = chromedp.Run(ctx,
			chromedp.Evaluate(`window.scrollTo({top: `+itoa(target)+`, behavior: 'instant'})`, &discard),
			chromedp.Sleep(800*time.Millisecond),
		)
	}
	_ = chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollTo({top: 0, behavior: 'instant'})`, &discard),
		chromedp.Sleep(500*time.Millisecond),
	)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// scrapeViaHTTP is the last-resort fallback when no browser could be
// started or navigation failed outright: a plain GET whose HTML is parsed
// with goquery for profile sections, JSON-LD enrichment and full-page text.
func (s *Scraper) scrapeViaHTTP(ctx context.Context, listingURL string, profile *profiles.Profile, cause error) *models.ScrapedPage {
	page := &models.ScrapedPage{
		ID:           listingURL,
		ListingURL:   listingURL,
		Source:       profile.Name,
		RawSections:  map[string]string{},
		ScrapingTime: scrapeNow(),
	}

	userAgent := s.opts.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	}

	html, err := FetchWithHTTP(ctx, listingURL, userAgent)
	if err != nil {
		page.Status = models.ScrapeFailed
		page.Error = "browser unavailable (" + cause.Error() + "); http fallback failed: " + err.Error()
		return page
	}

	page.RawHTML = html
	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if parseErr == nil {
		page.RawSections = extractSectionsFromHTML(doc, profile)
		if sd := extractJSONLD(doc); len(sd) > 0 {
			page.StructuredData = sd
			enrichSectionsFromJSONLD(page.RawSections, sd)
		}
		page.RawDOMText = doc.Text()
	}

	page.Status = models.ScrapeSuccess
	page.Error = "degraded: browser unavailable (" + cause.Error() + "), used HTTP fallback"
	return page
}

func scrapeNow() time.Time { return time.Now() }
