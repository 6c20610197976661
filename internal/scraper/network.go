package scraper

import (
	"context"

	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

var denylistHosts = []string{
	"google-analytics.com", "googletagmanager.com", "doubleclick.net", "facebook.net",
	"facebook.com/tr", "hotjar.com", "segment.io", "segment.com", "fullstory.com",
	"optimizely.com", "criteo.com", "taboola.com", "outbrain.com", "adsrvr.org",
	"adnxs.com", "scorecardresearch.com", "quantserve.com", "newrelic.com",
	"nr-data.net", "bugsnag.com", "sentry.io",
}

var blockedResourceTypes = map[network.ResourceType]bool{
	network.ResourceTypeImage:      true,
	network.ResourceTypeMedia:      true,
	network.ResourceTypeFont:       true,
	network.ResourceTypeStylesheet: true,
}

func blockedURLPatterns() []string {
	patterns := make([]string, 0, len(denylistHosts))
	for _, host := range denylistHosts {
		patterns = append(patterns, "*"+host+"*")
	}
	return patterns
}

// installNetworkBlocking aborts requests to tracking/analytics hosts
// outright and, for every other request, aborts image/media/font/stylesheet
// resource fetches so the scraper only pays for document and script bytes
// (spec §4.2 step 1).
func installNetworkBlocking(ctx context.Context) error {
	chromedp.ListenTarget(ctx, func(ev any) {
		switch e := ev.(type) {
		case *fetch.EventRequestPaused:
			go func(id fetch.RequestID, resourceType network.ResourceType) {
				if blockedResourceTypes[resourceType] {
					_ = chromedp.Run(ctx, fetch.FailRequest(id, network.ErrorReasonBlockedByClient))
					return
				}
				_ = chromedp.Run(ctx, fetch.ContinueRequest(id))
			}(e.RequestID, e.ResourceType)
		}
	})

	return chromedp.Run(ctx,
		network.Enable(),
		network.SetBlockedURLs(blockedURLPatterns()),
		fetch.Enable(),
	)
}
