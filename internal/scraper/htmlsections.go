package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/profiles"
)

var bannedSnippets = []string{
	"similar cars", "you may also like", "people also viewed", "sponsored",
	"related items", "people who viewed", "more items", "shop similar",
}

func containsBannedSnippet(text string) bool {
	lower := strings.ToLower(text)
	for _, bs := range bannedSnippets {
		if strings.Contains(lower, bs) {
			return true
		}
	}
	return false
}

// extractSectionsFromHTML runs the profile's selector lists against a
// parsed HTML document, joining every matched element's text with " \n ",
// and dropping any section whose text matches a banned "similar cars"-style
// snippet. Mirrors the Python scraper's BeautifulSoup-based pass.
func extractSectionsFromHTML(doc *goquery.Document, profile *profiles.Profile) map[string]string {
	out := make(map[string]string, len(models.AllSections))
	for _, section := range models.AllSections {
		for _, sel := range profile.Selector(section) {
			sel = strings.TrimSpace(sel)
			if sel == "" {
				continue
			}
			matches := doc.Find(sel)
			if matches.Length() == 0 {
				continue
			}
			var parts []string
			matches.Each(func(i int, s *goquery.Selection) {
				if t := strings.TrimSpace(s.Text()); t != "" {
					parts = append(parts, t)
				}
			})
			if len(parts) == 0 {
				continue
			}
			text := strings.Join(parts, " \n ")
			if text != "" && !containsBannedSnippet(text) {
				out[section] = text
				break
			}
		}
	}
	return out
}

// extractSectionFromLiveDOM is the fallback used when the static HTML parse
// found nothing for a section: it queries the live chromedp page directly,
// trying each selector in order.
func extractSectionFromLiveDOM(ctx context.Context, selectors []string) string {
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		text := extractTextSafe(ctx, sel)
		if text != "" && !containsBannedSnippet(text) {
			return text
		}
	}
	return ""
}

// extractTextSafe pulls innerText from the first match of sel (empty when
// that element is hidden), or the document title for the special
// "head title" selector.
func extractTextSafe(ctx context.Context, sel string) string {
	if sel == "head title" {
		var title string
		if err := chromedp.Title(&title).Do(ctx); err != nil {
			return ""
		}
		return strings.TrimSpace(title)
	}

	var text string
	err := chromedp.Run(ctx, chromedp.Evaluate(
		`(function(sel){
			var el = document.querySelector(sel);
			if (!el) return "";
			var style = window.getComputedStyle(el);
			if (style.display === 'none' || style.visibility === 'hidden') return "";
			return (el.innerText || el.textContent || "").trim();
		})(`+backtickQuote(sel)+`)`,
		&text,
	))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func backtickQuote(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
