package scraper

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/rkaplan/x987scout/internal/logging"
)

var httpLog = logging.New("scraper.http")

// FetchWithHTTP retrieves a page with a plain HTTP client when the browser
// path is unavailable (spec §4.2 "navigation failure" / §7 fallback chain).
// It carries a cookie jar, gzip handling, and up to 3 attempts on transport
// errors or 5xx responses.
func FetchWithHTTP(ctx context.Context, rawURL, userAgent string) (string, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
		DisableCompression:    false,
		MaxIdleConns:          100,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 5 * time.Second,
	}

	jar, _ := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})

	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			for key, val := range via[0].Header {
				if _, ok := req.Header[key]; !ok {
					req.Header[key] = val
				}
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")

	var resp *http.Response
	var lastErr error
	const maxRetries = 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err = client.Do(req)

		if err == nil && resp.StatusCode < 500 {
			break
		}

		if resp != nil {
			resp.Body.Close()
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("server returned status: %d", resp.StatusCode)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 2 * time.Second):
		}

		httpLog.Warn("retrying HTTP fetch for %s (attempt %d/%d): %v", rawURL, attempt+1, maxRetries, lastErr)
	}

	if resp == nil {
		return "", fmt.Errorf("HTTP fetch failed after %d attempts: %v", maxRetries, lastErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("server returned status code %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "html") &&
		!strings.Contains(strings.ToLower(contentType), "text") &&
		contentType != "" {
		httpLog.Debug("url %s returned non-HTML content type: %s", rawURL, contentType)
	}

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("error creating gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(io.LimitReader(reader, 10*1024*1024))
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	return string(body), nil
}

// TestSiteAccessibility probes a URL with a plain GET before committing to
// a full browser session, surfacing likely bot-protection pages early.
func TestSiteAccessibility(ctx context.Context, rawURL string) error {
	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("site returned error status: %d %s", resp.StatusCode, resp.Status)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	bodyLower := strings.ToLower(string(bodyBytes))
	if strings.Contains(bodyLower, "captcha") ||
		(strings.Contains(bodyLower, "cloudflare") && strings.Contains(bodyLower, "security")) ||
		strings.Contains(bodyLower, "ddos") ||
		strings.Contains(bodyLower, "checking your browser") {
		return fmt.Errorf("site appears to have bot protection active")
	}

	httpLog.Debug("site %s accessible via HTTP with status %d", rawURL, resp.StatusCode)
	return nil
}
