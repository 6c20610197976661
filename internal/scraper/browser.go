package scraper

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/rkaplan/x987scout/internal/logging"
)

var browserLog = logging.New("scraper.browser")

// BrowserOptions configures the chromedp allocator.
type BrowserOptions struct {
	Headful    bool
	ChromePath string
	UserAgent  string
}

// NewBrowserContext creates a chromedp browser context, attempting headless
// first and falling back to headful when headless initialization fails
// (when opts.Headful is set, only headful is attempted).
// The caller must call the returned cancel func. An error means neither
// mode produced a working browser and the caller should fall back to the
// HTTP fetcher (spec §4.2/§7 "navigation failure").
func NewBrowserContext(ctx context.Context, opts BrowserOptions) (context.Context, context.CancelFunc, error) {
	CheckChromeEnvironment(opts.ChromePath)

	headless := !opts.Headful
	browserCtx, cancel, err := attemptBrowserCreation(ctx, opts, headless)
	if err == nil {
		return browserCtx, cancel, nil
	}
	cancel()

	if headless {
		browserLog.Warn("headless browser init failed, retrying headful: %v", err)
		browserCtx, cancel, err = attemptBrowserCreation(ctx, opts, false)
		if err == nil {
			return browserCtx, cancel, nil
		}
		cancel()
	}

	return nil, func() {}, err
}

func attemptBrowserCreation(ctx context.Context, opts BrowserOptions, headless bool) (context.Context, context.CancelFunc, error) {
	execOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("no-sandbox", true), // needed in containers/root
	}
	if opts.UserAgent != "" {
		execOpts = append(execOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ChromePath != "" {
		execOpts = append(execOpts, chromedp.ExecPath(opts.ChromePath))
	}
	if headless {
		execOpts = append(execOpts, chromedp.Headless, chromedp.Flag("disable-blink-features", "AutomationControlled"))
	} else {
		execOpts = append(execOpts, chromedp.Flag("window-position", "0,0"))
	}

	debugOutput := &bytes.Buffer{}
	execOpts = append(execOpts, chromedp.CombinedOutput(debugOutput))

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	combinedCancel := func() {
		browserCancel()
		allocCancel()
	}

	var version string
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(`navigator.userAgent`, &version)); err != nil {
		browserLog.Warn("browser init test failed (headless=%v): %v; debug output: %s", headless, err, debugOutput.String())
		return browserCtx, combinedCancel, err
	}

	browserLog.Info("browser initialized (headless=%v): %s", headless, version)
	return browserCtx, combinedCancel, nil
}

// CheckChromeEnvironment logs diagnostic context useful when browser
// initialization fails: container detection, current user, the resolved
// Chrome binary and its version.
func CheckChromeEnvironment(configuredPath string) {
	if u, err := user.Current(); err == nil {
		browserLog.Debug("running as %s (uid=%s)", u.Username, u.Uid)
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		browserLog.Debug("running inside a container")
	}
	path := configuredPath
	if path == "" {
		path = FindChromePath()
	}
	if path == "" {
		browserLog.Warn("no Chrome/Chromium binary found in common locations")
		return
	}
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err == nil {
		browserLog.Debug("chrome binary: %s (%s)", path, strings.TrimSpace(string(out)))
	}
}

// FindChromePath searches common per-OS install locations, then $PATH.
func FindChromePath() string {
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files\Chromium\Application\chrome.exe`,
		}
	case "darwin":
		paths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	default:
		paths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, bin := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if p, err := exec.LookPath(bin); err == nil {
			return p
		}
	}
	return ""
}

// waitForLoad blocks until document.readyState reports complete or maxWait
// has passed (both return nil), sleeping briefly between checks; an error
// from evaluating readyState or from the sleep (such as ctx expiring) is
// returned.
func waitForLoad(ctx context.Context, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for {
		var state string
		if err := chromedp.Evaluate(`document.readyState`, &state).Do(ctx); err != nil {
			return err
		}
		if state == "complete" {
			return nil
		}
		if time.Now().After(deadline) {
			return nil
		}
		if err := chromedp.Sleep(300 * time.Millisecond).Do(ctx); err != nil {
			return err
		}
	}
}
