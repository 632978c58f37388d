package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const DEFAULT_TIMEOUT time.Duration = 30 * time.Second

// RodFetcher drives a Chromium instance through the DevTools protocol. A single browser
// is shared by every fetch; each fetch uses its own page.
type RodFetcher struct {
	PageFetcher
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

type RodFetcherOptions struct {
	Headless bool
	// Timeout bounds both navigation and the wait for review rows. Defaults to DEFAULT_TIMEOUT.
	Timeout time.Duration
	// ControlURL connects to an already running browser instead of launching one.
	ControlURL string
}

// DefaultRodFetcherOptions launches a headless browser with DEFAULT_TIMEOUT.
func DefaultRodFetcherOptions() *RodFetcherOptions {

	opts := &RodFetcherOptions{
		Headless: true,
		Timeout:  DEFAULT_TIMEOUT,
	}

	return opts
}

// NewRodFetcher returns a `RodFetcher` configured by 'opts'. A nil 'opts' means
// DefaultRodFetcherOptions.
func NewRodFetcher(ctx context.Context, opts *RodFetcherOptions) (*RodFetcher, error) {

	opts = resolveRodFetcherOptions(opts)

	f := &RodFetcher{
		timeout: opts.Timeout,
	}

	control_url := opts.ControlURL

	if control_url == "" {

		l := launcher.New().Headless(opts.Headless)

		u, err := l.Launch()

		if err != nil {
			return nil, fmt.Errorf("Failed to launch browser, %w", err)
		}

		f.launcher = l
		control_url = u
	}

	browser := rod.New().ControlURL(control_url)

	err := browser.Connect()

	if err != nil {
		f.cleanup()
		return nil, fmt.Errorf("Failed to connect to browser, %w", err)
	}

	f.browser = browser
	return f, nil
}

// FetchHTML navigates to 'url', waits for 'wait_for' to match an element and returns the
// page HTML.
func (f *RodFetcher) FetchHTML(ctx context.Context, url string, wait_for string) (string, error) {

	page, err := f.browser.Context(ctx).Page(proto.TargetCreateTarget{})

	if err != nil {
		return "", fmt.Errorf("Failed to create page, %w", err)
	}

	defer page.Close()

	page = page.Timeout(f.timeout)

	err = page.Navigate(url)

	if err != nil {
		return "", fmt.Errorf("Failed to navigate, %w", err)
	}

	err = page.WaitLoad()

	if err != nil {
		return "", fmt.Errorf("Failed to wait for page load, %w", err)
	}

	if wait_for != "" {

		_, err = page.Element(wait_for)

		if err != nil {
			return "", fmt.Errorf("Failed to wait for '%s', %w", wait_for, err)
		}
	}

	return page.HTML()
}

func (f *RodFetcher) Close() error {

	var err error

	if f.browser != nil {
		err = f.browser.Close()
	}

	f.cleanup()
	return err
}

func (f *RodFetcher) cleanup() {

	if f.launcher != nil {
		f.launcher.Cleanup()
	}
}

func resolveRodFetcherOptions(opts *RodFetcherOptions) *RodFetcherOptions {

	if opts == nil {
		return DefaultRodFetcherOptions()
	}

	resolved := *opts

	if resolved.Timeout <= 0 {
		resolved.Timeout = DEFAULT_TIMEOUT
	}

	return &resolved
}
