// Package browser provides browser automation functionality
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Options configures a browser session
type Options struct {
	Headless    bool
	WindowSize  [2]int
	UserAgent   string
	StepTimeout time.Duration // applied to each individual operation
}

// DefaultOptions returns the options used when none are supplied
func DefaultOptions() Options {
	return Options{
		Headless:    true,
		WindowSize:  [2]int{1920, 1080},
		UserAgent:   "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36",
		StepTimeout: 15 * time.Second,
	}
}

// Session owns one browser tab for the lifetime of a batch run.
// It is not safe for concurrent use; one caller drives it at a time.
type Session struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	stepTimeout time.Duration
}

// NewSession starts a browser and opens a single tab
func NewSession(opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-site-isolation-trials", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(opts.WindowSize[0], opts.WindowSize[1]),
		chromedp.UserAgent(opts.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...interface{}) {
		// Silent logging
	}))

	// Silently handle navigation events emitted during page loads
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		switch ev.(type) {
		case *page.EventFrameStartedNavigating:
		}
	})

	// Warm up the browser so the first real navigation is not also paying
	// the process startup cost
	if err := chromedp.Run(tabCtx, chromedp.Navigate("about:blank")); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	timeout := opts.StepTimeout
	if timeout <= 0 {
		timeout = DefaultOptions().StepTimeout
	}

	return &Session{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		stepTimeout: timeout,
	}, nil
}

// Close shuts down the tab and the browser process
func (s *Session) Close() {
	if s.tabCancel != nil {
		s.tabCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
}

// run executes chromedp actions under the session's per-step timeout,
// honoring cancellation of the caller's context
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(s.tabCtx, s.stepTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- chromedp.Run(stepCtx, actions...) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

// Navigate loads a URL and waits for the page load event
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitVisible blocks until the element at the XPath is rendered, or the
// per-step timeout elapses
func (s *Session) WaitVisible(ctx context.Context, xpath string) error {
	if err := s.run(ctx, chromedp.WaitVisible(xpath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("element not visible at %s: %w", xpath, err)
	}
	return nil
}

// Click waits for the element at the XPath and activates it
func (s *Session) Click(ctx context.Context, xpath string) error {
	if err := s.run(ctx, chromedp.Click(xpath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("failed to click %s: %w", xpath, err)
	}
	return nil
}

// OuterHTML returns the full markup of the element at the XPath; callers
// read element text by parsing the captured markup
func (s *Session) OuterHTML(ctx context.Context, xpath string) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML(xpath, &html, chromedp.BySearch)); err != nil {
		return "", fmt.Errorf("failed to capture element at %s: %w", xpath, err)
	}
	return html, nil
}
