package browser

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/matzehuels/pixelgrid/pkg/overlay"
	"github.com/matzehuels/pixelgrid/pkg/placement"
)

// Options configures the Chrome instance and the page to open.
type Options struct {
	URL      string
	Headless bool
	// Flags are extra Chrome command line switches. A true value adds a bare
	// switch; false removes one.
	Flags  map[string]any
	Logger *log.Logger
}

// AllocatorOptions builds the exec allocator options for Chrome.
func AllocatorOptions(headless bool, flags map[string]any) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", headless),
		chromedp.Flag("hide-scrollbars", false),
	)

	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, chromedp.Flag(k, flags[k]))
	}
	return opts
}

// Host draws the overlay into a Chrome tab.
type Host struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	logger      *log.Logger
}

// Open starts Chrome, loads opts.URL and injects the overlay stylesheet.
// The browser lives until Close is called or ctx is cancelled.
func Open(ctx context.Context, opts Options) (*Host, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, AllocatorOptions(opts.Headless, opts.Flags)...)
	tab, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debugf))
	h := &Host{tab: tab, cancelTab: cancelTab, cancelAlloc: cancelAlloc, logger: logger}

	var injected bool
	err := chromedp.Run(tab,
		chromedp.Navigate(opts.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(stylesheetScript(), &injected),
	)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("open %s: %w", opts.URL, err)
	}
	logger.Debug("page ready", "url", opts.URL, "stylesheet", injected)
	return h, nil
}

// Close shuts down the tab and the browser.
func (h *Host) Close() {
	h.cancelTab()
	h.cancelAlloc()
}

func (h *Host) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(h.tab, actions...)
}

func (h *Host) eval(ctx context.Context, script string) error {
	var ok bool
	if err := h.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return overlay.ErrNotMounted
	}
	return nil
}

func (h *Host) Viewport(ctx context.Context) (placement.Viewport, error) {
	var size []int
	if err := h.run(ctx, chromedp.Evaluate(measureScript, &size)); err != nil {
		return placement.Viewport{}, fmt.Errorf("measure: %w", err)
	}
	if len(size) != 2 {
		return placement.Viewport{}, fmt.Errorf("measure: unexpected result %v", size)
	}
	return placement.Viewport{Width: size[0], Height: size[1]}, nil
}

func (h *Host) Mount(ctx context.Context) (overlay.Element, error) {
	if err := h.eval(ctx, mountScript()); err != nil {
		return nil, err
	}
	return &element{host: h}, nil
}

func (h *Host) Unmount(ctx context.Context, el overlay.Element) error {
	if e, ok := el.(*element); !ok || e.host != h {
		return overlay.ErrNotMounted
	}
	return h.eval(ctx, unmountScript())
}

// Resizes reports the viewport each time the window is resized, including
// after navigations. Only the latest size is buffered. The channel is never
// closed; stop reading when ctx is done.
func (h *Host) Resizes(ctx context.Context) (<-chan placement.Viewport, error) {
	ch := make(chan placement.Viewport, 1)

	chromedp.ListenTarget(h.tab, func(ev interface{}) {
		called, ok := ev.(*runtime.EventBindingCalled)
		if !ok || called.Name != resizeBinding {
			return
		}
		vp, err := decodeViewport(called.Payload)
		if err != nil {
			h.logger.Warn("ignoring resize event", "err", err)
			return
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- vp:
		default:
		}
	})

	script := resizeScript()
	err := h.run(ctx,
		runtime.AddBinding(resizeBinding),
		chromedp.ActionFunc(func(c context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(script).Do(c)
			return err
		}),
		chromedp.Evaluate(script, nil),
	)
	if err != nil {
		return nil, fmt.Errorf("install resize listener: %w", err)
	}
	return ch, nil
}

type element struct {
	host *Host
}

func (e *element) Apply(ctx context.Context, style placement.Style) error {
	return e.host.eval(ctx, applyScript(style))
}

func (e *element) Annotate(ctx context.Context, attrs []placement.Property) error {
	return e.host.eval(ctx, annotateScript(attrs))
}

var (
	_ overlay.Host    = (*Host)(nil)
	_ overlay.Element = (*element)(nil)
)
