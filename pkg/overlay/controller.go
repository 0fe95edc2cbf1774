package overlay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgrid/pkg/channel"
	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/placement"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// State is the overlay lifecycle state.
type State int

const (
	Unmounted State = iota
	Mounted
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Mounted:
		return "mounted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Controller keeps one overlay element in sync with the latest settings and
// viewport. It is the only writer of the element's style.
type Controller struct {
	host   Host
	logger *log.Logger

	mu       sync.Mutex
	state    State
	el       Element
	settings settings.GridSettings
	viewport placement.Viewport
	style    placement.Style
}

// NewController creates a controller for host. The overlay starts unmounted.
func NewController(host Host, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{host: host, logger: logger, settings: settings.Default()}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Style returns the style last applied to the element, or nil when
// unmounted.
func (c *Controller) Style() placement.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

// Settings returns the settings last handled.
func (c *Controller) Settings() settings.GridSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// HandleSettings renders s. Hidden settings remove the element; visible
// settings mount it if needed and restyle it in place.
func (c *Controller) HandleSettings(ctx context.Context, s settings.GridSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings = s
	if !s.Visible {
		return c.unmount(ctx)
	}

	vp, err := c.host.Viewport(ctx)
	if err != nil {
		return fmt.Errorf("measure viewport: %w", err)
	}
	c.viewport = vp

	if c.state == Unmounted {
		el, err := c.host.Mount(ctx)
		if err != nil {
			return fmt.Errorf("mount overlay: %w", err)
		}
		c.el, c.state = el, Mounted
		observability.Render().OnMount(ctx)
		c.logger.Debug("overlay mounted")
	}

	if err := c.el.Annotate(ctx, placement.Attributes(s)); err != nil {
		return fmt.Errorf("annotate overlay: %w", err)
	}
	return c.render(ctx)
}

// HandleMessage lets a Controller serve as a channel.Handler.
func (c *Controller) HandleMessage(ctx context.Context, msg channel.Message) error {
	c.logger.Debug("settings received", "id", msg.ID, "visible", msg.Settings.Visible)
	return c.HandleSettings(ctx, msg.Settings)
}

// HandleResize re-renders a mounted overlay for a new viewport.
func (c *Controller) HandleResize(ctx context.Context, vp placement.Viewport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.viewport = vp
	if c.state != Mounted {
		return nil
	}
	return c.render(ctx)
}

// Close removes the element if it is mounted.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unmount(ctx)
}

// Run handles settings and resize events one at a time until ctx ends or
// both channels are closed. Handler errors are logged and do not stop the
// loop.
func (c *Controller) Run(ctx context.Context, settingsCh <-chan settings.GridSettings, resizeCh <-chan placement.Viewport) error {
	for settingsCh != nil || resizeCh != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-settingsCh:
			if !ok {
				settingsCh = nil
				continue
			}
			if err := c.HandleSettings(ctx, s); err != nil {
				c.logger.Error("apply settings", "err", err)
			}
		case vp, ok := <-resizeCh:
			if !ok {
				resizeCh = nil
				continue
			}
			if err := c.HandleResize(ctx, vp); err != nil {
				c.logger.Error("apply resize", "err", err)
			}
		}
	}
	return nil
}

func (c *Controller) unmount(ctx context.Context) error {
	if c.state == Unmounted {
		return nil
	}
	err := c.host.Unmount(ctx, c.el)
	c.el, c.state, c.style = nil, Unmounted, nil
	observability.Render().OnUnmount(ctx)
	c.logger.Debug("overlay unmounted")
	if err != nil {
		return fmt.Errorf("unmount overlay: %w", err)
	}
	return nil
}

func (c *Controller) render(ctx context.Context) error {
	start := time.Now()
	style, ok := placement.Compute(c.viewport, c.settings)
	if !ok {
		return nil
	}
	err := c.el.Apply(ctx, style)
	observability.Render().OnRender(ctx, c.viewport.Width, c.viewport.Height, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("apply style: %w", err)
	}
	c.style = style
	c.logger.Debug("overlay rendered", "viewport", fmt.Sprintf("%dx%d", c.viewport.Width, c.viewport.Height))
	return nil
}

var _ channel.Handler = (*Controller)(nil)
