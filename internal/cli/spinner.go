package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Spinner animates a one-line status on w while a blocking call runs. It
// stops by itself when its context ends.
type Spinner struct {
	w       io.Writer
	message string
	kind    spinner.Spinner

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex // guards writes to w
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		kind:    spinner.Dot,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
	}
}

func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *Spinner) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.kind.FPS)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		glyph := s.kind.Frames[frame%len(s.kind.Frames)]
		s.write(fmt.Sprintf("\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message)))
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and clears the line. Calls after the first are
// no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		s.cancel()
		s.wg.Wait()
		s.write("\r" + strings.Repeat(" ", lipgloss.Width(s.message)+4) + "\r")
	})
}

func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess(s.w, "%s", message)
}

func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError(s.w, "%s", message)
}

// Cancelled reports whether the caller's context ended while the spinner was
// still running.
func (s *Spinner) Cancelled() bool {
	return !s.stopped.Load() && s.parent.Err() != nil
}

func (s *Spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, text)
}
