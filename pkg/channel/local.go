package channel

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

const transportLocal = "local"

type envelope struct {
	msg   Message
	reply chan Response // nil for Notify
}

// Local is an in-process channel. Messages are delivered to a single Serve
// loop in the order they were sent.
type Local struct {
	msgs   chan envelope
	done   chan struct{}
	once   sync.Once
	logger *log.Logger
}

// NewLocal creates a channel holding up to buffer undelivered messages.
func NewLocal(buffer int, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.Default()
	}
	return &Local{
		msgs:   make(chan envelope, max(buffer, 0)),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Send delivers s and waits for the handler's response.
func (l *Local) Send(ctx context.Context, s settings.GridSettings) (Response, error) {
	env := envelope{msg: NewMessage(s), reply: make(chan Response, 1)}
	if err := l.enqueue(ctx, env); err != nil {
		return Response{}, err
	}

	select {
	case r := <-env.reply:
		return r, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-l.done:
		return Response{}, ErrClosed
	}
}

// Notify delivers s without waiting for it to be handled.
func (l *Local) Notify(ctx context.Context, s settings.GridSettings) error {
	return l.enqueue(ctx, envelope{msg: NewMessage(s)})
}

func (l *Local) enqueue(ctx context.Context, env envelope) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}

	observability.Channel().OnSend(ctx, transportLocal, env.msg.ID.String())
	select {
	case l.msgs <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// Serve hands messages to h until ctx ends or the channel is closed. It
// returns nil after Close and ctx.Err() on cancellation.
func (l *Local) Serve(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case env := <-l.msgs:
			start := time.Now()
			r := reply(ctx, h, env.msg)
			var err error
			if !r.Success {
				err = errorString(r.Error)
				l.logger.Warn("message handler failed", "id", env.msg.ID, "err", r.Error)
			}
			observability.Channel().OnDeliver(ctx, transportLocal, env.msg.ID.String(), time.Since(start), err)
			if env.reply != nil {
				env.reply <- r
			}
		}
	}
}

// Close stops Serve and fails pending and future sends.
func (l *Local) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

type errorString string

func (e errorString) Error() string { return string(e) }

var _ Sender = (*Local)(nil)
