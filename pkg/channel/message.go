package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// ErrClosed is returned when sending on a closed channel.
var ErrClosed = errors.New("channel closed")

// Message carries a complete settings record from the panel to the page.
type Message struct {
	ID       uuid.UUID             `json:"id"`
	Settings settings.GridSettings `json:"settings"`
	SentAt   time.Time             `json:"sentAt"`
}

// NewMessage wraps s in a message with a fresh id.
func NewMessage(s settings.GridSettings) Message {
	return Message{ID: uuid.New(), Settings: s, SentAt: time.Now().UTC()}
}

// Response acknowledges a message.
type Response struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// Handler consumes messages on the page side.
type Handler interface {
	HandleMessage(ctx context.Context, msg Message) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg Message) error

// HandleMessage calls f.
func (f HandlerFunc) HandleMessage(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Sender delivers settings to the page and waits for the acknowledgement.
type Sender interface {
	Send(ctx context.Context, s settings.GridSettings) (Response, error)
}

// reply runs h and turns its result into a Response.
func reply(ctx context.Context, h Handler, msg Message) Response {
	if err := h.HandleMessage(ctx, msg); err != nil {
		return Response{ID: msg.ID, Error: pgerrors.UserMessage(err)}
	}
	return Response{ID: msg.ID, Success: true}
}

// DecodeMessage parses a message envelope. The settings inside are merged
// onto the defaults. A body without a "settings" key is read as a bare
// settings payload. Missing ids and timestamps are filled in.
func DecodeMessage(data []byte) (Message, error) {
	var env struct {
		ID       *uuid.UUID      `json:"id"`
		Settings json.RawMessage `json:"settings"`
		SentAt   *time.Time      `json:"sentAt"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return Message{}, pgerrors.Wrap(pgerrors.ErrCodeInvalidFormat, err, "decode message")
	}

	raw := env.Settings
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = data
	}
	s, err := settings.Decode(settings.FormatJSON, raw)
	if err != nil {
		return Message{}, err
	}

	msg := NewMessage(s)
	if env.ID != nil {
		msg.ID = *env.ID
	}
	if env.SentAt != nil {
		msg.SentAt = *env.SentAt
	}
	return msg, nil
}
