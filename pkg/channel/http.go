package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/httputil"
	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

const transportHTTP = "http"

// MessagesPath is where NewHandler is mounted and where HTTPSender posts.
const MessagesPath = "/api/messages"

// HTTPSender posts messages to a pixelgrid server.
type HTTPSender struct {
	baseURL  string
	client   *http.Client
	attempts int
	delay    time.Duration
}

// HTTPOption configures an HTTPSender.
type HTTPOption func(*HTTPSender)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSender) { s.client = c }
}

// WithRetry sets the number of attempts and the first backoff delay.
func WithRetry(attempts int, delay time.Duration) HTTPOption {
	return func(s *HTTPSender) { s.attempts, s.delay = attempts, delay }
}

// NewHTTPSender creates a sender for the server at baseURL
// ("http://127.0.0.1:7878").
func NewHTTPSender(baseURL string, opts ...HTTPOption) (*HTTPSender, error) {
	if err := pgerrors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	s := &HTTPSender{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		delay:    250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send posts s and returns the server's response.
func (s *HTTPSender) Send(ctx context.Context, gs settings.GridSettings) (Response, error) {
	msg := NewMessage(gs)
	body, err := json.Marshal(msg)
	if err != nil {
		return Response{}, pgerrors.Wrap(pgerrors.ErrCodeInternal, err, "encode message")
	}

	observability.Channel().OnSend(ctx, transportHTTP, msg.ID.String())
	start := time.Now()

	var resp Response
	err = httputil.Retry(ctx, s.attempts, s.delay, func() error {
		var err error
		resp, err = s.post(ctx, body)
		return err
	})
	observability.Channel().OnDeliver(ctx, transportHTTP, msg.ID.String(), time.Since(start), err)
	if err != nil {
		var re *httputil.RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		return Response{}, err
	}
	return resp, nil
}

func (s *HTTPSender) post(ctx context.Context, body []byte) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+MessagesPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, pgerrors.Wrap(pgerrors.ErrCodeInvalidURL, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, &httputil.RetryableError{Err: pgerrors.Wrap(pgerrors.ErrCodeNetwork, err, "post message")}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err := httputil.ReadError(res)
		if httputil.RetryableStatus(res.StatusCode) {
			return Response{}, &httputil.RetryableError{Err: err}
		}
		return Response{}, err
	}

	var r Response
	if err := json.NewDecoder(io.LimitReader(res.Body, httputil.MaxBodySize)).Decode(&r); err != nil {
		return Response{}, pgerrors.Wrap(pgerrors.ErrCodeInvalidFormat, err, "decode response")
	}
	return r, nil
}

// NewHandler returns a router that accepts POSTed messages at its root and
// hands them to h. Mount it at MessagesPath.
func NewHandler(h Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	r := chi.NewRouter()
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		data, err := io.ReadAll(io.LimitReader(req.Body, httputil.MaxBodySize))
		if err != nil {
			httputil.WriteError(w, pgerrors.Wrap(pgerrors.ErrCodeInvalidInput, err, "read body"))
			return
		}
		msg, err := DecodeMessage(data)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		start := time.Now()
		resp := reply(req.Context(), h, msg)
		var herr error
		if !resp.Success {
			herr = errorString(resp.Error)
			logger.Warn("message handler failed", "id", msg.ID, "err", resp.Error)
		}
		observability.Channel().OnDeliver(req.Context(), transportHTTP, msg.ID.String(), time.Since(start), herr)
		httputil.WriteJSON(w, http.StatusOK, resp)
	})
	return r
}

var _ Sender = (*HTTPSender)(nil)
