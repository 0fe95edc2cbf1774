package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

func newTestServer(t *testing.T, h Handler) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Mount(MessagesPath, NewHandler(h, nil))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPRoundTrip(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec)

	sender, err := NewHTTPSender(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	want := settings.Reset().WithOffset(-12, 4).WithColor("#9b59b6")
	resp, err := sender.Send(context.Background(), want)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !resp.Success {
		t.Errorf("response = %+v", resp)
	}
	msgs := rec.all()
	if len(msgs) != 1 || msgs[0].Settings != want {
		t.Fatalf("handler received %+v", msgs)
	}
	if resp.ID != msgs[0].ID {
		t.Errorf("response id %v does not match message id %v", resp.ID, msgs[0].ID)
	}
}

func TestHTTPHandlerBarePayload(t *testing.T) {
	rec := &recorder{}
	srv := newTestServer(t, rec)

	res, err := http.Post(srv.URL+MessagesPath, "application/json", strings.NewReader(`{"visible":true}`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var resp Response
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Errorf("response = %+v", resp)
	}
	if msgs := rec.all(); len(msgs) != 1 || msgs[0].Settings != settings.Reset() {
		t.Errorf("handler received %+v", msgs)
	}
}

func TestHTTPHandlerRejectsMalformed(t *testing.T) {
	srv := newTestServer(t, &recorder{})

	res, err := http.Post(srv.URL+MessagesPath, "application/json", bytes.NewBufferString(`{"settings":`))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestHTTPHandlerReportsHandlerError(t *testing.T) {
	srv := newTestServer(t, &recorder{err: pgerrors.New(pgerrors.ErrCodeInternal, "page gone")})
	sender, _ := NewHTTPSender(srv.URL)

	resp, err := sender.Send(context.Background(), settings.Default())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error != "page gone" {
		t.Errorf("response = %+v", resp)
	}
}

func TestHTTPSenderRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(Response{Success: true})
	}))
	defer srv.Close()

	sender, _ := NewHTTPSender(srv.URL, WithRetry(3, time.Millisecond))
	resp, err := sender.Send(context.Background(), settings.Default())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !resp.Success || calls.Load() != 3 {
		t.Errorf("resp = %+v after %d calls", resp, calls.Load())
	}
}

func TestHTTPSenderDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"INVALID_FORMAT","message":"nope"}`))
	}))
	defer srv.Close()

	sender, _ := NewHTTPSender(srv.URL, WithRetry(3, time.Millisecond))
	_, err := sender.Send(context.Background(), settings.Default())
	if !pgerrors.Is(err, pgerrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestHTTPSenderUnreachable(t *testing.T) {
	sender, _ := NewHTTPSender("http://127.0.0.1:1", WithRetry(2, time.Millisecond))
	_, err := sender.Send(context.Background(), settings.Default())
	if !pgerrors.Is(err, pgerrors.ErrCodeNetwork) {
		t.Errorf("error = %v, want NETWORK_ERROR", err)
	}
}

func TestNewHTTPSenderValidatesURL(t *testing.T) {
	if _, err := NewHTTPSender("ftp://example.com"); !pgerrors.Is(err, pgerrors.ErrCodeInvalidURL) {
		t.Errorf("error = %v, want INVALID_URL", err)
	}
}
