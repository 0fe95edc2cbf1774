package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{pgerrors.New(pgerrors.ErrCodeInvalidSettings, "bad"), http.StatusBadRequest},
		{pgerrors.New(pgerrors.ErrCodeInvalidViewport, "bad"), http.StatusBadRequest},
		{pgerrors.New(pgerrors.ErrCodeNotFound, "missing"), http.StatusNotFound},
		{pgerrors.New(pgerrors.ErrCodeStorageUnavailable, "down"), http.StatusServiceUnavailable},
		{pgerrors.New(pgerrors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{pgerrors.New(pgerrors.ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, pgerrors.New(pgerrors.ErrCodeInvalidUnit, "baseLine: %q", "8"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	want := `{"code":"INVALID_UNIT","message":"baseLine: \"8\""}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestWriteErrorUncoded(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("boom"))
	if !strings.Contains(rec.Body.String(), `"INTERNAL_ERROR"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     bool
	}{
		{"ok", `{"name":"grid"}`, "application/json", false},
		{"no content type", `{"name":"grid"}`, "", false},
		{"charset", `{"name":"grid"}`, "application/json; charset=utf-8", false},
		{"unknown field", `{"nme":"grid"}`, "application/json", true},
		{"malformed", `{"name":`, "application/json", true},
		{"empty", ``, "application/json", true},
		{"wrong type", `name=grid`, "application/x-www-form-urlencoded", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			var p payload
			err := DecodeJSON(req, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !pgerrors.Is(err, pgerrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want INVALID_FORMAT", pgerrors.GetCode(err))
			}
			if err == nil && p.Name != "grid" {
				t.Errorf("Name = %q", p.Name)
			}
		})
	}
}

func TestReadError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Status:     "503 Service Unavailable",
		Body:       io.NopCloser(strings.NewReader(`{"code":"STORAGE_UNAVAILABLE","message":"redis down"}`)),
	}
	err := ReadError(resp)
	if !pgerrors.Is(err, pgerrors.ErrCodeStorageUnavailable) {
		t.Errorf("error = %v, want STORAGE_UNAVAILABLE", err)
	}
	if pgerrors.UserMessage(err) != "redis down" {
		t.Errorf("message = %q", pgerrors.UserMessage(err))
	}

	resp = &http.Response{
		StatusCode: http.StatusBadGateway,
		Status:     "502 Bad Gateway",
		Body:       io.NopCloser(strings.NewReader("upstream gone")),
	}
	err = ReadError(resp)
	if !pgerrors.Is(err, pgerrors.ErrCodeNetwork) || !strings.Contains(err.Error(), "upstream gone") {
		t.Errorf("error = %v", err)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 0, true, 1, false},
		{"success after retries", 2, true, 3, false},
		{"exhausted", 5, true, 3, true},
		{"not retryable", 5, false, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return &RetryableError{Err: errors.New("transient")}
					}
					return errors.New("permanent")
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRetryableStatus(t *testing.T) {
	for code, want := range map[int]bool{200: false, 400: false, 429: true, 500: true, 503: true} {
		if got := RetryableStatus(code); got != want {
			t.Errorf("RetryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"marked", &RetryableError{Err: errors.New("reset by peer")}, true},
		{"transient code", pgerrors.New(pgerrors.ErrCodeTimeout, "slow"), true},
		{"invalid code", pgerrors.New(pgerrors.ErrCodeInvalidSettings, "bad"), false},
		{"plain", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}
