package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

func init() {
	DefaultBackoff = Backoff{Attempts: 3, Initial: time.Millisecond, Max: 4 * time.Millisecond}
}

// storeContract exercises the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	data, ok, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if ok || data != nil {
		t.Errorf("Get missing = %q, %v; want nil, false", data, ok)
	}

	payload := []byte(`{"baseLine":"8px"}`)
	if err := s.Set(ctx, "plugin.pixelGrid", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err = s.Get(ctx, "plugin.pixelGrid")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || !bytes.Equal(data, payload) {
		t.Errorf("Get = %q, %v; want %q, true", data, ok, payload)
	}

	if err := s.Set(ctx, "plugin.pixelGrid", []byte(`{"baseLine":"16px"}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	data, _, _ = s.Get(ctx, "plugin.pixelGrid")
	if string(data) != `{"baseLine":"16px"}` {
		t.Errorf("Get after overwrite = %q", data)
	}

	if err := s.Delete(ctx, "plugin.pixelGrid"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "plugin.pixelGrid"); ok {
		t.Error("key should be gone after Delete")
	}
	if err := s.Delete(ctx, "plugin.pixelGrid"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	storeContract(t, m)

	ctx := context.Background()
	buf := []byte("abc")
	_ = m.Set(ctx, "k", buf)
	buf[0] = 'x'
	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Memory should copy on Set, got %q", got)
	}

	_ = m.Close()
	if _, _, err := m.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	storeContract(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, _ := NewFileStore(dir)
	if err := s1.Set(ctx, "key", []byte(`{"alpha":50}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s2, _ := NewFileStore(dir)
	data, ok, err := s2.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get from second instance: %q, %v, %v", data, ok, err)
	}
	if string(data) != `{"alpha":50}` {
		t.Errorf("data = %q", data)
	}
}

func TestFileStoreNonJSONPayload(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if err := s.Set(ctx, "raw", []byte("not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, _ := s.Get(ctx, "raw")
	if !ok || string(data) != `"not json"` {
		t.Errorf("Get = %q, %v; want quoted string", data, ok)
	}
}

func TestFileStoreCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	_ = s.Set(ctx, "key", []byte(`{}`))
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry file, got %d", len(entries))
	}
	path := filepath.Join(dir, entries[0].Name())
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := s.Get(ctx, "key"); ok || err != nil {
		t.Errorf("corrupt entry: ok=%v err=%v; want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	work := NewScoped(inner, "profile:work:")
	home := NewScoped(inner, "profile:home:")

	storeContract(t, work)

	_ = work.Set(ctx, "k", []byte("w"))
	_ = home.Set(ctx, "k", []byte("h"))

	if got, _, _ := inner.Get(ctx, "profile:work:k"); string(got) != "w" {
		t.Errorf("inner work key = %q", got)
	}
	if got, _, _ := home.Get(ctx, "k"); string(got) != "h" {
		t.Errorf("home key = %q", got)
	}
	if inner.Len() != 2 {
		t.Errorf("inner should hold 2 keys, got %d", inner.Len())
	}
}

func TestScopedNilInner(t *testing.T) {
	s := NewScoped(nil, "p:")
	storeContract(t, s)
}

// failingStore fails every operation.
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingStore) Set(context.Context, string, []byte) error         { return f.err }
func (f failingStore) Delete(context.Context, string) error              { return f.err }
func (f failingStore) Close() error                                      { return nil }

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func TestFallbackHealthyPrimary(t *testing.T) {
	primary, secondary := NewMemory(), NewMemory()
	f := NewFallback(primary, secondary, quietLogger())
	storeContract(t, f)

	_ = f.Set(context.Background(), "k", []byte("v"))
	if secondary.Len() != 0 {
		t.Error("fallback should not be written while the primary works")
	}
}

func TestFallbackFailingPrimary(t *testing.T) {
	ctx := context.Background()
	secondary := NewMemory()
	var logs bytes.Buffer
	f := NewFallback(failingStore{err: ErrUnavailable}, secondary, log.NewWithOptions(&logs, log.Options{}))

	if err := f.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set should fall back: %v", err)
	}
	got, ok, err := f.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Get = %q, %v, %v", got, ok, err)
	}
	if logs.Len() == 0 {
		t.Error("fallback use should be logged")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("wrapped error should unwrap to ErrUnavailable")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrClosed) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrClosed
	})
	if err != ErrClosed || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestBackoffAttempts(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		wantCalls int
	}{
		{"zero attempts still calls once", 0, 1},
		{"single attempt", 1, 1},
		{"five attempts", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Backoff{Attempts: tt.attempts, Initial: time.Microsecond, Max: time.Microsecond}
			calls := 0
			err := b.Retry(context.Background(), func() error {
				calls++
				return Retryable(ErrUnavailable)
			})
			if !IsRetryable(err) {
				t.Errorf("Retry() = %v, want the last retryable error", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffRetryIf(t *testing.T) {
	permanent := errors.New("permanent")
	tests := []struct {
		name      string
		retryable func(error) bool
		wantCalls int
	}{
		{"predicate accepts", func(error) bool { return true }, 3},
		{"predicate rejects", func(error) bool { return false }, 1},
		{"predicate ignores marks", func(err error) bool { return errors.Is(err, permanent) }, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Backoff{Attempts: 3, Initial: time.Microsecond}
			calls := 0
			err := b.RetryIf(context.Background(), tt.retryable, func() error {
				calls++
				return permanent
			})
			if err != permanent {
				t.Errorf("RetryIf() = %v, want the last error", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRedisStoreUnreachableIsRetryable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewRedisStoreFromClient(client, "test:")
	defer s.Close()

	_, _, err := s.Get(context.Background(), "k")
	if err == nil {
		t.Fatal("Get against an unreachable server should fail")
	}
	if !IsRetryable(err) {
		t.Errorf("connection failure should be retryable: %v", err)
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("connection failure should wrap ErrUnavailable: %v", err)
	}
}
