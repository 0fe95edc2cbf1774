package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/storage"
)

func quietLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestRepositoryLoadMissingReturnsDefaults(t *testing.T) {
	repo := NewRepository(storage.NewMemory())

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestRepositorySaveLoad(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	repo := NewRepository(mem)

	s := Default().WithBaseLine("16px").WithVisible(true).WithOffset(-8, 4)
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, ok, _ := mem.Get(ctx, StorageKey)
	if !ok {
		t.Fatalf("payload not stored under %q", StorageKey)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("stored payload is not JSON: %v", err)
	}
	if decoded["baseLine"] != "16px" {
		t.Errorf("stored baseLine = %v", decoded["baseLine"])
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRepositoryLoadMergesPartialPayload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	_ = mem.Set(ctx, StorageKey, []byte(`{"color":"#e74c3c","visible":true}`))

	got, err := NewRepository(mem).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Default().WithColor("#e74c3c").WithVisible(true)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRepositoryLoadCorruptPayload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	_ = mem.Set(ctx, StorageKey, []byte(`{not json`))

	var logs bytes.Buffer
	got, err := NewRepository(mem, WithLogger(quietLogger(&logs))).Load(ctx)
	if err != nil {
		t.Fatalf("corrupt payload should not be an error: %v", err)
	}
	if got != Default() {
		t.Errorf("corrupt payload should yield defaults, got %+v", got)
	}
	if logs.Len() == 0 {
		t.Error("corrupt payload should be logged")
	}
}

func TestRepositorySaveRejectsInvalid(t *testing.T) {
	mem := storage.NewMemory()
	repo := NewRepository(mem)

	err := repo.Save(context.Background(), Default().WithBaseLine("8"))
	if !pgerrors.Is(err, pgerrors.ErrCodeInvalidSettings) {
		t.Errorf("Save error = %v, want INVALID_SETTINGS", err)
	}
	if mem.Len() != 0 {
		t.Error("invalid settings must not be stored")
	}
}

func TestRepositoryUpdateAndReset(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory(), WithKey("custom"))

	got, err := repo.Update(ctx, func(s GridSettings) GridSettings {
		return s.WithAlpha(60).WithColor("#2ecc71")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Alpha != 60 || got.Color != "#2ecc71" {
		t.Errorf("Update = %+v", got)
	}

	reset, err := repo.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset != Reset() {
		t.Errorf("Reset = %+v", reset)
	}
	loaded, _ := repo.Load(ctx)
	if loaded != Reset() {
		t.Errorf("Load after Reset = %+v", loaded)
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (brokenStore) Set(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (brokenStore) Delete(context.Context, string) error      { return nil }
func (brokenStore) Close() error                              { return nil }

func TestRepositoryLoadStoreFailure(t *testing.T) {
	got, err := NewRepository(brokenStore{}).Load(context.Background())
	if !pgerrors.Is(err, pgerrors.ErrCodeStorageUnavailable) {
		t.Errorf("error = %v, want STORAGE_UNAVAILABLE", err)
	}
	if got != Default() {
		t.Error("failed Load should still return defaults")
	}
}
