package filesource

import (
	"context"
	"testing"

	"github.com/user/timemark/pkg/mocks"
)

func TestSource_Acquire(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile("photos/in.jpg", []byte{0xFF, 0xD8, 0xFF})

	src := New("photos/in.jpg", fs)
	data, err := src.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if len(data) != 3 || data[0] != 0xFF {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestSource_AcquireMissingFile(t *testing.T) {
	src := New("photos/missing.jpg", mocks.NewFileSystem())

	if _, err := src.Acquire(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSource_AcquireCanceledContext(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile("photos/in.jpg", []byte{1})
	src := New("photos/in.jpg", fs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Acquire(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}
