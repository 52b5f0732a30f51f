package mocks

import (
	"image"
	"sync"

	"github.com/user/timemark/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	LayoutJSON    []byte
	Mask          image.Image
	BlurLayer     image.Image
	ComposedFrame image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveLayoutJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LayoutJSON = data
	return nil
}

func (m *DebugSink) SaveMask(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mask = img
	return nil
}

func (m *DebugSink) SaveBlurLayer(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BlurLayer = img
	return nil
}

func (m *DebugSink) SaveComposedFrame(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ComposedFrame = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
