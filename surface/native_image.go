// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"image"
	"sync"
)

// NativeImage is the offscreen/native-image-source RenderSurface
// backend: instead of presenting to a window, it hands completed
// buffers to a consumer (typically the event thread embedding this as a
// widget), using the producer/consumer handshake in Handshake.
type NativeImage struct {
	mu      sync.Mutex
	buffers []*image.RGBA
	produce int // index of the buffer Render is currently writing
	consume int // index of the buffer most recently handed to the consumer

	width, height int

	// SyncMode, when true, makes PostRender block until the consumer
	// calls Handshake.Complete; when false, PostRender returns as soon
	// as it has handed off the buffer, and the consumer drains
	// Handshake.Produced() at its own pace.
	SyncMode bool

	Handshake *Handshake
}

var _ RenderSurface = (*NativeImage)(nil)

// NewNativeImage creates a double-buffered offscreen surface of the
// given size. It always has exactly two buffers, the minimum that
// satisfies invariant I2; buffer ages are not tracked (BufferAge
// reports 0).
func NewNativeImage(width, height int) *NativeImage {
	n := &NativeImage{
		width: width, height: height,
		Handshake: NewHandshake(),
	}
	n.buffers = []*image.RGBA{
		image.NewRGBA(image.Rect(0, 0, width, height)),
		image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	return n
}

func (n *NativeImage) InitializeGraphics() error { return nil }

func (n *NativeImage) CreateSurface() error { return nil }

func (n *NativeImage) DestroySurface() {}

func (n *NativeImage) ReplaceGraphicsSurface() (contextLost bool, err error) {
	return false, nil
}

// PreRender always accepts the frame; offscreen surfaces have no
// concept of "not visible".
func (n *NativeImage) PreRender(damage []Rect) (clip Rect, ok bool) {
	return Rect{X: 0, Y: 0, W: int32(n.width), H: int32(n.height)}, true
}

// Buffer returns the buffer Core.Render should draw into for the
// current pass.
func (n *NativeImage) Buffer() *image.RGBA {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.buffers[n.produce]
}

// PostRender hands the just-produced buffer to the consumer and
// advances to the next one, waiting for acknowledgment in sync mode.
func (n *NativeImage) PostRender() error {
	n.mu.Lock()
	produced := n.produce
	n.consume = produced
	n.produce = (n.produce + 1) % len(n.buffers)
	n.mu.Unlock()

	n.Handshake.Started()
	if n.SyncMode {
		n.Handshake.WaitForCompletion()
	}
	return nil
}

// ConsumeBuffer returns the most recently produced buffer, for the
// consumer (event thread) to read. Call after observing
// Handshake.Produced(), and call Handshake.Complete() once done with it
// in sync mode.
func (n *NativeImage) ConsumeBuffer() *image.RGBA {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.buffers[n.consume]
}

func (n *NativeImage) BufferAge() int { return 0 }

func (n *NativeImage) GetPositionSize() (image.Point, image.Point) {
	return image.Point{}, image.Point{X: n.width, Y: n.height}
}

func (n *NativeImage) GetDPI() float32 { return 96 }
