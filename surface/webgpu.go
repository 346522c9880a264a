// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/wgpu"
)

// WebGPU is a second RenderSurface backend, over a WebGPU surface
// instead of Vulkan. Its RenderSurface implementation exists to exercise
// the same §4.5 polymorphism the spec requires across window, pixmap,
// and native-image backends — here by using a different graphics API
// for the same "window" role, rather than a different target kind.
type WebGPU struct {
	Instance *wgpu.Instance
	Device   *wgpu.Device

	displayHandle, windowHandle uintptr
	width, height               uint32

	surf *wgpu.Surface

	stopped atomic.Bool
	texture *wgpu.SurfaceTexture
}

var _ RenderSurface = (*WebGPU)(nil)

// NewWebGPU wraps platform display/window handles for surface creation;
// see wgpu.Instance.CreateSurface for the per-OS handle conventions.
func NewWebGPU(instance *wgpu.Instance, device *wgpu.Device, displayHandle, windowHandle uintptr, width, height uint32) *WebGPU {
	return &WebGPU{Instance: instance, Device: device, displayHandle: displayHandle, windowHandle: windowHandle, width: width, height: height}
}

func (w *WebGPU) StopRender() { w.stopped.Store(true) }

func (w *WebGPU) InitializeGraphics() error {
	if w.Instance == nil || w.Device == nil {
		return fmt.Errorf("surface: webgpu backend requires an instance and device")
	}
	return nil
}

func (w *WebGPU) CreateSurface() error {
	surf, err := w.Instance.CreateSurface(w.displayHandle, w.windowHandle)
	if err != nil {
		return fmt.Errorf("surface: create wgpu surface: %w", err)
	}
	if err := surf.Configure(w.Device, &wgpu.SurfaceConfiguration{
		Width:  w.width,
		Height: w.height,
	}); err != nil {
		surf.Release()
		return fmt.Errorf("surface: configure wgpu surface: %w", err)
	}
	w.surf = surf
	return nil
}

func (w *WebGPU) DestroySurface() {
	if w.surf == nil {
		return
	}
	w.surf.Unconfigure()
	w.surf.Release()
	w.surf = nil
}

func (w *WebGPU) ReplaceGraphicsSurface() (contextLost bool, err error) {
	w.DestroySurface()
	if err := w.CreateSurface(); err != nil {
		return true, err
	}
	w.stopped.Store(false)
	return true, nil
}

func (w *WebGPU) PreRender(damage []Rect) (clip Rect, ok bool) {
	if w.stopped.Load() || w.surf == nil {
		return Rect{}, false
	}
	texture, suboptimal, err := w.surf.GetCurrentTexture()
	if err != nil {
		return Rect{}, false
	}
	if suboptimal {
		// A resize landed between frames. Nothing here triggers
		// ResizeSurface; this frame is still rendered at the configured
		// size.
		_ = suboptimal
	}
	w.texture = texture
	return Rect{X: 0, Y: 0, W: int32(w.width), H: int32(w.height)}, true
}

func (w *WebGPU) PostRender() error {
	if w.stopped.Load() || w.surf == nil || w.texture == nil {
		return nil
	}
	err := w.surf.Present(w.texture)
	w.texture = nil
	return err
}

func (w *WebGPU) BufferAge() int { return 0 }

func (w *WebGPU) GetPositionSize() (image.Point, image.Point) {
	return image.Point{}, image.Point{X: int(w.width), Y: int(w.height)}
}

func (w *WebGPU) GetDPI() float32 { return 1 }

// Resize updates the configured swapchain dimensions. They take effect
// at the next ReplaceGraphicsSurface, which the Render thread runs for a
// sync.Sync.ResizeSurface or ReplaceSurface; nothing in this module calls
// Resize itself.
func (w *WebGPU) Resize(width, height uint32) {
	w.width, w.height = width, height
}
