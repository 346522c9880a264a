// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"goki.dev/vgpu/v2/vdraw"
	"goki.dev/vgpu/v2/vgpu"
)

// Desktop is the window RenderSurface backend: a glfw-owned window
// presenting through a Vulkan swapchain via vgpu, matching the teacher's
// driver/desktop window/Vulkan wiring. Only the Render thread may call
// its RenderSurface methods. It installs no glfw callbacks of its own;
// geometry is read from the window when the surface is created and on
// each PreRender.
type Desktop struct {
	GPU *vgpu.GPU
	win *glfw.Window

	surf *vgpu.Surface
	draw vdraw.Drawer

	// stopped is set under the synchronizer's lock during
	// ReplaceSurface's stopOld callback, closing the race between the
	// event thread asking this surface to stop and the Render thread's
	// next PostRender (§9 open question).
	stopped atomic.Bool

	pos, size image.Point
	dpi       float32
}

var _ RenderSurface = (*Desktop)(nil)

// NewDesktop wraps an already-created glfw window. The window must have
// been created with glfw.ClientAPI = glfw.NoAPI, since presentation goes
// through the Vulkan swapchain, not GL.
func NewDesktop(gpu *vgpu.GPU, win *glfw.Window) *Desktop {
	return &Desktop{GPU: gpu, win: win}
}

// StopRender marks this surface as no longer presentable. Intended to be
// passed as the stopOld callback to sync.Sync.ReplaceSurface.
func (d *Desktop) StopRender() {
	d.stopped.Store(true)
}

func (d *Desktop) InitializeGraphics() error {
	if d.GPU == nil || d.win == nil {
		return fmt.Errorf("surface: desktop backend requires a GPU and window")
	}
	return nil
}

func (d *Desktop) CreateSurface() error {
	surfPtr, err := d.win.CreateWindowSurface(d.GPU.Instance, nil)
	if err != nil {
		return fmt.Errorf("surface: create window surface: %w", err)
	}
	d.surf = vgpu.NewSurface(d.GPU, vk.SurfaceFromPointer(surfPtr))
	d.draw.YIsDown = true
	d.draw.ConfigSurface(d.surf, vgpu.MaxTexturesPerSet)
	w, h := d.win.GetFramebufferSize()
	d.size = image.Point{X: w, Y: h}
	return nil
}

func (d *Desktop) DestroySurface() {
	if d.surf == nil {
		return
	}
	vk.DeviceWaitIdle(d.surf.Device.Device)
	d.draw.Destroy()
	d.surf.Destroy()
	d.surf = nil
}

func (d *Desktop) ReplaceGraphicsSurface() (contextLost bool, err error) {
	d.DestroySurface()
	if err := d.CreateSurface(); err != nil {
		return true, err
	}
	d.stopped.Store(false)
	return true, nil
}

// PreRender acquires the swapchain image via d.draw.StartDraw, matching
// core/renderwindow.go's `if !drw.StartDraw(0) { return }` guard — a
// false return (an outdated/lost swapchain) means this frame is skipped
// rather than presented.
func (d *Desktop) PreRender(damage []Rect) (clip Rect, ok bool) {
	if d.stopped.Load() || d.surf == nil {
		return Rect{}, false
	}
	w, h := d.win.GetFramebufferSize()
	if w == 0 || h == 0 {
		return Rect{}, false
	}
	if !d.draw.StartDraw(0) {
		return Rect{}, false
	}
	return Rect{X: 0, Y: 0, W: int32(w), H: int32(h)}, true
}

// PostRender ends and presents the frame d.draw.StartDraw acquired in
// PreRender. EndDraw owns the swapchain submit/present, the same call
// core/renderwindow.go makes once Core.Render has recorded draw commands
// into d.draw's current frame.
func (d *Desktop) PostRender() error {
	if d.stopped.Load() || d.surf == nil {
		return nil
	}
	d.draw.EndDraw()
	return nil
}

func (d *Desktop) BufferAge() int {
	return 0 // vgpu's swapchain does not currently report buffer age.
}

func (d *Desktop) GetPositionSize() (image.Point, image.Point) {
	x, y := d.win.GetPos()
	w, h := d.win.GetFramebufferSize()
	return image.Point{X: x, Y: y}, image.Point{X: w, Y: h}
}

func (d *Desktop) GetDPI() float32 {
	return d.dpi
}

// SetDPI is called by the adaptor's screen-geometry plumbing (outside
// this module's scope) when the monitor DPI is known.
func (d *Desktop) SetDPI(dpi float32) { d.dpi = dpi }

// Drawer exposes the vdraw.Drawer for Core.Render to record into; Core
// is the one excluded collaborator allowed to reach past the narrow
// RenderSurface interface, exactly as driver/desktop exposes
// windowImpl.Drawer() today.
func (d *Desktop) Drawer() *vdraw.Drawer { return &d.draw }
