// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface defines the RenderSurface contract: the one widening
// point between this core and platform graphics backends. Concrete
// backends live alongside this interface: two window backends (Desktop
// over Vulkan, WebGPU) and the offscreen NativeImage; there is no pixmap
// backend. None of them is reachable from the Update thread.
package surface

import "image"

// Rect is a damage rectangle in surface coordinates, the only "wire
// format" this core has: a contiguous list of these is handed to
// PreRender as the damage region.
type Rect struct {
	X, Y, W, H int32
}

// ToImage converts r to the stdlib image.Rectangle it corresponds to.
func (r Rect) ToImage() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}

// FromImage builds a Rect from a stdlib image.Rectangle.
func FromImage(r image.Rectangle) Rect {
	return Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())}
}

// RenderSurface is implemented by every backend (window and
// native-image-source). The synchronizer never calls these directly; the
// Render thread does, under the protocol the synchronizer enforces.
type RenderSurface interface {
	// InitializeGraphics prepares the surface's graphics objects.
	// Idempotent; called from the Render thread only.
	InitializeGraphics() error

	// CreateSurface creates the presentable surface. Render thread only.
	CreateSurface() error

	// DestroySurface releases the presentable surface. Render thread only.
	DestroySurface()

	// ReplaceGraphicsSurface recreates GL/Vk/Vulkan objects for a
	// surface-replace transition. Returns true if the prior graphics
	// context was lost as a result (the in-flight frame must be
	// discarded).
	ReplaceGraphicsSurface() (contextLost bool, err error)

	// PreRender begins a frame. damage holds the caller's accumulated
	// damage from the previous PostRender; clip receives the region the
	// backend actually intends to update (may be the full surface).
	// Returns false to skip the frame entirely (e.g. zero-size surface).
	PreRender(damage []Rect) (clip Rect, ok bool)

	// PostRender presents the frame. For offscreen/native-image
	// variants this also drives the producer/consumer handshake with
	// the event thread.
	PostRender() error

	// BufferAge reports how many frames ago the current back buffer was
	// last presented, or 0 if unknown, so Render can compute minimal
	// damage.
	BufferAge() int

	// GetPositionSize is a thread-safe read-only accessor.
	GetPositionSize() (pos, size image.Point)

	// GetDPI is a thread-safe read-only accessor.
	GetDPI() float32
}
