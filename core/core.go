// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core defines the narrow interface the synchronization core uses
// to drive the scene-graph it adapts. The scene graph itself — layout,
// rasterization, node traversal — is outside this module's scope; Core is
// the seam.
package core

// Frame is a monotonically increasing frame counter, stamped by the
// VSync notifier and threaded through Update and Render so both sides
// agree on which frame they are looking at.
type Frame uint32

// UpdateStatus is the bitset a Core implementation returns from Update,
// telling the synchronizer and the update loop what to do next.
type UpdateStatus uint8

const (
	// HasUpdates indicates the update pass produced a frame Render should
	// consume.
	HasUpdates UpdateStatus = 1 << iota
	// KeepUpdating indicates the scene has animations or pending work and
	// Update should be called again without waiting for a new request.
	KeepUpdating
	// NeedsNotification indicates the Core wants to be told about vsync
	// timing even though it has no visual updates pending.
	NeedsNotification
)

// Has reports whether all of the given flags are set.
func (s UpdateStatus) Has(flags UpdateStatus) bool { return s&flags == flags }

// RenderStatus is passed to Render so it knows what it is being asked to
// draw. The render thread always sets HasUpdates to true; the status
// Update returned for the same frame is not carried through to Render.
type RenderStatus struct {
	Frame      Frame
	HasUpdates bool
}

// Core is the scene-graph collaborator. Implementations are provided by
// the embedder; this package only depends on the interface.
type Core interface {
	// Update advances scene-graph state to produce a frame of draw
	// commands. Times are seconds since an arbitrary epoch, monotonic.
	// Must not touch the graphics context.
	Update(lastFrameSec, thisFrameSec, nextFrameSec float64) UpdateStatus

	// Render executes GPU work for the most recently committed update
	// buffer. Only ever called from the render thread, with a current
	// graphics context.
	Render(status RenderStatus)

	// VSync is informational, called once per accepted vsync sample from
	// a dedicated thread. Implementations must be safe to call from a
	// thread other than Update/Render's.
	VSync(frame Frame, sec, usec uint32)
}

// Sample is one VSync tick: sequence is hardware-provided when available,
// otherwise synthesized from a monotonic clock with a nominal period.
type Sample struct {
	Sequence uint32
	Sec      uint32
	Usec     uint32
	Valid    bool
}
