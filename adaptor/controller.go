// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package adaptor provides the Controller facade: the single entry
// point the event (main) thread uses to drive the synchronization core,
// grounded on the teacher's App.Main/RunOnMain lifecycle but generalized
// from "own a window" to "own the Update/Render/VSync worker triad".
package adaptor

import (
	"fmt"
	"time"

	"goki.dev/dali/config"
	"goki.dev/dali/core"
	"goki.dev/dali/render"
	syncpkg "goki.dev/dali/sync"
	"goki.dev/dali/surface"
	"goki.dev/dali/update"
	"goki.dev/dali/vsync"
)

// Controller is the adaptor-level facade used by the embedding
// application: Initialize / Start / Pause / Resume / Stop /
// RequestUpdate / RequestUpdateOnce / ReplaceSurface / ResizeSurface /
// SetRenderRefreshRate.
type Controller struct {
	sync    *syncpkg.Sync
	core    core.Core
	surface surface.RenderSurface
	monitor vsync.Monitor
	tuning  config.Tuning

	updateThread *update.Thread
	renderThread *render.Thread
	notifier     *vsync.Notifier

	updateDone chan struct{}
	renderDone chan struct{}
	vsyncDone  chan struct{}
}

// New builds a Controller. Nothing runs until Initialize and Start are
// called.
func New(c core.Core, surf surface.RenderSurface, monitor vsync.Monitor, tuning config.Tuning) *Controller {
	return &Controller{
		sync:    syncpkg.New(),
		core:    c,
		surface: surf,
		monitor: monitor,
		tuning:  tuning,
	}
}

// SetObserver attaches a frame-pacing telemetry observer.
func (ctl *Controller) SetObserver(o syncpkg.Observer) {
	ctl.sync.SetObserver(o)
}

// Initialize validates configuration and moves the core to Initialising.
// This is the one call in the Controller's contract that can fail: a
// Configuration-invalid error (§7) here means Start will never reach
// Running.
func (ctl *Controller) Initialize() error {
	if ctl.core == nil {
		return fmt.Errorf("adaptor: no Core configured")
	}
	if ctl.surface != nil {
		_, size := ctl.surface.GetPositionSize()
		if size.X <= 0 || size.Y <= 0 {
			return fmt.Errorf("adaptor: surface has zero or negative size %v", size)
		}
	}
	ctl.sync.Initialise()
	ctl.sync.SetRenderRefreshRate(ctl.tuning.VSyncsPerRender)
	ctl.updateThread = &update.Thread{Sync: ctl.sync, Core: ctl.core}
	ctl.renderThread = render.NewThread(ctl.sync, ctl.core, ctl.surface, ctl.tuning.DamageRingSize)
	nominal := time.Duration(ctl.tuning.NominalPeriodMicros) * time.Microsecond
	ctl.notifier = vsync.NewNotifier(ctl.monitor, ctl.sync, ctl.core, nominal)
	return nil
}

// Start moves the core to Running and spawns the three worker threads.
func (ctl *Controller) Start() {
	ctl.updateDone = make(chan struct{})
	ctl.renderDone = make(chan struct{})
	ctl.vsyncDone = make(chan struct{})

	go func() { ctl.updateThread.Run(); close(ctl.updateDone) }()
	go func() { ctl.renderThread.Run(); close(ctl.renderDone) }()
	go func() { ctl.notifier.Run(); close(ctl.vsyncDone) }()

	ctl.sync.Start()
}

// Pause moves the core to Paused. In-flight passes finish; the next
// pass on each worker blocks.
func (ctl *Controller) Pause() { ctl.sync.Pause() }

// Resume moves the core back to Running.
func (ctl *Controller) Resume() { ctl.sync.Resume() }

// Stop requests shutdown and blocks until all three worker threads have
// exited, joining in Update, then Render, then VSync order per §5's
// ordering guarantee (each depends only on threads already joined).
func (ctl *Controller) Stop() {
	ctl.sync.Stop()
	if ctl.updateDone != nil {
		<-ctl.updateDone
		<-ctl.renderDone
		<-ctl.vsyncDone
	}
}

// RequestUpdate asynchronously wakes a sleeping Update thread.
func (ctl *Controller) RequestUpdate() { ctl.sync.UpdateRequest() }

// RequestUpdateOnce allows exactly one extra Update pass while Paused.
func (ctl *Controller) RequestUpdateOnce() { ctl.sync.UpdateOnce() }

// SetRenderRefreshRate configures frame skipping: Render runs at most
// once per n VSyncs.
func (ctl *Controller) SetRenderRefreshRate(n int) { ctl.sync.SetRenderRefreshRate(n) }

// ReplaceSurface atomically swaps the render target to newSurface. It
// blocks until the Render thread has torn down the old surface and
// taken up the new one, or returns cancelled=true if Stop raced it.
// stopOld, if non-nil, is invoked under the synchronizer's lock before
// the handshake begins, so the old surface can mark itself
// non-presentable before any other thread observes the state change —
// see sync.Sync.ReplaceSurface's doc comment for the race this closes.
func (ctl *Controller) ReplaceSurface(newSurface surface.RenderSurface, stopOld func()) (cancelled bool) {
	cancelled = ctl.sync.ReplaceSurface(newSurface, stopOld)
	if !cancelled {
		ctl.surface = newSurface
	}
	return cancelled
}

// ResizeSurface re-creates the current surface's swapchain at its
// current size, blocking until the Render thread has done so.
func (ctl *Controller) ResizeSurface() (cancelled bool) {
	return ctl.sync.ResizeSurface()
}

// State returns the current synchronizer state, for diagnostics.
func (ctl *Controller) State() syncpkg.State { return ctl.sync.State() }
