// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sync implements the ThreadSynchronization core: the state
// machine and condition variables that mediate every blocking
// interaction between the Update thread, the Render thread, the VSync
// notifier, and the event (main) thread.
//
// All externally visible operations are serialized by a single mutex
// with three condition variables bound to it. The Update thread waits on
// cvUpdate; the Render thread, and the event thread inside
// ReplaceSurface/ResizeSurface, wait on cvRender. The VSync notifier
// blocks in its monitor or timer sleep rather than on the mutex, so
// cvVSync has no waiter here. Start, Stop, and Resume broadcast on all
// three; every other operation wakes only cvUpdate or cvRender.
package sync

import (
	"log/slog"
	stdsync "sync"

	"goki.dev/dali/core"
	"goki.dev/dali/surface"
)

// UpdateVerdict is returned by UpdateReady.
type UpdateVerdict int

const (
	RunUpdate UpdateVerdict = iota
	ExitUpdate
)

// RenderActionKind is the kind of work RenderReady is asking the render
// thread to do.
type RenderActionKind int

const (
	ActionExit RenderActionKind = iota
	ActionRunRender
	ActionReplaceSurface
	ActionResize
)

// RenderAction is the verdict RenderReady returns.
type RenderAction struct {
	Kind       RenderActionKind
	Frame      core.Frame
	NewSurface surface.RenderSurface
}

// Sync is the ThreadSynchronization core. Zero value is not usable; use
// New.
type Sync struct {
	mu       stdsync.Mutex
	cvUpdate *stdsync.Cond
	cvRender *stdsync.Cond
	cvVSync  *stdsync.Cond

	state State
	exit  bool

	requestCount int
	runOnce      bool

	vsyncsPerRender int
	vsyncCounter    uint64

	// sampleFrame/sample are the most recent VSync deposit, read by
	// UpdateReady at the top of each pass.
	sampleFrame core.Frame
	sample      core.Sample

	// updatePassFrame is the sample frame number the Update thread is
	// currently working from (or last worked from); comparing it to
	// sampleFrame is how UpdateReady paces Update to VSync while
	// Running, without an explicit busy-loop.
	updatePassFrame core.Frame

	// frameAvailable/readyFrame are set by UpdateReadyToRender and
	// consumed by RenderReady.
	frameAvailable bool
	readyFrame     core.Frame

	// surface-replace / resize handshake.
	pendingSurface surface.RenderSurface
	stopOld        func()
	surfaceOpDone  bool

	observer Observer
}

// New creates a Sync in the Stopped state.
func New() *Sync {
	s := &Sync{}
	s.cvUpdate = stdsync.NewCond(&s.mu)
	s.cvRender = stdsync.NewCond(&s.mu)
	s.cvVSync = stdsync.NewCond(&s.mu)
	s.vsyncsPerRender = 1
	return s
}

// SetObserver attaches (or clears, with nil) the frame-pacing observer.
func (s *Sync) SetObserver(o Observer) {
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// State returns the current state. For diagnostics/tests; the state
// machine itself never consults this without holding the lock.
func (s *Sync) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Sync) transition(to State) bool {
	if !legal(s.state, to) {
		slog.Warn("sync: illegal state transition ignored", "from", s.state, "to", to)
		return false
	}
	from := s.state
	s.state = to
	if s.observer != nil {
		obs := s.observer
		s.mu.Unlock()
		obs.StateChanged(from, to)
		s.mu.Lock()
	}
	return true
}

// Initialise moves Stopped -> Initialising and resets all counters.
// Called by the event thread.
func (s *Sync) Initialise() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.transition(Initialising) {
		return
	}
	s.exit = false
	s.requestCount = 0
	s.runOnce = false
	s.vsyncCounter = 0
	s.frameAvailable = false
	s.sampleFrame = 0
	s.updatePassFrame = 0
}

// Start moves Initialising -> Running and wakes every waiter. Called by
// the event thread.
func (s *Sync) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.transition(Running) {
		return
	}
	s.cvUpdate.Broadcast()
	s.cvRender.Broadcast()
	s.cvVSync.Broadcast()
}

// Stop moves any state -> Stopped. Idempotent: calling it twice, or
// calling it with no threads ever started, is a no-op the second time.
// Always wakes every waiter, including one blocked inside ReplaceSurface
// or ResizeSurface, so the event thread is never left hanging.
func (s *Sync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return
	}
	from := s.state
	s.state = Stopped
	s.exit = true
	s.cvUpdate.Broadcast()
	s.cvRender.Broadcast()
	s.cvVSync.Broadcast()
	if s.observer != nil {
		obs := s.observer
		s.mu.Unlock()
		obs.StateChanged(from, Stopped)
		s.mu.Lock()
	}
}

// Pause moves Running -> Paused. Does not preempt a pass already in
// flight; the next UpdateReady/RenderReady call blocks.
func (s *Sync) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition(Paused)
}

// Resume moves Paused -> Running and wakes every waiter.
func (s *Sync) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.transition(Running) {
		return
	}
	s.cvUpdate.Broadcast()
	s.cvRender.Broadcast()
	s.cvVSync.Broadcast()
}

// UpdateRequest increments the update-request counter and wakes the
// Update thread. Safe to call repeatedly; requests coalesce onto the
// counter rather than being lost.
func (s *Sync) UpdateRequest() {
	s.mu.Lock()
	s.requestCount++
	s.cvUpdate.Signal()
	s.mu.Unlock()
}

// UpdateOnce sets the run-once flag, allowing exactly one extra Update
// pass while Paused.
func (s *Sync) UpdateOnce() {
	s.mu.Lock()
	s.runOnce = true
	s.cvUpdate.Signal()
	s.mu.Unlock()
}

// SetRenderRefreshRate sets the number of VSyncs per render. Values less
// than 1 are clamped to 1 and logged, since the frame-skip arithmetic
// divides by this value.
func (s *Sync) SetRenderRefreshRate(n int) {
	if n < 1 {
		slog.Warn("sync: SetRenderRefreshRate clamped to 1", "requested", n)
		n = 1
	}
	s.mu.Lock()
	s.vsyncsPerRender = n
	s.mu.Unlock()
}

// ReplaceSurface runs the synchronous surface-replacement handshake: it
// optionally invokes stopOld and stores the pending surface (both under
// the lock and before SurfaceReplacing is set, so no other thread can
// observe the new state before the old surface has been told to stop —
// closing the race between the event thread's external StopRender call
// and the Render thread's next PreRender), then sets SurfaceReplacing,
// signals the render thread, and blocks until it acknowledges via
// RenderFinished. If Stop is called while this is blocked, it returns
// cancelled=true instead of hanging.
func (s *Sync) ReplaceSurface(newSurface surface.RenderSurface, stopOld func()) (cancelled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !legal(s.state, SurfaceReplacing) {
		slog.Warn("sync: illegal state transition ignored", "from", s.state, "to", SurfaceReplacing)
		return false
	}
	if stopOld != nil {
		stopOld()
	}
	s.pendingSurface = newSurface
	s.surfaceOpDone = false
	s.transition(SurfaceReplacing)
	s.cvRender.Broadcast()
	for !s.surfaceOpDone && s.state != Stopped {
		s.cvRender.Wait()
	}
	cancelled = s.state == Stopped
	s.pendingSurface = nil
	if !cancelled {
		s.transition(Running)
	}
	return cancelled
}

// ResizeSurface runs the synchronous resize handshake, symmetric to
// ReplaceSurface but without swapping the surface handle.
func (s *Sync) ResizeSurface() (cancelled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.transition(Resizing) {
		return false
	}
	s.surfaceOpDone = false
	s.cvRender.Broadcast()
	for !s.surfaceOpDone && s.state != Stopped {
		s.cvRender.Wait()
	}
	cancelled = s.state == Stopped
	if !cancelled {
		s.transition(Running)
	}
	return cancelled
}

// UpdateReady is called by the Update thread at the top of every pass.
// It blocks while Paused with no pending work, while Initialising, and
// — while Running — until a new VSync sample has arrived since the last
// pass this thread consumed, unless a request or run-once is pending.
// That last rule is what ties Update's cadence to VSync without a
// wall-clock wait of its own; see DESIGN.md for why the literal
// operation table alone under-specifies this.
func (s *Sync) UpdateReady() UpdateVerdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.exit {
			return ExitUpdate
		}
		if s.state == Initialising {
			s.cvUpdate.Wait()
			continue
		}
		hasWork := s.runOnce || s.requestCount > 0
		if s.state == Paused {
			if hasWork {
				break
			}
			s.cvUpdate.Wait()
			continue
		}
		// Running, SurfaceReplacing, and Resizing: Update is
		// unaffected by a surface transition in progress.
		if hasWork || s.sampleFrame != s.updatePassFrame {
			break
		}
		s.cvUpdate.Wait()
	}
	if s.runOnce {
		s.runOnce = false
	} else if s.requestCount > 0 {
		s.requestCount--
	}
	s.updatePassFrame = s.sampleFrame
	return RunUpdate
}

// Sample returns the VSync sample the current Update pass should use to
// compute lastFrameSec/thisFrameSec/nextFrameSec. Call after UpdateReady
// returns RunUpdate.
func (s *Sync) Sample() (core.Frame, core.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePassFrame, s.sample
}

// UpdateReadyToRender is called by the Update thread at the end of every
// pass. It stamps the frame it just produced and wakes the Render
// thread.
func (s *Sync) UpdateReadyToRender() {
	s.mu.Lock()
	s.readyFrame = s.updatePassFrame
	s.frameAvailable = true
	s.cvRender.Broadcast()
	s.mu.Unlock()
}

// RenderReady is called by the Render thread whenever it is ready for
// its next action. It blocks until a frame is ready to present (gated by
// the VSyncs-per-render divisor) or the state requires a surface
// transition or exit.
func (s *Sync) RenderReady() RenderAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.exit {
			return RenderAction{Kind: ActionExit}
		}
		if s.state == SurfaceReplacing {
			return RenderAction{Kind: ActionReplaceSurface, NewSurface: s.pendingSurface}
		}
		if s.state == Resizing {
			return RenderAction{Kind: ActionResize}
		}
		if s.frameAvailable && s.vsyncCounter%uint64(s.vsyncsPerRender) == 0 {
			s.frameAvailable = false
			return RenderAction{Kind: ActionRunRender, Frame: s.readyFrame}
		}
		s.cvRender.Wait()
	}
}

// RenderFinished acknowledges the action RenderReady returned. If that
// action was the pending surface replace or resize, this wakes the event
// thread blocked in ReplaceSurface/ResizeSurface; a render pass that was
// already in flight when the surface operation began does not.
func (s *Sync) RenderFinished(action RenderAction, presented bool) {
	s.mu.Lock()
	wasSurfaceOp := (s.state == SurfaceReplacing && action.Kind == ActionReplaceSurface) ||
		(s.state == Resizing && action.Kind == ActionResize)
	if wasSurfaceOp {
		s.surfaceOpDone = true
		s.cvRender.Broadcast()
	}
	obs := s.observer
	frame := action.Frame
	s.mu.Unlock()
	if presented && action.Kind == ActionRunRender && obs != nil {
		obs.FramePresented(frame)
	}
}

// VSyncReady is called by the VSync notifier for every valid sample; the
// notifier is responsible for skipping invalid ones before reaching
// here (§4.4: "do not advance the frame counter for invalid samples").
// Returns false to tell the notifier to exit.
func (s *Sync) VSyncReady(frame core.Frame, sec, usec uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return false
	}
	s.sampleFrame = frame
	s.sample = core.Sample{Sequence: uint32(frame), Sec: sec, Usec: usec, Valid: true}
	s.vsyncCounter++
	s.cvUpdate.Broadcast()
	if s.frameAvailable && s.vsyncCounter%uint64(s.vsyncsPerRender) == 0 {
		s.cvRender.Broadcast()
	}
	return s.state != Stopped
}
