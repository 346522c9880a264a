// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package update implements the Update thread: it never touches the
// graphics context, and derives its frame timing entirely from the most
// recent VSync sample the synchronizer holds.
package update

import (
	"goki.dev/dali/core"
	syncpkg "goki.dev/dali/sync"
)

// Thread is the Update thread. Time inputs for Core.Update are derived
// from consecutive VSync samples: lastFrameSec is the previous pass's
// sample, thisFrameSec is the current one, and nextFrameSec projects
// forward by the interval between those two samples (1/60 s when that
// interval is not positive), giving Core a look-ahead hint for animation.
type Thread struct {
	Sync *syncpkg.Sync
	Core core.Core

	lastSec float64
	havePrev bool
}

// Run is the Update loop: `while (UpdateReady() == RunUpdate) { ... }`.
// Intended to run on its own goroutine.
func (t *Thread) Run() {
	for t.Sync.UpdateReady() == syncpkg.RunUpdate {
		t.runPass()
	}
}

func (t *Thread) runPass() {
	frame, sample := t.Sync.Sample()
	thisSec := sampleSeconds(sample)
	lastSec := thisSec
	if t.havePrev {
		lastSec = t.lastSec
	}
	// nextFrameSec is a look-ahead hint; the period between samples is
	// the best available estimate of the next one, with a one-period
	// fallback before the second sample ever arrives.
	period := thisSec - lastSec
	if period <= 0 {
		period = 1.0 / 60.0
	}
	nextSec := thisSec + period

	// The returned status is discarded and UpdateReadyToRender is called
	// unconditionally, matching the reference loop; KeepUpdating/
	// NeedsNotification never re-arm an update pass themselves. That re-arming is
	// deliberately left to the VSync tie-in while Running, and to an
	// explicit RequestUpdateOnce while Paused — doing it here would let a
	// Core that always reports KeepUpdating defeat the Paused-quiescence
	// guarantee (spec P5).
	_ = t.Core.Update(lastSec, thisSec, nextSec)
	t.lastSec = thisSec
	t.havePrev = true

	t.Sync.UpdateReadyToRender()
	_ = frame
}

func sampleSeconds(s core.Sample) float64 {
	return float64(s.Sec) + float64(s.Usec)/1e6
}
