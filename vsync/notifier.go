// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vsync

import (
	"time"

	"goki.dev/dali/core"
	"goki.dev/dali/internal/errs"
	"goki.dev/dali/platform"
	syncpkg "goki.dev/dali/sync"
)

// Notifier is the VSync notifier thread: it samples Monitor, stamps a
// frame number, and hands each tick to the synchronizer, informing Core
// along the way.
type Notifier struct {
	Monitor Monitor
	Sync    *syncpkg.Sync
	Core    core.Core

	// NominalPeriod is the synthesized tick period used when no
	// hardware monitor is available.
	NominalPeriod time.Duration

	frame          core.Frame
	hardwareFailed bool
	lastTick       time.Time
}

// NewNotifier builds a Notifier with the given nominal fallback period.
func NewNotifier(monitor Monitor, s *syncpkg.Sync, c core.Core, nominalPeriod time.Duration) *Notifier {
	if monitor == nil {
		monitor = NoHardwareMonitor{}
	}
	return &Notifier{Monitor: monitor, Sync: s, Core: c, NominalPeriod: nominalPeriod}
}

// Run is the notifier's loop: `while (VSyncReady(frame, sec, usec))`.
// Intended to run on its own goroutine; returns when the synchronizer
// reports Stopped.
func (n *Notifier) Run() {
	if err := n.Monitor.Initialize(); err != nil {
		errs.Log(err)
		n.hardwareFailed = true
	}
	defer n.Monitor.Terminate()

	n.lastTick = time.Now()
	for {
		seq, sec, usec, ok := n.tick()
		if !ok {
			errs.Skip("invalid vsync sample, frame counter not advanced")
			continue
		}
		_ = seq
		n.frame++
		n.Core.VSync(n.frame, sec, usec)
		if !n.Sync.VSyncReady(n.frame, sec, usec) {
			return
		}
	}
}

// tick produces one sample, either from hardware or the timer fallback.
func (n *Notifier) tick() (seq, sec, usec uint32, ok bool) {
	if n.Monitor.UseHardware() && !n.hardwareFailed {
		seq, sec, usec, ok = n.Monitor.DoSync()
		if ok {
			return seq, sec, usec, true
		}
		errs.Skip("vsync monitor DoSync failed, falling back to timer mode")
		n.hardwareFailed = true
	}
	return n.timerTick()
}

func (n *Notifier) timerTick() (seq, sec, usec uint32, ok bool) {
	now := time.Now()
	elapsed := now.Sub(n.lastTick)
	period := n.NominalPeriod
	if period <= 0 {
		period = 16667 * time.Microsecond
	}
	if remaining := period - elapsed; remaining > 0 {
		timerSleep(remaining)
	}
	n.lastTick = time.Now()
	s, us := platform.GetTimeMicroseconds()
	return 0, s, us, true
}
