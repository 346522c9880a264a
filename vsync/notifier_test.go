// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vsync

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goki.dev/dali/core"
	syncpkg "goki.dev/dali/sync"
)

type noopCore struct{ vsyncs atomic.Int32 }

func (c *noopCore) Update(float64, float64, float64) core.UpdateStatus { return 0 }
func (c *noopCore) Render(core.RenderStatus)                          {}
func (c *noopCore) VSync(core.Frame, uint32, uint32)                  { c.vsyncs.Add(1) }

// flakyMonitor reports hardware support but fails every DoSync, exercising
// the fallback-to-timer path.
type flakyMonitor struct{ initialized atomic.Bool }

func (f *flakyMonitor) Initialize() error { f.initialized.Store(true); return nil }
func (f *flakyMonitor) Terminate()        {}
func (f *flakyMonitor) UseHardware() bool { return true }
func (f *flakyMonitor) DoSync() (uint32, uint32, uint32, bool) {
	return 0, 0, 0, false
}

func TestNotifierFallsBackToTimerOnHardwareFailure(t *testing.T) {
	s := syncpkg.New()
	s.Initialise()
	s.Start()
	defer s.Stop()

	c := &noopCore{}
	mon := &flakyMonitor{}
	n := NewNotifier(mon, s, c, time.Millisecond)

	done := make(chan struct{})
	go func() { n.Run(); close(done) }()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && c.vsyncs.Load() < 3 {
		time.Sleep(time.Millisecond)
	}
	assert.True(t, mon.initialized.Load())
	assert.GreaterOrEqual(t, c.vsyncs.Load(), int32(3))

	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier did not exit after Stop")
	}
}

func TestNotifierDefaultsToNoHardwareMonitor(t *testing.T) {
	s := syncpkg.New()
	s.Initialise()
	s.Start()
	defer s.Stop()

	n := NewNotifier(nil, s, &noopCore{}, time.Millisecond)
	_, ok := n.Monitor.(NoHardwareMonitor)
	assert.True(t, ok)
}
