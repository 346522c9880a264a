// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package update

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goki.dev/dali/core"
	syncpkg "goki.dev/dali/sync"
)

type countingCore struct {
	updates atomic.Int32
}

func (c *countingCore) Update(lastFrameSec, thisFrameSec, nextFrameSec float64) core.UpdateStatus {
	c.updates.Add(1)
	return core.HasUpdates
}
func (c *countingCore) Render(status core.RenderStatus) {}
func (c *countingCore) VSync(frame core.Frame, sec, usec uint32) {}

func TestThreadRunsOncePerVSync(t *testing.T) {
	s := syncpkg.New()
	s.Initialise()
	s.Start()
	defer s.Stop()

	cc := &countingCore{}
	th := &Thread{Sync: s, Core: cc}
	go th.Run()

	s.VSyncReady(1, 0, 0)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && cc.updates.Load() != 1 {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, int32(1), cc.updates.Load(), "expected exactly one Update pass for one vsync")

	s.Stop()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), cc.updates.Load())
}

func TestThreadExitsOnStop(t *testing.T) {
	s := syncpkg.New()
	s.Initialise()
	s.Start()

	th := &Thread{Sync: s, Core: &countingCore{}}
	done := make(chan struct{})
	go func() { th.Run(); close(done) }()

	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("update thread did not exit after Stop")
	}
}
