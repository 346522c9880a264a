// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adaptor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goki.dev/dali/config"
	"goki.dev/dali/core"
	"goki.dev/dali/surface"
	syncpkg "goki.dev/dali/sync"
)

type countingCore struct {
	renders atomic.Int32
}

func (c *countingCore) Update(float64, float64, float64) core.UpdateStatus { return core.HasUpdates }
func (c *countingCore) Render(core.RenderStatus)                          { c.renders.Add(1) }
func (c *countingCore) VSync(core.Frame, uint32, uint32)                  {}

func TestControllerLifecycle(t *testing.T) {
	c := &countingCore{}
	surf := surface.NewNativeImage(64, 64)
	ctl := New(c, surf, nil, config.Default())

	require.NoError(t, ctl.Initialize())
	ctl.Start()
	assert.Equal(t, syncpkg.Running, ctl.State())

	ctl.Pause()
	assert.Equal(t, syncpkg.Paused, ctl.State())
	ctl.Resume()
	assert.Equal(t, syncpkg.Running, ctl.State())

	ctl.Stop()
	assert.Equal(t, syncpkg.Stopped, ctl.State())
}

func TestControllerRejectsZeroSizeSurface(t *testing.T) {
	c := &countingCore{}
	surf := surface.NewNativeImage(0, 0)
	ctl := New(c, surf, nil, config.Default())
	err := ctl.Initialize()
	assert.Error(t, err)
}

func TestControllerStopJoinsAllThreads(t *testing.T) {
	c := &countingCore{}
	surf := surface.NewNativeImage(32, 32)
	ctl := New(c, surf, nil, config.Default())
	require.NoError(t, ctl.Initialize())
	ctl.Start()

	time.Sleep(20 * time.Millisecond)
	ctl.Stop()

	// After Stop returns, every worker channel must already be closed.
	select {
	case <-ctl.updateDone:
	default:
		t.Fatal("update thread not joined")
	}
	select {
	case <-ctl.renderDone:
	default:
		t.Fatal("render thread not joined")
	}
	select {
	case <-ctl.vsyncDone:
	default:
		t.Fatal("vsync thread not joined")
	}
}
