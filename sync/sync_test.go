// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goki.dev/dali/core"
)

func startRunning(t *testing.T) *Sync {
	t.Helper()
	s := New()
	s.Initialise()
	s.Start()
	return s
}

func TestLegalTransitions(t *testing.T) {
	assert.True(t, legal(Stopped, Initialising))
	assert.True(t, legal(Running, Paused))
	assert.True(t, legal(Running, SurfaceReplacing))
	assert.True(t, legal(Running, Resizing))
	assert.False(t, legal(Stopped, Running))
	assert.False(t, legal(Paused, SurfaceReplacing))
	assert.False(t, legal(Initialising, Paused))
}

func TestStopIsIdempotent(t *testing.T) {
	s := startRunning(t)
	s.Stop()
	assert.Equal(t, Stopped, s.State())
	s.Stop() // must not panic or hang
	assert.Equal(t, Stopped, s.State())
}

func TestUpdateReadyExitsOnStop(t *testing.T) {
	s := startRunning(t)
	done := make(chan UpdateVerdict, 1)
	go func() { done <- s.UpdateReady() }()

	// Give the update thread a chance to start waiting on the VSync tie-in.
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	select {
	case v := <-done:
		assert.Equal(t, ExitUpdate, v)
	case <-time.After(time.Second):
		t.Fatal("UpdateReady did not unblock after Stop")
	}
}

// TestSteadyStatePacing checks that one VSync sample produces exactly one
// Update pass and one Render pass at a 1:1 refresh rate.
func TestSteadyStatePacing(t *testing.T) {
	s := startRunning(t)
	defer s.Stop()

	updateDone := make(chan struct{})
	go func() {
		v := s.UpdateReady()
		require.Equal(t, RunUpdate, v)
		s.Sample()
		s.UpdateReadyToRender()
		close(updateDone)
	}()

	renderDone := make(chan RenderAction, 1)
	go func() {
		renderDone <- s.RenderReady()
	}()

	ok := s.VSyncReady(1, 0, 0)
	assert.True(t, ok)

	select {
	case <-updateDone:
	case <-time.After(time.Second):
		t.Fatal("update pass never completed")
	}
	select {
	case action := <-renderDone:
		assert.Equal(t, ActionRunRender, action.Kind)
		assert.Equal(t, core.Frame(1), action.Frame)
	case <-time.After(time.Second):
		t.Fatal("render pass never ran")
	}
}

func TestFrameSkipping(t *testing.T) {
	s := startRunning(t)
	defer s.Stop()
	s.SetRenderRefreshRate(2)

	// First vsync: update+render-ready should stamp a frame, but
	// RenderReady must not fire until the second vsync (vsyncCounter%2==0
	// happens on vsync 2, since the counter starts at 0 and is
	// incremented before the modulo check).
	renderDone := make(chan RenderAction, 1)
	go func() { renderDone <- s.RenderReady() }()

	go func() {
		s.UpdateReady()
		s.UpdateReadyToRender()
	}()
	s.VSyncReady(1, 0, 0)

	select {
	case <-renderDone:
		t.Fatal("render fired before the configured refresh-rate divisor elapsed")
	case <-time.After(50 * time.Millisecond):
	}

	s.VSyncReady(2, 0, 0)
	select {
	case action := <-renderDone:
		assert.Equal(t, ActionRunRender, action.Kind)
	case <-time.After(time.Second):
		t.Fatal("render never fired on the second vsync")
	}
}

func TestPauseBlocksUpdateUntilRequest(t *testing.T) {
	s := startRunning(t)
	defer s.Stop()
	s.Pause()

	done := make(chan UpdateVerdict, 1)
	go func() { done <- s.UpdateReady() }()

	select {
	case <-done:
		t.Fatal("UpdateReady returned while paused with no pending work")
	case <-time.After(50 * time.Millisecond):
	}

	s.UpdateOnce()
	select {
	case v := <-done:
		assert.Equal(t, RunUpdate, v)
	case <-time.After(time.Second):
		t.Fatal("UpdateOnce did not wake a paused Update thread")
	}
}

func TestReplaceSurfaceInvokesStopOldUnderLock(t *testing.T) {
	s := startRunning(t)
	defer s.Stop()

	stopped := false
	go func() {
		action := s.RenderReady()
		require.Equal(t, ActionReplaceSurface, action.Kind)
		s.RenderFinished(action, false)
	}()

	cancelled := s.ReplaceSurface(nil, func() { stopped = true })
	assert.False(t, cancelled)
	assert.True(t, stopped)
	assert.Equal(t, Running, s.State())
}

func TestReplaceSurfaceCancelledOnStop(t *testing.T) {
	s := startRunning(t)

	resultc := make(chan bool, 1)
	go func() { resultc <- s.ReplaceSurface(nil, nil) }()

	time.Sleep(10 * time.Millisecond)
	s.Stop()

	select {
	case cancelled := <-resultc:
		assert.True(t, cancelled)
	case <-time.After(time.Second):
		t.Fatal("ReplaceSurface did not unblock after Stop")
	}
}
