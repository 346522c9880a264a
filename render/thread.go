// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render implements the Render thread: it owns the graphics
// context, consumes the most recently completed update frame, and
// presents it via a RenderSurface.
package render

import (
	"goki.dev/dali/core"
	"goki.dev/dali/internal/errs"
	syncpkg "goki.dev/dali/sync"
	"goki.dev/dali/surface"
)

// Thread is the Render thread.
type Thread struct {
	Sync    *syncpkg.Sync
	Core    core.Core
	Surface surface.RenderSurface

	ring        *damageRing
	pendingDmg  []surface.Rect
	initialized bool
}

// NewThread builds a Render thread with a damage ring of the given
// capacity (see config.Tuning.DamageRingSize).
func NewThread(s *syncpkg.Sync, c core.Core, surf surface.RenderSurface, damageRingSize int) *Thread {
	return &Thread{Sync: s, Core: c, Surface: surf, ring: newDamageRing(damageRingSize)}
}

// Run is the Render loop: bind surface & context, then
// `while ((action = RenderReady()) != Exit) { ... }`, then unbind.
// Intended to run on its own goroutine.
func (t *Thread) Run() {
	if t.Surface != nil {
		if err := t.Surface.InitializeGraphics(); err != nil {
			errs.Fatal(err)
		}
		if err := t.Surface.CreateSurface(); err != nil {
			errs.Fatal(err)
		}
		t.initialized = true
	}

	for {
		action := t.Sync.RenderReady()
		presented := false
		switch action.Kind {
		case syncpkg.ActionExit:
			t.teardown()
			return
		case syncpkg.ActionRunRender:
			presented = t.runRender(action)
		case syncpkg.ActionReplaceSurface:
			t.replaceSurface(action.NewSurface)
		case syncpkg.ActionResize:
			t.resize()
		}
		t.Sync.RenderFinished(action, presented)
	}
}

func (t *Thread) runRender(action syncpkg.RenderAction) bool {
	if t.Surface == nil {
		t.Core.Render(core.RenderStatus{Frame: action.Frame, HasUpdates: true})
		return true
	}
	age := t.Surface.BufferAge()
	damage, known := t.ring.damageFor(age)
	if !known {
		damage = nil // nil damage means "full surface" to PreRender
	}
	clip, ok := t.Surface.PreRender(damage)
	if !ok {
		errs.Skip("PreRender declined the frame", "frame", action.Frame)
		return false
	}
	t.Core.Render(core.RenderStatus{Frame: action.Frame, HasUpdates: true})
	if err := t.Surface.PostRender(); err != nil {
		errs.Log(err)
		return false
	}
	t.ring.push([]surface.Rect{clip})
	return true
}

func (t *Thread) replaceSurface(newSurface surface.RenderSurface) {
	if t.Surface != nil {
		t.Surface.DestroySurface()
	}
	t.Surface = newSurface
	if t.Surface == nil {
		return
	}
	if contextLost, err := t.Surface.ReplaceGraphicsSurface(); err != nil {
		errs.Log(err)
	} else if contextLost {
		errs.Skip("graphics context lost during surface replace, frame discarded")
	}
	t.ring = newDamageRing(cap(t.ring.history))
}

func (t *Thread) resize() {
	if t.Surface == nil {
		return
	}
	if contextLost, err := t.Surface.ReplaceGraphicsSurface(); err != nil {
		errs.Log(err)
	} else if contextLost {
		errs.Skip("graphics context lost during resize, frame discarded")
	}
	t.ring = newDamageRing(cap(t.ring.history))
}

func (t *Thread) teardown() {
	if t.Surface != nil && t.initialized {
		t.Surface.DestroySurface()
	}
}
