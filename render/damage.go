// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "goki.dev/dali/surface"

// damageRing keeps the last-N sets of damage rectangles, keyed by the
// buffer age they applied to, so a partial update can be computed for a
// back buffer that is a few frames stale rather than forcing a full
// redraw every time. Ages beyond the ring's capacity, or age 0/unknown,
// fall back to full-surface damage.
type damageRing struct {
	history [][]surface.Rect // history[0] is the most recent frame's damage
}

func newDamageRing(capacity int) *damageRing {
	if capacity < 1 {
		capacity = 1
	}
	return &damageRing{history: make([][]surface.Rect, 0, capacity)}
}

// push records this frame's damage, evicting the oldest entry once full.
func (d *damageRing) push(rects []surface.Rect) {
	capacity := cap(d.history)
	if capacity == 0 {
		capacity = 1
	}
	kept := len(d.history)
	if kept > capacity-1 {
		kept = capacity - 1
	}
	next := make([][]surface.Rect, 0, capacity)
	next = append(next, rects)
	d.history = append(next, d.history[:kept]...)
}

// damageFor computes the union of damage across the given buffer age:
// the rectangles from all frames newer than (not including) that age
// must be reapplied, since the back buffer being drawn into is that
// stale. age==0 or an age beyond recorded history means "unknown",
// which the caller should treat as full-surface damage.
func (d *damageRing) damageFor(age int) ([]surface.Rect, bool) {
	if age <= 0 || age > len(d.history) {
		return nil, false
	}
	var out []surface.Rect
	for i := 0; i < age; i++ {
		out = append(out, d.history[i]...)
	}
	return out, true
}
