// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goki.dev/dali/surface"
)

func TestDamageRingUnionsAcrossAge(t *testing.T) {
	r := newDamageRing(4)
	r.push([]surface.Rect{{X: 0, Y: 0, W: 10, H: 10}})
	r.push([]surface.Rect{{X: 5, Y: 5, W: 10, H: 10}})

	got, ok := r.damageFor(1)
	assert.True(t, ok)
	assert.Equal(t, []surface.Rect{{X: 5, Y: 5, W: 10, H: 10}}, got)

	got, ok = r.damageFor(2)
	assert.True(t, ok)
	assert.ElementsMatch(t, []surface.Rect{
		{X: 5, Y: 5, W: 10, H: 10},
		{X: 0, Y: 0, W: 10, H: 10},
	}, got)
}

func TestDamageRingUnknownAgeFallsBack(t *testing.T) {
	r := newDamageRing(2)
	r.push([]surface.Rect{{X: 0, Y: 0, W: 1, H: 1}})

	_, ok := r.damageFor(0)
	assert.False(t, ok)

	_, ok = r.damageFor(5)
	assert.False(t, ok)
}

func TestDamageRingEvictsBeyondCapacity(t *testing.T) {
	r := newDamageRing(2)
	r.push([]surface.Rect{{X: 1}})
	r.push([]surface.Rect{{X: 2}})
	r.push([]surface.Rect{{X: 3}})

	assert.Len(t, r.history, 2)
	assert.Equal(t, int32(3), r.history[0][0].X)
	assert.Equal(t, int32(2), r.history[1][0].X)
}
