// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeImageBufferRotation(t *testing.T) {
	n := NewNativeImage(4, 4)
	first := n.Buffer()

	require.NoError(t, n.PostRender())
	assert.Same(t, first, n.ConsumeBuffer())

	second := n.Buffer()
	assert.NotSame(t, first, second)
}

func TestNativeImageSyncModeBlocksUntilComplete(t *testing.T) {
	n := NewNativeImage(4, 4)
	n.SyncMode = true

	postDone := make(chan struct{})
	go func() {
		_ = n.PostRender()
		close(postDone)
	}()

	select {
	case <-n.Handshake.Produced():
	case <-time.After(time.Second):
		t.Fatal("PostRender never announced the produced buffer")
	}

	select {
	case <-postDone:
		t.Fatal("PostRender returned before Complete was called")
	case <-time.After(20 * time.Millisecond):
	}

	n.Handshake.Complete()
	select {
	case <-postDone:
	case <-time.After(time.Second):
		t.Fatal("PostRender did not unblock after Complete")
	}
}
