// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

// Handshake is the PostRenderStarted/PostRenderWaitForCompletion/
// PostRenderComplete triple §4.5 names for native-image (offscreen)
// surfaces: it lets the Render thread hand a completed buffer to the
// event thread and, in sync mode, block until the event thread is done
// consuming it. It is deliberately independent of the synchronizer's
// own mutex M — this is a per-window channel handshake, grounded on the
// teacher's windowImpl.publish/publishDone channel pair, kept in this
// package (rather than on sync.Sync) so surface and sync don't need to
// import each other.
type Handshake struct {
	publish     chan struct{}
	publishDone chan struct{}
}

// NewHandshake creates a Handshake. One per native-image surface.
func NewHandshake() *Handshake {
	return &Handshake{
		publish:     make(chan struct{}, 1),
		publishDone: make(chan struct{}, 1),
	}
}

// Started is called by the Render thread once a produced buffer is
// ready for the consumer. Non-blocking: a pending-but-unconsumed
// notification is coalesced rather than queued, since only "there is a
// buffer ready" matters, not how many times it was announced.
func (h *Handshake) Started() {
	select {
	case h.publish <- struct{}{}:
	default:
	}
}

// WaitForCompletion blocks the Render thread until the consumer
// acknowledges via Complete. Only call this in sync mode; async
// consumers never call Complete and this would block forever.
func (h *Handshake) WaitForCompletion() {
	<-h.publishDone
}

// Complete is called by the event thread (the consumer) after it has
// finished reading the produced buffer.
func (h *Handshake) Complete() {
	select {
	case h.publishDone <- struct{}{}:
	default:
	}
}

// Produced returns the channel a consumer goroutine can range/select
// over to learn a new buffer is ready, for the async (non-blocking)
// consumption mode.
func (h *Handshake) Produced() <-chan struct{} {
	return h.publish
}
