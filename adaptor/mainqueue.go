// Copyright 2023 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adaptor

import stdsync "sync"

// funcRun pairs a queued function with the channel its caller is
// blocked on, matching the teacher's App.MainQueue/FuncRun pairing.
type funcRun struct {
	f    func()
	done chan struct{}
}

// MainQueue serializes callbacks the embedder wants run on a single
// "event thread" goroutine — e.g. an Observer implementation that must
// touch the same UI toolkit state the rest of the application owns.
// It is independent of the synchronizer's own mutex; nothing in the
// Update/Render/VSync contract requires it.
type MainQueue struct {
	mu    stdsync.Mutex
	queue chan funcRun
	done  chan struct{}
}

// NewMainQueue creates a MainQueue. Call Run on the goroutine that
// should execute the queued callbacks.
func NewMainQueue() *MainQueue {
	return &MainQueue{
		queue: make(chan funcRun),
		done:  make(chan struct{}),
	}
}

// Run drains the queue until Stop is called. Intended to be the body of
// the embedder's event-thread loop, or folded into an existing one via
// a select on Queued().
func (q *MainQueue) Run() {
	for {
		select {
		case <-q.done:
			return
		case fr := <-q.queue:
			fr.f()
			if fr.done != nil {
				close(fr.done)
			}
		}
	}
}

// Queued exposes the raw channel for embedders that already run their
// own select loop and want to fold this queue's work into it, rather
// than dedicating a goroutine to Run. Call Do on each received value.
func (q *MainQueue) Queued() <-chan funcRun { return q.queue }

// Do runs the queued function and releases a RunOnMain caller blocked
// on it, as Run does for each value it receives.
func (fr funcRun) Do() {
	fr.f()
	if fr.done != nil {
		close(fr.done)
	}
}

// RunOnMain queues f and blocks until it has run.
func (q *MainQueue) RunOnMain(f func()) {
	done := make(chan struct{})
	q.queue <- funcRun{f: f, done: done}
	<-done
}

// GoRunOnMain queues f and returns immediately.
func (q *MainQueue) GoRunOnMain(f func()) {
	go func() { q.queue <- funcRun{f: f} }()
}

// Stop terminates Run. Idempotent.
func (q *MainQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
