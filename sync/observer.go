// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sync

import "goki.dev/dali/core"

// Observer is an optional frame-pacing telemetry hook a caller can attach
// to a Sync. It mirrors the teacher's pattern of optional QuitReqFunc /
// QuitCleanFunc callbacks on the app: nobody is required to set one, and
// none of the synchronization contract depends on it running.
//
// Observer methods are always called with the synchronizer's lock
// released, so implementations may safely call back into the Sync.
type Observer interface {
	// FramePresented is called after the render thread successfully
	// presents a frame.
	FramePresented(frame core.Frame)

	// StateChanged is called after every successful (legal) state
	// transition.
	StateChanged(from, to State)
}
