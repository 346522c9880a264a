// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package vsync

import "time"

// timerSleep is the portable fallback for platforms without a
// high-resolution monotonic nanosleep wired in.
func timerSleep(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}
