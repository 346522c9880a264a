// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package vsync

import (
	"time"

	"golang.org/x/sys/unix"
)

// timerSleep sleeps for d using clock_nanosleep against the monotonic
// clock, which holds to tighter tolerances than time.Sleep under
// scheduler load — relevant for scenario 6 (±2ms aggregate tolerance at
// 60Hz with no hardware vsync).
func timerSleep(d time.Duration) {
	if d <= 0 {
		return
	}
	ts := unix.NsecToTimespec(d.Nanoseconds())
	for {
		rem := unix.Timespec{}
		err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, 0, &ts, &rem)
		if err == unix.EINTR {
			ts = rem
			continue
		}
		return
	}
}
