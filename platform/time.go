// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform is the narrow PlatformAbstraction seam §6 names: a
// monotonic clock source used when no hardware VSync is available.
package platform

import "time"

var monotonicEpoch = time.Now()

// GetTimeMicroseconds returns a monotonic (sec, usec) pair measured from
// an arbitrary process-local epoch. Never wraps within a process
// lifetime at any realistic uptime.
func GetTimeMicroseconds() (sec, usec uint32) {
	d := time.Since(monotonicEpoch)
	micros := d.Microseconds()
	const microsPerSecond = 1_000_000 // not the 100000 the original used; see DESIGN.md
	return uint32(micros / microsPerSecond), uint32(micros % microsPerSecond)
}
