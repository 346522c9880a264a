// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vsync drives the VSync notifier thread: it samples a
// VSyncMonitor (hardware- or timer-backed), stamps a frame number, and
// hands each tick to the synchronizer.
package vsync

// Monitor is the narrow interface to the platform's display-refresh
// source (DRM/libdrm and friends on Linux, a CVDisplayLink on macOS,
// etc.). It is treated as an external collaborator: this module never
// implements one for real hardware, only the interface and a
// timer-backed fallback.
type Monitor interface {
	Initialize() error
	Terminate()

	// UseHardware reports whether DoSync will block on real hardware
	// vsync events, as opposed to always returning false (unavailable).
	UseHardware() bool

	// DoSync blocks until the next vsync, filling in seq/sec/usec.
	// Returns false on an unrecoverable error, after which the notifier
	// falls back to timer mode silently.
	DoSync() (seq uint32, sec uint32, usec uint32, ok bool)
}

// NoHardwareMonitor is a Monitor that reports no hardware support,
// driving the notifier straight into its timer-fallback path. Useful as
// a default when no platform backend is wired in, and as the baseline
// for tests.
type NoHardwareMonitor struct{}

func (NoHardwareMonitor) Initialize() error   { return nil }
func (NoHardwareMonitor) Terminate()          {}
func (NoHardwareMonitor) UseHardware() bool   { return false }
func (NoHardwareMonitor) DoSync() (uint32, uint32, uint32, bool) {
	return 0, 0, 0, false
}
