// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sync

// State is the thread-synchronization state. Only the transitions listed
// in legalTransitions below are legal; everything else is a no-op.
type State int32

const (
	Stopped State = iota
	Initialising
	Running
	Paused
	SurfaceReplacing
	Resizing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Initialising:
		return "Initialising"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case SurfaceReplacing:
		return "SurfaceReplacing"
	case Resizing:
		return "Resizing"
	default:
		return "Unknown"
	}
}

// legalTransitions enumerates §3's state table. Built once; read-only.
var legalTransitions = map[State]map[State]bool{
	Stopped:          {Initialising: true},
	Initialising:     {Running: true, Stopped: true},
	Running:          {Paused: true, SurfaceReplacing: true, Resizing: true, Stopped: true},
	Paused:           {Running: true, Stopped: true},
	SurfaceReplacing: {Running: true, Stopped: true},
	Resizing:         {Running: true, Stopped: true},
}

func legal(from, to State) bool {
	return legalTransitions[from][to]
}
