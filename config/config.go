// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional tuning knobs for the synchronization
// core from a TOML file, following the same Open/decode pattern the
// teacher uses for its TOML-backed settings. Nothing in the core's
// correctness depends on this file existing; defaults are always valid.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Tuning holds the sync-pacing knobs that are safe to externalize.
// Everything else (the state machine, the locking discipline) is not
// configurable, by design.
type Tuning struct {
	// VSyncsPerRender is the default passed to SetRenderRefreshRate at
	// Initialize; must be >= 1.
	VSyncsPerRender int `toml:"vsyncs_per_render"`

	// NominalPeriodMicros is the synthesized VSync period used when no
	// hardware monitor is available, in microseconds.
	NominalPeriodMicros int `toml:"nominal_period_micros"`

	// DamageRingSize is the number of back-buffer ages the render thread
	// keeps distinct damage history for before falling back to a full
	// surface redraw.
	DamageRingSize int `toml:"damage_ring_size"`
}

// Default returns the tuning values used when no config file is present.
func Default() Tuning {
	return Tuning{
		VSyncsPerRender:     1,
		NominalPeriodMicros: 16667,
		DamageRingSize:      4,
	}
}

// Open reads tuning from the given TOML file, starting from Default and
// overwriting only the fields present in the file. A missing file is not
// an error: it just means defaults apply.
func Open(filename string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return t, err
	}
	return t.sanitize(), nil
}

// sanitize clamps user-supplied values to the invariants the
// synchronizer relies on, rather than letting a bad config file wedge
// the frame-skip arithmetic.
func (t Tuning) sanitize() Tuning {
	if t.VSyncsPerRender < 1 {
		t.VSyncsPerRender = 1
	}
	if t.NominalPeriodMicros < 1 {
		t.NominalPeriodMicros = 16667
	}
	if t.DamageRingSize < 1 {
		t.DamageRingSize = 1
	}
	return t
}
