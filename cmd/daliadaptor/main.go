// Copyright 2019 The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command daliadaptor wires a minimal Core against a native-image
// surface and the no-hardware vsync fallback, as a runnable
// demonstration of the adaptor.Controller facade. It stands in for the
// teacher's examples/basic: a tiny embedder, not a production backend
// selection.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goki.dev/dali/adaptor"
	"goki.dev/dali/config"
	"goki.dev/dali/core"
	"goki.dev/dali/surface"
)

// clockCore is a trivial Core that counts the frames it renders (main
// logs the total on exit); it has no scene graph to speak of, only
// enough behavior to exercise the Update/Render/VSync triad end to end.
type clockCore struct {
	frames int
}

func (c *clockCore) Update(lastFrameSec, thisFrameSec, nextFrameSec float64) core.UpdateStatus {
	return core.HasUpdates
}

func (c *clockCore) Render(status core.RenderStatus) {
	c.frames++
}

func (c *clockCore) VSync(frame core.Frame, sec, usec uint32) {}

func main() {
	tuning := config.Default()
	if cfg, err := config.Open("daliadaptor.toml"); err == nil {
		tuning = cfg
	} else {
		slog.Warn("using default tuning", "error", err)
	}

	c := &clockCore{}
	surf := surface.NewNativeImage(1920, 1080)

	ctl := adaptor.New(c, surf, nil, tuning)
	if err := ctl.Initialize(); err != nil {
		slog.Error("initialize failed", "error", err)
		os.Exit(1)
	}
	ctl.Start()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
	case <-time.After(5 * time.Second):
	}

	ctl.Stop()
	slog.Info("stopped", "frames_rendered", c.frames)
}
