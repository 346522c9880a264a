// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs provides the error-handling helpers used throughout the
// synchronization core, matching the taxonomy in the adaptor's error
// handling design: transient-skip, graphics-context-lost, and fatal.
package errs

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
)

// Log logs err if it is non-nil and returns it unchanged, for the
// "recovered locally, not propagated" classes (transient-skip,
// graphics-context-lost).
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs err if non-nil and returns v regardless, for call sites that
// want to keep a zero-value result rather than thread an error return.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Skip logs a transient-skip condition: an invalid VSync sample, a
// PreRender that declined the frame, or similar. No state changes as a
// result; this is purely an observability hook.
func Skip(reason string, args ...any) {
	slog.Warn("skip: "+reason, args...)
}

// Fatal logs err and terminates the process. Reserved for the Fatal
// error class in §7: a system-call failure that prevents the
// synchronization primitives themselves from functioning, from which
// there is no recovery.
func Fatal(err error) {
	if err == nil {
		return
	}
	slog.Error("fatal: " + err.Error() + " | " + CallerInfo())
	os.Exit(1)
}

// CallerInfo returns the file:line of the function that called the
// function that called CallerInfo, matching the two-deep skip used by
// Log/Log1 above.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	name := "?"
	if fn != nil {
		name = fn.Name()
	}
	return name + " " + file + ":" + strconv.Itoa(line)
}
