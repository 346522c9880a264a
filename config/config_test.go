// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	tuning, err := Open(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), tuning)
}

func TestOpenParsesTOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.toml")
	content := "vsyncs_per_render = 2\nnominal_period_micros = 33333\ndamage_ring_size = 8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tuning, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tuning.VSyncsPerRender)
	assert.Equal(t, 33333, tuning.NominalPeriodMicros)
	assert.Equal(t, 8, tuning.DamageRingSize)
}

func TestSanitizeClampsInvalidValues(t *testing.T) {
	t.Parallel()
	bad := Tuning{VSyncsPerRender: 0, NominalPeriodMicros: -1, DamageRingSize: 0}
	good := bad.sanitize()
	assert.Equal(t, 1, good.VSyncsPerRender)
	assert.Equal(t, 16667, good.NominalPeriodMicros)
	assert.Equal(t, 1, good.DamageRingSize)
}
