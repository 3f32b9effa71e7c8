// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_HasConfigFlags(t *testing.T) {
	out, err := execute(t, "serve", "--help")
	require.NoError(t, err)

	for _, flag := range []string{"server.addr", "database.url", "log.level", "log.format"} {
		assert.Contains(t, out, flag, "serve help missing %q flag", flag)
	}
}

func TestServeCommand_FailsWithoutDatabaseURL(t *testing.T) {
	configFile = ""
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
}
