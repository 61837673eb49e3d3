// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "udplite version "+version)
	assert.Contains(t, out, "platform: "+runtime.GOOS)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "version", "--log-level", "loud")
	assert.Error(t, err)
}

func TestRoot_MissingConfig(t *testing.T) {
	_, err := run(t, "version", "--config", "/nonexistent/udplite.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
