package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/peunion/internal/cli"
	"github.com/specialistvlad/peunion/internal/testutil"
)

func TestRun_ValidationFailureExitsWithOne(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"empty.hcl": "",
	})
	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}

	// --- Act ---
	err := run(context.Background(), out, logs, []string{"validate", root})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Empty(t, exitErr.Message)
	assert.Contains(t, out.String(), "The project does not have any items")
}

func TestRun_ConvertThenValidate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"in.hcl": `message_box { text = "hello" }`,
	})
	out := filepath.Join(root, "out.peu")
	stdout, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}

	// --- Act ---
	convertErr := run(context.Background(), stdout, logs, []string{"convert", filepath.Join(root, "in.hcl"), out})
	validateErr := run(context.Background(), stdout, logs, []string{"--log-level", "warn", "validate", out})

	// --- Assert ---
	require.NoError(t, convertErr)
	require.NoError(t, validateErr)
	assert.Contains(t, stdout.String(), "out - PEunion")
	assert.Contains(t, logs.String(), "Project converted.")
	assert.NotContains(t, logs.String(), "Validation finished.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &testutil.SafeBuffer{}

	// --- Act ---
	err := run(context.Background(), out, &testutil.SafeBuffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}

	// --- Act ---
	err := run(context.Background(), &testutil.SafeBuffer{}, &testutil.SafeBuffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
