package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"validate", Config{Command: CommandValidate, Args: []string{"a.peu"}}, ""},
		{"validate without paths", Config{Command: CommandValidate}, "at least one path"},
		{"convert", Config{Command: CommandConvert, Args: []string{"a.hcl", "b.peu"}}, ""},
		{"convert with one path", Config{Command: CommandConvert, Args: []string{"a.hcl"}}, "input and an output"},
		{"new", Config{Command: CommandNew, Args: []string{"a.peu"}}, ""},
		{"new with two paths", Config{Command: CommandNew, Args: []string{"a", "b"}}, "exactly one"},
		{"missing command", Config{}, "command is required"},
		{"unknown command", Config{Command: "build", Args: []string{"a"}}, `unknown command "build"`},
		{"bad output", Config{Command: CommandNew, Args: []string{"a"}, Output: "yaml"}, "invalid output"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewConfig(tc.cfg)

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.Command, got.Command)
			assert.Equal(t, OutputText, got.Output)
		})
	}
}

func TestNewConfig_CopiesArgs(t *testing.T) {
	args := []string{"a.peu"}

	cfg, err := NewConfig(Config{Command: CommandValidate, Args: args})
	require.NoError(t, err)
	args[0] = "changed"

	assert.Equal(t, "a.peu", cfg.Args[0])
}

func TestNewConfig_DefaultWorkerCount(t *testing.T) {
	cfg, err := NewConfig(Config{Command: CommandValidate, Args: []string{"a"}, WorkerCount: -3})
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkerCount, cfg.WorkerCount)

	cfg, err = NewConfig(Config{Command: CommandValidate, Args: []string{"a"}, WorkerCount: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WorkerCount)
}
