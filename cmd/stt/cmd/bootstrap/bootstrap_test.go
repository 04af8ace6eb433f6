package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech-to-text/internal/app/session"
	"speech-to-text/internal/config"
)

func newCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String(FlagConfig, "", "")
	cmd.Flags().Bool(FlagVerbose, false, "")

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func TestConfigPath(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	assert.Equal(t, "custom.yaml", ConfigPath("custom.yaml"))

	t.Setenv(config.EnvConfigPath, "/etc/stt.yaml")
	assert.Equal(t, "/etc/stt.yaml", ConfigPath(""))
}

func TestLoad(t *testing.T) {
	t.Setenv(config.EnvBackendURL, "")
	t.Setenv(config.EnvPublicHost, "")

	path := filepath.Join(t.TempDir(), "stt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0644))

	cmd, _, _ := newCommand()
	require.NoError(t, cmd.Flags().Set(FlagConfig, path))

	cfg, logger, err := Load(cmd)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestPrintState(t *testing.T) {
	cmd, stdout, stderr := newCommand()

	PrintState(cmd, session.State{Transcription: "hello world"})
	assert.Equal(t, "hello world\n", stdout.String())
	assert.Empty(t, stderr.String())

	stdout.Reset()
	PrintState(cmd, session.State{Transcription: session.MessageRecordingTooShort, Warning: session.WarningRecordingTooShort})
	assert.Empty(t, stdout.String())
	assert.Equal(t, session.MessageRecordingTooShort+"\n", stderr.String())
}
