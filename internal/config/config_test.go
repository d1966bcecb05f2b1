package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"), true)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bpf_dir: /opt/hid/bpf
logging:
  level: debug
  output: stdout
`), 0o600))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/opt/hid/bpf", cfg.BPFDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "/opt/hid/bpf", cfg.ProgramDir())
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bpf_dir: [unclosed"), 0o600))

	_, err := Load(path, true)
	assert.Error(t, err)
}

func TestProgramDirDefault(t *testing.T) {
	// Run from a directory without a development tree so the installed
	// location wins.
	t.Chdir(t.TempDir())
	assert.Equal(t, defaultProgramDir, Default().ProgramDir())
}

func TestProgramDirDevelopmentTree(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(devProgramDir, 0o755))
	assert.Equal(t, devProgramDir, Default().ProgramDir())
}
