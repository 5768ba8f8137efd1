package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("TEXTRACTOR_AWS_REGION", "eu-west-1")
	region = "ap-south-1"
	t.Cleanup(func() { region = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", cfg.AWS.Region)
}

func TestLoadConfigEnvironmentWithoutFlag(t *testing.T) {
	t.Setenv("TEXTRACTOR_AWS_REGION", "eu-west-1")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws:\n  region: us-west-2\nlogging:\n  level: warn\n"), 0o644))

	configFile = path
	logLevel = "debug"
	t.Cleanup(func() {
		configFile = ""
		logLevel = ""
	})

	cfg, err := loadConfig()
	require.NoError(t, err)
	// The region comes from the file, the log level from the flag.
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
