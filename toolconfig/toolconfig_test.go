package toolconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langcore/toolconfig"
)

func TestDefaultValues(t *testing.T) {
	cfg := toolconfig.Default()
	assert.Equal(t, 4096, cfg.MaxControlDepth)
	assert.Equal(t, 4096, cfg.MaxValueDepth)
	assert.Equal(t, zerolog.Disabled, cfg.LogLevel)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := toolconfig.Load("")
	require.NoError(t, err)
	assert.Equal(t, toolconfig.Default(), cfg)
}

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "langcore.conf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesRecognizedKeys(t *testing.T) {
	path := writeTempConfig(t, "# a comment\n\nmax_control_depth = 128\nmax_value_depth=256\nlog_level = debug\n")
	cfg, err := toolconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.MaxControlDepth)
	assert.Equal(t, 256, cfg.MaxValueDepth)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadQuotedValue(t *testing.T) {
	path := writeTempConfig(t, `log_level = "warn"`+"\n")
	cfg, err := toolconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := toolconfig.Load(filepath.Join(t.TempDir(), "nope.conf"))
	assert.Error(t, err)
}

func TestLoadMalformedLine(t *testing.T) {
	path := writeTempConfig(t, "max_control_depth\n")
	_, err := toolconfig.Load(path)
	assert.Error(t, err)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeTempConfig(t, "nonsense = 1\n")
	_, err := toolconfig.Load(path)
	assert.Error(t, err)
}

func TestLoadBadIntValue(t *testing.T) {
	path := writeTempConfig(t, "max_control_depth = notanumber\n")
	_, err := toolconfig.Load(path)
	assert.Error(t, err)
}

func TestLoadBadLogLevel(t *testing.T) {
	path := writeTempConfig(t, "log_level = noisy\n")
	_, err := toolconfig.Load(path)
	assert.Error(t, err)
}

func TestLoggerRespectsLevel(t *testing.T) {
	cfg := toolconfig.Default()
	cfg.LogLevel = zerolog.InfoLevel
	log := toolconfig.Logger(cfg)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}
