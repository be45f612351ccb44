package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup map[string]string

func (f fakeLookup) get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, time.Second, cfg.PollInterval())
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"debounce_ms": 250, "beep": true}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.DebounceMS)
	assert.True(t, cfg.Beep)
	assert.Equal(t, 1000, cfg.PollIntervalMS, "unset fields keep defaults")
	assert.Equal(t, path, cfg.Source)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "poll_interval_ms: 2000\ndesktop_notifications: false\nlog_format: json\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.PollIntervalMS)
	assert.False(t, cfg.DesktopNotifications)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 300, cfg.DebounceMS)
}

func TestLoadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"debounce_ms": "soon"`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSaveFileRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := Default()
			want.DebounceMS = 420
			want.LogLevel = "debug"

			require.NoError(t, SaveFile(path, want))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			got, err := LoadFile(path)
			require.NoError(t, err)
			want.Source = path
			assert.Equal(t, want, got)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg, err := ApplyEnv(Default(), fakeLookup{
		"MOUSEJUMP_DEBOUNCE_MS":           "200",
		"MOUSEJUMP_POLL_INTERVAL_MS":      " 500 ",
		"MOUSEJUMP_DESKTOP_NOTIFICATIONS": "false",
		"MOUSEJUMP_BEEP":                  "1",
		"MOUSEJUMP_LOG_LEVEL":             "debug",
		"MOUSEJUMP_LOG_FORMAT":            "json",
	}.get)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.DebounceMS)
	assert.Equal(t, 500, cfg.PollIntervalMS)
	assert.False(t, cfg.DesktopNotifications)
	assert.True(t, cfg.Beep)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	_, err := ApplyEnv(Default(), fakeLookup{"MOUSEJUMP_DEBOUNCE_MS": "fast"}.get)
	assert.ErrorContains(t, err, "MOUSEJUMP_DEBOUNCE_MS")

	_, err = ApplyEnv(Default(), fakeLookup{"MOUSEJUMP_BEEP": "loud"}.get)
	assert.ErrorContains(t, err, "MOUSEJUMP_BEEP")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero debounce":  func(c *Config) { c.DebounceMS = 0 },
		"huge debounce":  func(c *Config) { c.DebounceMS = 10000 },
		"fast polling":   func(c *Config) { c.PollIntervalMS = 10 },
		"bad log level":  func(c *Config) { c.LogLevel = "verbose" },
		"bad log format": func(c *Config) { c.LogFormat = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNormalize(t *testing.T) {
	lvl, err := NormalizeLogLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, "warn", lvl)

	lvl, err = NormalizeLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, "info", lvl)

	format, err := NormalizeLogFormat("console")
	require.NoError(t, err)
	assert.Equal(t, "text", format)
}

// unsetEnv clears key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"debounce_ms": 250, "poll_interval_ms": 750, "log_level": "warn"}`)
	writeFile(t, filepath.Join(dir, ".env"), "MOUSEJUMP_POLL_INTERVAL_MS=1500\nMOUSEJUMP_LOG_LEVEL=error\n")

	unsetEnv(t, "MOUSEJUMP_DEBOUNCE_MS")
	unsetEnv(t, "MOUSEJUMP_POLL_INTERVAL_MS")
	unsetEnv(t, "MOUSEJUMP_DESKTOP_NOTIFICATIONS")
	unsetEnv(t, "MOUSEJUMP_BEEP")
	unsetEnv(t, "MOUSEJUMP_LOG_FORMAT")
	t.Setenv("MOUSEJUMP_LOG_LEVEL", "debug")
	chdir(t, dir)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.DebounceMS, "file value")
	assert.Equal(t, 1500, cfg.PollIntervalMS, ".env beats file")
	assert.Equal(t, "debug", cfg.LogLevel, "real environment beats .env")
}

func TestLoadValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "debounce_ms: -5\n")
	unsetEnv(t, "MOUSEJUMP_DEBOUNCE_MS")
	chdir(t, dir)

	_, err := Load(path)
	assert.ErrorContains(t, err, "debounce_ms")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
