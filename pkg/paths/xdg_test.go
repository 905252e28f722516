package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolution(t *testing.T) {
	t.Run("portable home wins", func(t *testing.T) {
		t.Setenv("NIRIBAR_HOME", "/opt/nb")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, "/opt/nb/config/niribar", ConfigDir())
		assert.Equal(t, "/opt/nb/state/niribar", StateDir())
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("NIRIBAR_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		t.Setenv("XDG_STATE_HOME", "/xdg/state")
		assert.Equal(t, "/xdg/config/niribar", ConfigDir())
		assert.Equal(t, "/xdg/state/niribar", StateDir())
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("NIRIBAR_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_STATE_HOME", "")
		t.Setenv("HOME", "/home/u")
		assert.Equal(t, filepath.Join("/home/u", ".config", "niribar"), ConfigDir())
		assert.Equal(t, filepath.Join("/home/u", ".local", "state", "niribar"), StateDir())
	})
}

func TestLogDir(t *testing.T) {
	t.Setenv("NIRIBAR_HOME", "/opt/nb")
	assert.Equal(t, "/opt/nb/state/niribar/logs", LogDir())
}

func TestConfigFiles(t *testing.T) {
	t.Setenv("NIRIBAR_HOME", "/opt/nb")
	assert.Equal(t, []string{
		"/opt/nb/config/niribar/config.yml",
		"/opt/nb/config/niribar/config.yaml",
		"/opt/nb/config/niribar/config.toml",
	}, ConfigFiles())
}
