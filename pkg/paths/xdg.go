// Package paths resolves where niribar reads configuration and writes state.
//
// NIRIBAR_HOME, when set, roots everything at $NIRIBAR_HOME/{config,state}.
// Otherwise the XDG base directory variables apply, falling back to
// ~/.config and ~/.local/state.
package paths

import (
	"os"
	"path/filepath"
)

const (
	appName = "niribar"
	homeEnv = "NIRIBAR_HOME"
)

type baseDir struct {
	portable string   // subdirectory of NIRIBAR_HOME
	xdgEnv   string   // XDG variable
	fallback []string // path under the user's home
}

var (
	configBase = baseDir{portable: "config", xdgEnv: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	stateBase  = baseDir{portable: "state", xdgEnv: "XDG_STATE_HOME", fallback: []string{".local", "state"}}
)

func (b baseDir) resolve() string {
	if home := os.Getenv(homeEnv); home != "" {
		return filepath.Join(home, b.portable, appName)
	}
	if dir := os.Getenv(b.xdgEnv); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append(append([]string{home}, b.fallback...), appName)...)
}

// ConfigDir returns the niribar configuration directory.
func ConfigDir() string {
	return configBase.resolve()
}

// StateDir returns the niribar state directory.
func StateDir() string {
	return stateBase.resolve()
}

// LogDir is where the file log sink writes by default.
func LogDir() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs")
}

// ConfigFiles returns the candidate config file paths in lookup order.
func ConfigFiles() []string {
	dir := ConfigDir()
	if dir == "" {
		return nil
	}
	names := []string{"config.yml", "config.yaml", "config.toml"}
	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files
}
