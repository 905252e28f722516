package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "v1.2.0", Info{Version: "v1.2.0"}.Short())
	assert.Equal(t, "v1.2.0 (abc123)", Info{Version: "v1.2.0", Commit: "abc123"}.Short())
}

func TestInfoStringSkipsEmpty(t *testing.T) {
	s := Info{Version: "dev", GoVersion: "go1.24.4", Platform: "linux/amd64"}.String()

	assert.Equal(t, 3, len(strings.Split(s, "\n")))
	assert.Contains(t, s, "Version:    dev")
	assert.NotContains(t, s, "Commit")
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
