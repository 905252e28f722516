package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/niribar/config"
	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SetDefaults()
	return cfg
}

func TestApplyOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	AddSocketFlags(fs)
	AddOutputFlags(fs)
	require.NoError(t, fs.Parse([]string{"--socket", "/tmp/niri.sock", "--envelope", "outputs", "--dedupe"}))

	cfg := defaultConfig()
	cfg.Output.Pretty = config.PrettyNever
	require.NoError(t, ApplyOverrides(fs, cfg))

	assert.Equal(t, "/tmp/niri.sock", cfg.Socket.Path)
	assert.Equal(t, config.EnvelopeOutputs, cfg.Output.Envelope)
	assert.True(t, cfg.Output.Dedupe)
	assert.Equal(t, config.PrettyNever, cfg.Output.Pretty, "unset flags keep lower layers")
	assert.False(t, cfg.Socket.Wait)
}

func TestApplyOverridesCanDisable(t *testing.T) {
	fs := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	AddOutputFlags(fs)
	require.NoError(t, fs.Parse([]string{"--dedupe=false"}))

	cfg := defaultConfig()
	cfg.Output.Dedupe = true
	require.NoError(t, ApplyOverrides(fs, cfg))
	assert.False(t, cfg.Output.Dedupe)
}

func TestApplyOverridesValidates(t *testing.T) {
	fs := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	AddOutputFlags(fs)
	require.NoError(t, fs.Parse([]string{"--pretty", "sometimes"}))

	err := ApplyOverrides(fs, defaultConfig())
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))

	var buf bytes.Buffer
	_ = NewErrorHandlerWithWriter(false, &buf).Handle(err)
	assert.Contains(t, buf.String(), "Invalid configuration")
	assert.Contains(t, buf.String(), "/output/pretty")
}

func TestApplyOverridesWithoutFlags(t *testing.T) {
	fs := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
	AddSocketFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg := defaultConfig()
	require.NoError(t, ApplyOverrides(fs, cfg))
	assert.Equal(t, config.EnvelopePlain, cfg.Output.Envelope)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "unknown workspace",
			err:  errors.UnknownWorkspace("WorkspaceActivated", 42),
			want: []string{"inconsistent", "operation", "WorkspaceActivated", "workspace_id", "42"},
		},
		{
			name: "dangling window",
			err:  errors.DanglingWindow(9, 3),
			want: []string{"window_id", "9", "workspace_id", "3"},
		},
		{
			name: "socket missing",
			err:  errors.SocketNotFound("/run/niri.sock"),
			want: []string{"/run/niri.sock", "--wait"},
		},
		{
			name: "rejected",
			err:  errors.RequestRejected("EventStream", "nope"),
			want: []string{"niri IPC failed", "nope"},
		},
		{
			name: "config",
			err:  errors.ConfigNotFound("/etc/niribar.yml"),
			want: []string{"/etc/niribar.yml"},
		},
		{
			name: "plain error",
			err:  fmt.Errorf("something broke"),
			want: []string{"something broke"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewErrorHandlerWithWriter(false, &buf)
			assert.Equal(t, tt.err, h.Handle(tt.err))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestErrorHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := NewErrorHandlerWithWriter(true, &buf)
	_ = h.Handle(errors.UnknownWorkspace("WorkspaceActivated", 42))
	assert.Contains(t, buf.String(), `"code": "REFERENTIAL_INTEGRITY"`)
}

func TestErrorHandlerNil(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, NewErrorHandlerWithWriter(false, &buf).Handle(nil))
	assert.Empty(t, buf.String())
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 20))
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "a\nb", wrapText("a\nb", 20))
}

func TestParseDescription(t *testing.T) {
	desc, ex := parseDescription("Streams documents.\n\nExamples:\n  niribar watch --dedupe")
	assert.Equal(t, "Streams documents.", desc)
	assert.Equal(t, "niribar watch --dedupe", ex)

	desc, ex = parseDescription("No examples here.")
	assert.Equal(t, "No examples here.", desc)
	assert.Empty(t, ex)
}

func TestStyleCommandLine(t *testing.T) {
	plain := lipgloss.NewStyle()
	assert.Equal(t, "  niribar watch --pretty always", styleCommandLine("niribar watch --pretty always", "niribar", plain, plain, plain))
}

func TestFormatFlagName(t *testing.T) {
	fs := pflag.NewFlagSet("x", pflag.ContinueOnError)
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("dedupe", false, "")

	assert.Equal(t, "-v, --verbose", formatFlagName(fs.Lookup("verbose")))
	assert.Equal(t, "    --dedupe", formatFlagName(fs.Lookup("dedupe")))
}

func TestWriteHelp(t *testing.T) {
	root := NewStandardCommand("niribar", "Workspace state for status bars")
	sub := &cobra.Command{Use: "snapshot", Short: "Print one document", RunE: func(*cobra.Command, []string) error { return nil }}
	AddSocketFlags(sub.Flags())
	root.AddCommand(sub)

	var buf bytes.Buffer
	writeHelp(&buf, root, theme.DefaultTheme, 70)
	assert.Contains(t, buf.String(), "NIRIBAR")
	assert.Contains(t, buf.String(), "snapshot")
	assert.Contains(t, buf.String(), "--config")

	buf.Reset()
	writeHelp(&buf, sub, theme.DefaultTheme, 70)
	assert.Contains(t, buf.String(), "--socket")
	assert.Contains(t, buf.String(), "--wait")
	assert.Contains(t, buf.String(), "GLOBAL FLAGS")
	assert.NotContains(t, buf.String(), "ENVIRONMENT")
}

func TestWriteHelpEnvironment(t *testing.T) {
	root := NewStandardCommand("niribar", "Publish niri state as JSON")
	root.Annotations = map[string]string{EnvAnnotation: "\nNIRI_SOCKET=socket path\nNIRIBAR_PRETTY=indent\n"}
	sub := &cobra.Command{Use: "watch", Short: "Stream", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(sub)

	var buf bytes.Buffer
	writeHelp(&buf, sub, theme.DefaultTheme, 70)
	out := buf.String()
	assert.Contains(t, out, "ENVIRONMENT")
	assert.Contains(t, out, "NIRI_SOCKET  socket path")
	assert.Contains(t, out, "NIRIBAR_PRETTY  indent")
}

func TestVersionCommand(t *testing.T) {
	root := NewStandardCommand("niribar", "test")
	root.AddCommand(NewVersionCommand("niribar"))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())

	var info map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "dev", info["version"])

	buf.Reset()
	root.SetArgs([]string{"version", "--json=false"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "niribar dev")
}
