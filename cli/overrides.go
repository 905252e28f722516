package cli

import (
	"github.com/grovetools/niribar/config"
	"github.com/spf13/pflag"
)

// AddSocketFlags registers the flags that locate the compositor.
func AddSocketFlags(fs *pflag.FlagSet) {
	fs.String("socket", "", "Path to the niri IPC socket (default: $NIRI_SOCKET)")
	fs.Bool("wait", false, "Wait for the socket to appear instead of failing")
}

// AddOutputFlags registers the flags that shape emitted documents.
func AddOutputFlags(fs *pflag.FlagSet) {
	fs.String("envelope", "", "Document layout: plain, outputs")
	fs.String("pretty", "", "Indent documents: auto, always, never")
	fs.Bool("dedupe", false, "Skip documents identical to the previous one")
}

// ApplyOverrides copies explicitly set flags onto cfg and revalidates it.
// Flags win over the file and the environment.
func ApplyOverrides(fs *pflag.FlagSet, cfg *config.Config) error {
	changed := false
	setString := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
			changed = true
		}
	}
	setBool := func(name string, dst *bool) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst, _ = fs.GetBool(name)
			changed = true
		}
	}

	setString("socket", &cfg.Socket.Path)
	setBool("wait", &cfg.Socket.Wait)
	setString("envelope", &cfg.Output.Envelope)
	setString("pretty", &cfg.Output.Pretty)
	setBool("dedupe", &cfg.Output.Dedupe)

	if !changed {
		return nil
	}
	return cfg.Validate()
}
