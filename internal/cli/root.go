// Package cli is the host command line: a desktop window, a scripted
// headless runner and a calibration helper.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"tapmenu/internal/buildinfo"
	"tapmenu/internal/config"
)

type options struct {
	configPath string
}

func (o *options) load() (config.Config, error) {
	return config.Load(o.configPath)
}

// Execute runs the root command against os.Args.
func Execute() error {
	return newRoot(nil).Execute()
}

func newRoot(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "tapmenu",
		Short:        "Touchscreen button menu, simulated on the desktop",
		Version:      buildinfo.String(),
		SilenceUsage: true,
	}
	if out != nil {
		root.SetOut(out)
		root.SetErr(out)
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/tapmenu/config.toml, or $TAPMENU_CONFIG)")

	root.AddCommand(runCmd(opts), tuiCmd(opts), headlessCmd(opts), calibrateCmd(opts))
	return root
}
