package cli

import (
	"context"

	"github.com/spf13/cobra"

	"tapmenu/app"
	"tapmenu/hal"
	"tapmenu/hal/hostwin"
)

func runCmd(opts *options) *cobra.Command {
	var scale, touchFail int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the menu in a desktop window (mouse or touch as the panel)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			hcfg := c.Host()
			hcfg.TouchInitFailures = touchFail
			hcfg.Out = cmd.OutOrStdout()
			host := hal.NewHost(hcfg)
			acfg := c.App()

			return hostwin.Run(host, scale, func(ctx context.Context) error {
				return app.Start(ctx, host, acfg)
			})
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 2, "window pixels per display pixel")
	cmd.Flags().IntVar(&touchFail, "touch-fail", 0, "make the first N touch init attempts fail")
	return cmd
}
