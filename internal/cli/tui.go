package cli

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"tapmenu/app"
	"tapmenu/hal"
	"tapmenu/hal/hostterm"
	"tapmenu/menu"
)

func tuiCmd(opts *options) *cobra.Command {
	var touchFail int
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Show the menu in the terminal; click cells to touch",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			logs := hostterm.NewLogTail(3)
			hcfg := c.Host()
			hcfg.TouchInitFailures = touchFail
			hcfg.Out = logs
			host := hal.NewHost(hcfg)
			acfg := c.App()

			var status atomic.Pointer[string]
			acfg.OnStatus = func(s menu.Status) {
				text := s.Text
				status.Store(&text)
			}
			footer := func() string {
				line := "status: (starting)"
				if s := status.Load(); s != nil {
					line = "status: " + *s
				}
				return strings.Join(append([]string{line}, logs.Lines()...), "\n")
			}

			return hostterm.Run(host, func(ctx context.Context) error {
				return app.Start(ctx, host, acfg)
			}, footer)
		},
	}
	cmd.Flags().IntVar(&touchFail, "touch-fail", 0, "make the first N touch init attempts fail")
	return cmd
}
