package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agbru/bigcalc/bigint"
)

// Version is the application version, set at build time with
// -ldflags "-X github.com/agbru/bigcalc/internal/app.Version=v1.2.3".
var Version = "dev"

func (a *Application) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			a.printf("bigcalc %s\n", Version)
			a.printf("  go:        %s\n", runtime.Version())
			a.printf("  platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
			a.printf("  word size: %d bits\n", bigint.WordBits)
		},
	}
}
