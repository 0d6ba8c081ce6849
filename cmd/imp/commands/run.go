package commands

import (
	"os"

	"github.com/spf13/cobra"

	"imp/interpreter-go/pkg/driver"
)

var runCmd = &cobra.Command{
	Use:   "run <file.imp>",
	Short: "Execute a script",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := driver.RunFile(args[0], os.Stdout); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}
