package commands

import (
	"os"

	"github.com/spf13/cobra"

	"imp/interpreter-go/pkg/driver"
)

var testCmd = &cobra.Command{
	Use:   "test <fixtures-dir>",
	Short: "Replay fixture directories and report pass/fail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dirs, err := driver.DiscoverFixtures(args[0])
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		if len(dirs) == 0 {
			log.Errorf("no fixtures found under %s", args[0])
			os.Exit(1)
		}
		failed := 0
		for _, dir := range dirs {
			if err := driver.RunFixture(dir); err != nil {
				failed++
				cmd.Printf("FAIL %s: %v\n", dir, err)
				continue
			}
			cmd.Printf("ok   %s\n", dir)
		}
		if failed > 0 {
			log.Errorf("%d of %d fixtures failed", failed, len(dirs))
			os.Exit(1)
		}
	},
}
