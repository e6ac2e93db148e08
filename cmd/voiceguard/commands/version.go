package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X ...commands.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("voiceguard", version)
		if IsVerbose() {
			fmt.Printf("  go: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if dir, err := DataDir(); err == nil {
				fmt.Printf("  data: %s\n", dir)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
