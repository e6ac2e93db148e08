package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voiceguard/voiceguard/pkg/cli"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an enrolled identity by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if !deleteYes {
			fmt.Printf("Delete identity %d? This cannot be undone. [y/N]: ", id)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				cli.PrintInfo("aborted")
				return nil
			}
		}

		deleted, err := a.store.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !deleted {
			cli.PrintWarning("no identity with id %d", id)
			return nil
		}
		cli.PrintSuccess("deleted identity %d", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(deleteCmd)
}
