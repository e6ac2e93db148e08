package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voiceguard/voiceguard/pkg/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrolled identities",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			cli.PrintInfo("no identities enrolled")
			return nil
		}

		styles := cli.NewStyles(cli.DefaultTheme)
		fmt.Println(styles.Title.Render(fmt.Sprintf("%-6s %-30s %s", "ID", "NAME", "BORN")))
		for _, r := range records {
			fmt.Printf("%-6d %-30s %s\n", r.ID, r.FullName(), r.DateOfBirth)
		}
		fmt.Println(styles.Detail.Render(fmt.Sprintf("%d enrolled", len(records))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
