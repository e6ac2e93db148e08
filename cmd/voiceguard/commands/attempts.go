package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voiceguard/voiceguard/pkg/cli"
	"github.com/voiceguard/voiceguard/pkg/journal"
)

var attemptsCount int

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "Show recent enrollment and verification attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.journal.Recent(cmd.Context(), attemptsCount)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			cli.PrintInfo("no attempts recorded")
			return nil
		}

		styles := cli.NewStyles(cli.DefaultTheme)
		fmt.Println(styles.Title.Render(fmt.Sprintf("%-20s %-7s %-15s %s", "TIME", "KIND", "OUTCOME", "DETAIL")))
		for _, e := range entries {
			detail := e.FullName
			if e.Kind == journal.KindVerify && e.Outcome != "no-enrollments" {
				detail = fmt.Sprintf("score %.4f", e.BestScore)
				if e.FullName != "" {
					detail += " " + e.FullName
				}
			}
			fmt.Printf("%-20s %-7s %-15s %s\n",
				e.Time.Local().Format(time.DateTime), e.Kind, e.Outcome, detail)
		}
		return nil
	},
}

func init() {
	attemptsCmd.Flags().IntVarP(&attemptsCount, "count", "n", 20, "number of attempts to show")

	rootCmd.AddCommand(attemptsCmd)
}
