package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voiceguard/voiceguard/pkg/cli"
	"github.com/voiceguard/voiceguard/pkg/match"
)

var verifyThreshold float64

var verifyCmd = &cobra.Command{
	Use:   "verify <recording.wav>",
	Short: "Verify a recorded waveform against enrolled identities",
	Long: `Verify a WAV recording of the verification script against every
enrolled identity. The closest voiceprint wins if its similarity clears
the threshold (from config.json, or --threshold).

Run 'voiceguard config show' to see the verification script the subject
should read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		threshold := a.policy.SimilarityThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = verifyThreshold
		}

		result, err := a.engine.Verify(cmd.Context(), args[0], threshold)
		if err != nil {
			return err
		}

		styles := cli.NewStyles(cli.DefaultTheme)
		switch result.Decision {
		case match.Matched:
			fmt.Println(styles.Accept.Render("MATCHED"))
			fmt.Printf("%s %s\n", styles.Label.Render("identity:"), result.Record.FullName())
			fmt.Printf("%s %d\n", styles.Label.Render("id:"), result.Record.ID)
			fmt.Printf("%s %.4f %s\n", styles.Label.Render("score:"), result.BestScore,
				styles.Detail.Render(fmt.Sprintf("(threshold %.4f)", threshold)))
		case match.NoMatch:
			fmt.Println(styles.Reject.Render("NO MATCH"))
			fmt.Printf("%s %.4f %s\n", styles.Label.Render("best score:"), result.BestScore,
				styles.Detail.Render(fmt.Sprintf("(threshold %.4f)", threshold)))
		case match.NoEnrollments:
			fmt.Println(styles.Reject.Render("NO ENROLLMENTS"))
			fmt.Println(styles.Detail.Render("enroll at least one identity first: voiceguard enroll"))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().Float64Var(&verifyThreshold, "threshold", 0, "similarity threshold override [0,1]")

	rootCmd.AddCommand(verifyCmd)
}
