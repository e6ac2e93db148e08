package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voiceguard/voiceguard/pkg/cli"
	"github.com/voiceguard/voiceguard/pkg/policy"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update the verification policy",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		pol, err := policy.Load(filepath.Join(dir, policyFile))
		if err != nil {
			return err
		}

		styles := cli.NewStyles(cli.DefaultTheme)
		fmt.Printf("%s %.4f\n", styles.Label.Render("threshold:"), pol.SimilarityThreshold)
		fmt.Printf("%s %q\n", styles.Label.Render("registration script:"), pol.RegistrationScript)
		fmt.Printf("%s %q\n", styles.Label.Render("verification script:"), pol.VerificationScript)
		fmt.Println(styles.Detail.Render("config file: " + filepath.Join(dir, policyFile)))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a policy setting",
	Long: `Update a policy setting. Keys:

  threshold            similarity threshold in [0, 1]
  registration-script  text read aloud during enrollment
  verification-script  text read aloud during verification`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, policyFile)
		pol, err := policy.Load(path)
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "threshold":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid threshold %q", value)
			}
			pol.SimilarityThreshold = f
		case "registration-script":
			pol.RegistrationScript = value
		case "verification-script":
			pol.VerificationScript = value
		default:
			return fmt.Errorf("unknown key %q (threshold, registration-script, verification-script)", key)
		}

		if err := policy.Save(path, pol); err != nil {
			return err
		}
		cli.PrintSuccess("%s updated", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
