package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/voiceguard/voiceguard/pkg/cli"
	"github.com/voiceguard/voiceguard/pkg/workflow"
)

// enrollRequest mirrors workflow.EnrollRequest for request files.
type enrollRequest struct {
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	DateOfBirth string `json:"date_of_birth" yaml:"date_of_birth"`
	WAV         string `json:"wav" yaml:"wav"`
}

var enrollFlags struct {
	requestFile string
	firstName   string
	lastName    string
	dob         string
	wav         string
}

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a new identity from a recorded waveform",
	Long: `Enroll a new identity from a WAV recording of the registration script.

The recording is canonicalized (mono, 16 kHz), trimmed of leading and
trailing silence, and handed to the extractor; nothing is persisted
unless the whole pipeline succeeds.

The request can be given as flags or as a YAML/JSON file:

  # enroll.yaml
  first_name: Ada
  last_name: Lovelace
  date_of_birth: 1815-12-10
  wav: enrollment.wav

Run 'voiceguard config show' to see the registration script the subject
should read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := workflow.EnrollRequest{
			FirstName:   enrollFlags.firstName,
			LastName:    enrollFlags.lastName,
			DateOfBirth: enrollFlags.dob,
			WAVPath:     enrollFlags.wav,
		}
		if enrollFlags.requestFile != "" {
			var fileReq enrollRequest
			if err := cli.LoadRequest(enrollFlags.requestFile, &fileReq); err != nil {
				return err
			}
			req = workflow.EnrollRequest{
				FirstName:   fileReq.FirstName,
				LastName:    fileReq.LastName,
				DateOfBirth: fileReq.DateOfBirth,
				WAVPath:     fileReq.WAV,
			}
		}
		if req.WAVPath == "" {
			return errors.New("no waveform given, use --wav or a request file")
		}

		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.engine.Enroll(cmd.Context(), req)
		if err != nil {
			return err
		}
		cli.PrintSuccess("enrolled %s (id %d, born %s)",
			record.FullName(), record.ID, record.DateOfBirth)
		return nil
	},
}

func init() {
	enrollCmd.Flags().StringVarP(&enrollFlags.requestFile, "file", "f", "", "YAML/JSON request file")
	enrollCmd.Flags().StringVar(&enrollFlags.firstName, "first-name", "", "first name")
	enrollCmd.Flags().StringVar(&enrollFlags.lastName, "last-name", "", "last name")
	enrollCmd.Flags().StringVar(&enrollFlags.dob, "dob", "", "date of birth (YYYY-MM-DD)")
	enrollCmd.Flags().StringVar(&enrollFlags.wav, "wav", "", "WAV recording of the registration script")

	rootCmd.AddCommand(enrollCmd)
}
