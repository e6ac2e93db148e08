package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose      bool
	dataDir      string
	extractorCmd string
	extractorDim int
)

var rootCmd = &cobra.Command{
	Use:   "voiceguard",
	Short: "Local voice-identity enrollment and verification",
	Long: `voiceguard - enroll and verify speakers by voice, entirely on this machine.

An identity is enrolled from a recorded WAV of the registration script;
verification compares a fresh recording against every enrolled voiceprint
and accepts the closest one if it clears the similarity threshold.

All state lives under the data directory (--data-dir):
  users.json   enrolled identities and their voiceprints
  config.json  similarity threshold and spoken scripts
  journal/     append-only log of attempts

Embedding extraction runs as an external helper process (--extractor),
which receives a prepared mono 16 kHz WAV path and prints the embedding
as a JSON array on stdout.

Examples:
  # Enroll from flags
  voiceguard enroll --first-name Ada --last-name Lovelace \
      --dob 1815-12-10 --wav enrollment.wav

  # Enroll from a request file
  voiceguard enroll -f enroll.yaml

  # Verify a recording against everyone enrolled
  voiceguard verify challenge.wav

  # Tune the policy
  voiceguard config set threshold 0.85`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: OS config dir + /voiceguard)")
	rootCmd.PersistentFlags().StringVar(&extractorCmd, "extractor", "", "embedding extractor helper command")
	rootCmd.PersistentFlags().IntVar(&extractorDim, "dim", 192, "embedding dimension produced by the extractor")
}

// DataDir resolves the data directory, creating it if necessary.
func DataDir() (string, error) {
	dir := dataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "voiceguard")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// Logger builds the CLI logger: warnings only by default, everything
// with --verbose. Output goes to stderr so results stay clean on stdout.
func Logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
