// Package main provides the voiceguard CLI tool.
//
// Usage:
//
//	voiceguard [flags] <command> [args]
//
// Commands:
//
//	enroll   - Enroll a new identity from a recorded waveform
//	verify   - Verify a recorded waveform against enrolled identities
//	list     - List enrolled identities
//	delete   - Delete an enrolled identity by id
//	config   - Show or update the verification policy
//	attempts - Show recent enrollment and verification attempts
//	version  - Show version information
//
// Data layout:
//
//	All state lives under the data directory (default: the OS config
//	directory + /voiceguard): users.json, config.json, journal/.
package main

import (
	"fmt"
	"os"

	"github.com/voiceguard/voiceguard/cmd/voiceguard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
