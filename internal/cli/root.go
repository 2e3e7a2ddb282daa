// Package cli implements the Touchwood command-line interface using Cobra.
// Each subcommand maps to one engine surface (touch, status, challenges, ...).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "touchwood",
	Short: "Touchwood — knock on wood, keep the streak",
	Long: `Touchwood is the progress engine behind the touch wood habit app.
Record rituals, follow your streak, clear daily challenges, unlock
achievements and seasonal rituals, and watch your mood trends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
