package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/melba-ui/melba/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┬  ┌┐ ┌─┐
  ║║║├┤ │  ├┴┐├─┤
  ╩ ╩└─┘┴─┘└─┘┴ ┴
`

func main() {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "melba",
		Short: "Toast notifications for Go applications",
		Long: `Melba is a toast notification engine for Go.

The engine tracks toast lifecycle server-side and drives any rendering
surface over a small WebSocket protocol. Features include:

  • Auto-dismiss timers with pause and resume
  • Visibility window with overflow queueing
  • Six container positions with independent stacks
  • Slide, fade and bounce transitions, reduced-motion aware
  • An interactive demo page for trying it all out`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add commands
	rootCmd.AddCommand(
		initCmd(),
		demoCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Melba ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
