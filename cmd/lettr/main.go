package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rentverse/lettr/internal/logger"
	"github.com/rentverse/lettr/internal/tui/theme"
)

const (
	logoText1 = "█   █▀▀ ▀█▀ ▀█▀ █▀█"
	logoText2 = "█▄▄ ██▄  █   █  █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lettr",
	Short: "Create and publish rental property listings from your terminal",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

lettr is a terminal wizard for landlords on Rentverse. It walks you
through a listing step by step, keeps an event-sourced draft in embedded
NATS JetStream so you can stop and resume anytime, and publishes the
finished listing to the Rentverse API.`

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(setupCmd)
}
